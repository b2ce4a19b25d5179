// Package catalog holds the fixed catalogs the appointment form is built from:
// the service menu, the bookable half-hour slots, and the status set.
package catalog

import "fmt"

// Service is a bookable service. Value is the exact string sent to the
// webhook backend; Label is the shorter display form.
type Service struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ServiceGroup is a category of services.
type ServiceGroup struct {
	Label    string    `json:"label"`
	Services []Service `json:"services"`
}

// ServiceGroups returns the clinic's service menu. The values must match what
// the webhook backend and calendar integration already store, so they are kept
// verbatim.
func ServiceGroups() []ServiceGroup {
	return []ServiceGroup{
		{
			Label: "Odontología General",
			Services: []Service{
				{Value: "Consulta odontológica general", Label: "Consulta General"},
				{Value: "Profilaxis (limpieza dental)", Label: "Limpieza (Profilaxis)"},
				{Value: "Radiografías", Label: "Radiografías"},
			},
		},
		{
			Label: "Ortodoncia",
			Services: []Service{
				{Value: "Ortodoncia (brackets)", Label: "Ortodoncia (Brackets)"},
				{Value: "Activación de brackets", Label: "Activación de Brackets"},
			},
		},
		{
			Label: "Estética y Prótesis",
			Services: []Service{
				{Value: "Blanqueamiento dental", Label: "Blanqueamiento Dental"},
				{Value: "Carillas", Label: "Carillas"},
				{Value: "Prótesis / Puentes fijos", Label: "Prótesis / Puentes"},
				{Value: "Implantes", Label: "Implantes"},
			},
		},
		{
			Label: "Cirugía y Tratamientos",
			Services: []Service{
				{Value: "Extracción", Label: "Extracción"},
				{Value: "Endodoncia (tratamiento de canal)", Label: "Endodoncia (Canal)"},
				{Value: "Gingivoplastia (cirugía de encías)", Label: "Gingivoplastia (Encías)"},
			},
		},
	}
}

// TimeSlot is a bookable start time. Value is 24-hour "HH:MM"; Label is the
// 12-hour display form.
type TimeSlot struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TimeSlots returns the half-hour slots from 08:00 through 18:30.
func TimeSlots() []TimeSlot {
	var slots []TimeSlot
	for i := 8; i < 19; i++ {
		hour := i
		if i > 12 {
			hour = i - 12
		}
		ampm := "AM"
		if i >= 12 {
			ampm = "PM"
		}
		slots = append(slots,
			TimeSlot{Value: fmt.Sprintf("%02d:00", i), Label: fmt.Sprintf("%d:00 %s", hour, ampm)},
			TimeSlot{Value: fmt.Sprintf("%02d:30", i), Label: fmt.Sprintf("%d:30 %s", hour, ampm)},
		)
	}
	return slots
}

// Statuses returns the appointment statuses the form offers. Records with no
// status display as "Pendiente" but it is never written.
func Statuses() []string {
	return []string{"Agendada", "Reprogramada", "Cancelada"}
}

// LegacyDoctorOptions is the historical fixed specialist enumeration. The
// assignment dropdown is normally sourced from the live roster; this list is
// the fallback when the roster store is unreachable.
func LegacyDoctorOptions() []string {
	return []string{
		"Dra. Marisol",
		"Dra. Yelissa Quezada",
		"Dr. Jeffry Campusanos",
		"Dr. Laureado Ortega",
		"Dra. Pamela Paulino",
		"Equipo Dental Space",
	}
}
