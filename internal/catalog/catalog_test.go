package catalog

import "testing"

func TestTimeSlots_Range(t *testing.T) {
	slots := TimeSlots()

	if len(slots) != 22 {
		t.Fatalf("expected 22 slots, got %d", len(slots))
	}
	if slots[0].Value != "08:00" {
		t.Errorf("expected first slot 08:00, got %s", slots[0].Value)
	}
	if slots[len(slots)-1].Value != "18:30" {
		t.Errorf("expected last slot 18:30, got %s", slots[len(slots)-1].Value)
	}
}

func TestTimeSlots_Labels(t *testing.T) {
	slots := TimeSlots()

	byValue := make(map[string]string, len(slots))
	for _, s := range slots {
		byValue[s.Value] = s.Label
	}

	cases := map[string]string{
		"08:00": "8:00 AM",
		"12:00": "12:00 PM",
		"12:30": "12:30 PM",
		"13:00": "1:00 PM",
		"18:30": "6:30 PM",
	}
	for value, want := range cases {
		if got := byValue[value]; got != want {
			t.Errorf("slot %s: expected label %q, got %q", value, want, got)
		}
	}
}

func TestServiceGroups_Fixed(t *testing.T) {
	groups := ServiceGroups()

	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}

	var total int
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, s := range g.Services {
			total++
			seen[s.Value] = true
		}
	}
	if total != 12 {
		t.Errorf("expected 12 services, got %d", total)
	}
	for _, required := range []string{
		"Consulta odontológica general",
		"Profilaxis (limpieza dental)",
		"Endodoncia (tratamiento de canal)",
	} {
		if !seen[required] {
			t.Errorf("missing service %q", required)
		}
	}
}

func TestStatuses(t *testing.T) {
	got := Statuses()
	want := []string{"Agendada", "Reprogramada", "Cancelada"}
	if len(got) != len(want) {
		t.Fatalf("expected %d statuses, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("status %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
