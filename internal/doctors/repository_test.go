package doctors

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	until := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "name", "services_letters", "schedule", "is_active", "paused_until"}).
		AddRow(int64(1), "Dra. Marisol", []string{"A", "B"}, Schedule{Days: []string{"Lun", "Mar"}}, true, (*time.Time)(nil)).
		AddRow(int64(2), "Dr. Jeffry Campusanos", []string{"C"}, Schedule{Days: []string{"Mie"}}, true, &until)
	mock.ExpectQuery(`SELECT .+ FROM doctors_config ORDER BY id ASC`).WillReturnRows(rows)

	repo := NewRepository(mock)
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Dra. Marisol", list[0].Name)
	assert.Nil(t, list[0].PausedUntil)
	assert.Equal(t, []string{"Lun", "Mar"}, list[0].Schedule.Days)
	require.NotNil(t, list[1].PausedUntil)
	assert.True(t, list[1].PausedUntil.Equal(until))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetAvailability_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE doctors_config SET`).
		WithArgs(int64(99), false, (*time.Time)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewRepository(mock)
	err = repo.SetAvailability(context.Background(), 99, false, nil)
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetAvailability_WritesPause(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	until := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE doctors_config SET`).
		WithArgs(int64(1), true, &until).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewRepository(mock)
	require.NoError(t, repo.SetAvailability(context.Background(), 1, true, &until))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Names(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"name"}).
		AddRow("Dra. Marisol").
		AddRow("Equipo Dental Space")
	mock.ExpectQuery(`SELECT name FROM doctors_config ORDER BY id ASC`).WillReturnRows(rows)

	repo := NewRepository(mock)
	names, err := repo.Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Dra. Marisol", "Equipo Dental Space"}, names)
}
