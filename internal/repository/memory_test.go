package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panda-server/internal/models"
)

func TestMemoryPatientRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPatientRepository()
	patient := &models.Patient{NHSNumber: "9434765919", Name: "Glenn Clark", DateOfBirth: "1996-02-01", Postcode: "N6 2FA"}

	ok, err := repo.Create(ctx, patient)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Create(ctx, patient)
	require.NoError(t, err)
	assert.False(t, ok, "duplicate key must not be inserted")

	got, err := repo.GetByNHSNumber(ctx, "9434765919")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Glenn Clark", got.Name)

	ok, err = repo.UpdateByNHSNumber(ctx, "9434765919", models.Changes{models.FieldName: "Glenn R Clark"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ = repo.GetByNHSNumber(ctx, "9434765919")
	assert.Equal(t, "Glenn R Clark", got.Name)
	assert.Equal(t, "N6 2FA", got.Postcode)

	ok, err = repo.DeleteByNHSNumber(ctx, "9434765919")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.GetByNHSNumber(ctx, "9434765919")
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, _ = repo.DeleteByNHSNumber(ctx, "9434765919")
	assert.False(t, ok)
	ok, _ = repo.UpdateByNHSNumber(ctx, "9434765919", models.Changes{models.FieldName: "x"})
	assert.False(t, ok)
}

func TestMemoryAppointmentRepository_UpdateIgnoresIdentityKey(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAppointmentRepository()
	_, err := repo.Create(ctx, &models.Appointment{ID: "a", Status: models.StatusActive, Time: "2025-01-01T09:00:00"})
	require.NoError(t, err)

	ok, err := repo.UpdateByID(ctx, "a", models.Changes{models.FieldID: "b", models.FieldStatus: "cancelled"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ := repo.GetByID(ctx, "a")
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, models.StatusCancelled, got.Status)

	// Re-applying the same value still counts as a match.
	ok, _ = repo.UpdateByID(ctx, "a", models.Changes{models.FieldStatus: "cancelled"})
	assert.True(t, ok)
}

func TestMemoryAppointmentRepository_ListSortedByTime(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAppointmentRepository()
	_, _ = repo.Create(ctx, &models.Appointment{ID: "late", Time: "2025-02-01T09:00:00"})
	_, _ = repo.Create(ctx, &models.Appointment{ID: "early", Time: "2025-01-01T09:00:00"})

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "early", list[0].ID)
	assert.Equal(t, "late", list[1].ID)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAppointmentRepository()
	_, _ = repo.Create(ctx, &models.Appointment{ID: "a", Status: models.StatusActive})

	got, _ := repo.GetByID(ctx, "a")
	got.Status = models.StatusCancelled

	again, _ := repo.GetByID(ctx, "a")
	assert.Equal(t, models.StatusActive, again.Status)
}

func TestNew(t *testing.T) {
	patients, appointments, err := New(DatabaseMemory, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryPatientRepository{}, patients)
	assert.IsType(t, &MemoryAppointmentRepository{}, appointments)

	_, _, err = New(DatabaseMySQL, nil)
	assert.Error(t, err)

	_, _, err = New("mongo", nil)
	assert.True(t, errors.Is(err, ErrUnsupportedDatabase))
}
