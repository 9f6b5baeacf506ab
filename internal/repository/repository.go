// Package repository holds the storage contracts used by the services and
// their gorm and in-memory implementations.
package repository

import (
	"context"
	"errors"

	"panda-server/internal/models"
)

// ErrUnsupportedDatabase is returned by New for an unknown DatabaseType.
var ErrUnsupportedDatabase = errors.New("unsupported database type")

// PatientRepository stores patients keyed by NHS number.
//
// Get returns (nil, nil) when nothing matches. The booleans returned by the
// mutating methods report whether a document matched the key, not whether
// any value actually changed.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) (bool, error)
	GetByNHSNumber(ctx context.Context, nhsNumber string) (*models.Patient, error)
	UpdateByNHSNumber(ctx context.Context, nhsNumber string, changes models.Changes) (bool, error)
	DeleteByNHSNumber(ctx context.Context, nhsNumber string) (bool, error)
	List(ctx context.Context) ([]models.Patient, error)
}

// AppointmentRepository stores appointments keyed by id, with the same
// conventions as PatientRepository.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	UpdateByID(ctx context.Context, id string, changes models.Changes) (bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]models.Appointment, error)
}

var (
	_ PatientRepository     = (*GormPatientRepository)(nil)
	_ PatientRepository     = (*MemoryPatientRepository)(nil)
	_ AppointmentRepository = (*GormAppointmentRepository)(nil)
	_ AppointmentRepository = (*MemoryAppointmentRepository)(nil)
)
