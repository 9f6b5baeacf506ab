package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"panda-server/internal/models"
)

// GormPatientRepository stores patients through gorm.
type GormPatientRepository struct {
	DB *gorm.DB
}

// NewGormPatientRepository creates a new GormPatientRepository.
func NewGormPatientRepository(db *gorm.DB) *GormPatientRepository {
	return &GormPatientRepository{DB: db}
}

func (r *GormPatientRepository) Create(ctx context.Context, patient *models.Patient) (bool, error) {
	res := r.DB.WithContext(ctx).Create(patient)
	if res.Error != nil {
		return false, fmt.Errorf("inserting patient: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormPatientRepository) GetByNHSNumber(ctx context.Context, nhsNumber string) (*models.Patient, error) {
	var patient models.Patient
	err := r.DB.WithContext(ctx).First(&patient, "nhs_number = ?", nhsNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching patient: %w", err)
	}
	return &patient, nil
}

func (r *GormPatientRepository) UpdateByNHSNumber(ctx context.Context, nhsNumber string, changes models.Changes) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Patient{}).
		Where("nhs_number = ?", nhsNumber).
		Updates(changes.Columns())
	if res.Error != nil {
		return false, fmt.Errorf("updating patient: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormPatientRepository) DeleteByNHSNumber(ctx context.Context, nhsNumber string) (bool, error) {
	res := r.DB.WithContext(ctx).Where("nhs_number = ?", nhsNumber).Delete(&models.Patient{})
	if res.Error != nil {
		return false, fmt.Errorf("deleting patient: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormPatientRepository) List(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := r.DB.WithContext(ctx).Order("nhs_number asc").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return patients, nil
}

// GormAppointmentRepository stores appointments through gorm.
type GormAppointmentRepository struct {
	DB *gorm.DB
}

// NewGormAppointmentRepository creates a new GormAppointmentRepository.
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{DB: db}
}

func (r *GormAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) (bool, error) {
	res := r.DB.WithContext(ctx).Create(appointment)
	if res.Error != nil {
		return false, fmt.Errorf("inserting appointment: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormAppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.DB.WithContext(ctx).First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	return &appointment, nil
}

// UpdateByID writes changes to the appointment with the given id. With MySQL
// the DSN must set clientFoundRows so that rewriting identical values still
// counts as a match.
func (r *GormAppointmentRepository) UpdateByID(ctx context.Context, id string, changes models.Changes) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(changes.Columns())
	if res.Error != nil {
		return false, fmt.Errorf("updating appointment: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormAppointmentRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Appointment{})
	if res.Error != nil {
		return false, fmt.Errorf("deleting appointment: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormAppointmentRepository) List(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := r.DB.WithContext(ctx).Order("time asc").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return appointments, nil
}
