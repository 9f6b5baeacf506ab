package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"panda-server/internal/models"
	"panda-server/internal/repository"
)

var _ repository.PatientRepository = (*MockPatientRepository)(nil)

// MockPatientRepository is a testify spy for repository.PatientRepository.
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *models.Patient) (bool, error) {
	args := m.Called(ctx, patient)
	return args.Bool(0), args.Error(1)
}

func (m *MockPatientRepository) GetByNHSNumber(ctx context.Context, nhsNumber string) (*models.Patient, error) {
	args := m.Called(ctx, nhsNumber)
	p, _ := args.Get(0).(*models.Patient)
	return p, args.Error(1)
}

func (m *MockPatientRepository) UpdateByNHSNumber(ctx context.Context, nhsNumber string, changes models.Changes) (bool, error) {
	args := m.Called(ctx, nhsNumber, changes)
	return args.Bool(0), args.Error(1)
}

func (m *MockPatientRepository) DeleteByNHSNumber(ctx context.Context, nhsNumber string) (bool, error) {
	args := m.Called(ctx, nhsNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockPatientRepository) List(ctx context.Context) ([]models.Patient, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]models.Patient)
	return p, args.Error(1)
}

var _ repository.AppointmentRepository = (*MockAppointmentRepository)(nil)

// MockAppointmentRepository is a testify spy for repository.AppointmentRepository.
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) (bool, error) {
	args := m.Called(ctx, appointment)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Appointment)
	return a, args.Error(1)
}

func (m *MockAppointmentRepository) UpdateByID(ctx context.Context, id string, changes models.Changes) (bool, error) {
	args := m.Called(ctx, id, changes)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context) ([]models.Appointment, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).([]models.Appointment)
	return a, args.Error(1)
}
