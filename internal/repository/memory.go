package repository

import (
	"context"
	"sort"
	"sync"

	"panda-server/internal/models"
)

// MemoryPatientRepository keeps patients in process memory. It is safe for
// concurrent use and backs the memory database type and the tests.
type MemoryPatientRepository struct {
	mu       sync.RWMutex
	patients map[string]models.Patient
}

// NewMemoryPatientRepository creates an empty MemoryPatientRepository.
func NewMemoryPatientRepository() *MemoryPatientRepository {
	return &MemoryPatientRepository{patients: make(map[string]models.Patient)}
}

func (r *MemoryPatientRepository) Create(_ context.Context, patient *models.Patient) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.patients[patient.NHSNumber]; exists {
		return false, nil
	}
	r.patients[patient.NHSNumber] = *patient
	return true, nil
}

func (r *MemoryPatientRepository) GetByNHSNumber(_ context.Context, nhsNumber string) (*models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[nhsNumber]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryPatientRepository) UpdateByNHSNumber(_ context.Context, nhsNumber string, changes models.Changes) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[nhsNumber]
	if !ok {
		return false, nil
	}
	p.Apply(changes)
	r.patients[nhsNumber] = p
	return true, nil
}

func (r *MemoryPatientRepository) DeleteByNHSNumber(_ context.Context, nhsNumber string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[nhsNumber]; !ok {
		return false, nil
	}
	delete(r.patients, nhsNumber)
	return true, nil
}

func (r *MemoryPatientRepository) List(_ context.Context) ([]models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NHSNumber < out[j].NHSNumber })
	return out, nil
}

// MemoryAppointmentRepository keeps appointments in process memory.
type MemoryAppointmentRepository struct {
	mu           sync.RWMutex
	appointments map[string]models.Appointment
}

// NewMemoryAppointmentRepository creates an empty MemoryAppointmentRepository.
func NewMemoryAppointmentRepository() *MemoryAppointmentRepository {
	return &MemoryAppointmentRepository{appointments: make(map[string]models.Appointment)}
}

func (r *MemoryAppointmentRepository) Create(_ context.Context, appointment *models.Appointment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.appointments[appointment.ID]; exists {
		return false, nil
	}
	r.appointments[appointment.ID] = *appointment
	return true, nil
}

func (r *MemoryAppointmentRepository) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *MemoryAppointmentRepository) UpdateByID(_ context.Context, id string, changes models.Changes) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return false, nil
	}
	a.Apply(changes)
	r.appointments[id] = a
	return true, nil
}

func (r *MemoryAppointmentRepository) DeleteByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return false, nil
	}
	delete(r.appointments, id)
	return true, nil
}

func (r *MemoryAppointmentRepository) List(_ context.Context) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}
