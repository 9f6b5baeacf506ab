package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"panda-server/internal/lifecycle"
	"panda-server/internal/models"
	"panda-server/internal/repository"
	"panda-server/internal/validation"
)

// AppointmentService coordinates validation, lifecycle rules and storage of
// appointments.
type AppointmentService struct {
	repo   repository.AppointmentRepository
	log    *zap.Logger
	tracer trace.Tracer
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(repo repository.AppointmentRepository, log *zap.Logger) *AppointmentService {
	return &AppointmentService{
		repo:   repo,
		log:    log.Named("appointments"),
		tracer: otel.Tracer("panda-server/service"),
	}
}

// Create validates record and stores it as a new appointment. Reusing the id
// of an existing appointment is refused, and never written.
func (s *AppointmentService) Create(ctx context.Context, record validation.Record) Result {
	ctx, span := s.tracer.Start(ctx, "AppointmentService.Create")

	if errs := validation.ValidateAppointment(record); len(errs) > 0 {
		s.log.Debug("appointment rejected", zap.Int("errors", len(errs)))
		return finish(span, ValidationFailed(errs))
	}

	appointment := record.Appointment()
	span.SetAttributes(attribute.String("appointment.id", appointment.ID))

	existing, err := s.repo.GetByID(ctx, appointment.ID)
	if err != nil {
		s.log.Error("failed to look up appointment", zap.String("id", appointment.ID), zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotCreateAppointment))
	}

	if v := lifecycle.Decide(lifecycle.Create, existing); !v.Allowed() {
		s.log.Info("appointment create refused",
			zap.String("id", appointment.ID),
			zap.String("existing_status", string(existing.Status)),
			zap.String("reason", string(v.Reason)))
		return finish(span, BusinessError(v.Reason, "id", appointment.ID))
	}

	ok, err := s.repo.Create(ctx, appointment)
	if err != nil || !ok {
		s.log.Error("failed to create appointment", zap.String("id", appointment.ID), zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotCreateAppointment))
	}

	return finish(span, Success(appointment, notice(models.KeyNewAppointmentAdded, "id", appointment.ID)))
}

// Update validates record and replaces every non-id field of the appointment
// stored under id. A cancelled appointment is refused without writing.
func (s *AppointmentService) Update(ctx context.Context, id string, record validation.Record) Result {
	ctx, span := s.tracer.Start(ctx, "AppointmentService.Update",
		trace.WithAttributes(attribute.String("appointment.id", id)))

	if errs := validation.ValidateAppointment(record); len(errs) > 0 {
		s.log.Debug("appointment update rejected", zap.Int("errors", len(errs)))
		return finish(span, ValidationFailed(errs))
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("failed to look up appointment", zap.String("id", id), zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotUpdateAppointment))
	}

	switch v := lifecycle.Decide(lifecycle.Update, existing); v.Outcome {
	case lifecycle.Missing:
		return finish(span, NotFound(v.Reason, "id", id))
	case lifecycle.Refuse:
		s.log.Info("appointment update refused", zap.String("id", id), zap.String("reason", string(v.Reason)))
		return finish(span, BusinessError(v.Reason, "id", id))
	}

	appointment := record.Appointment()
	appointment.ID = id

	ok, err := s.repo.UpdateByID(ctx, id, appointment.Changes())
	if err != nil {
		s.log.Error("failed to update appointment", zap.String("id", id), zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotUpdateAppointment))
	}
	if !ok {
		// Removed between the read and the write.
		return finish(span, NotFound(models.KeyAppointmentNotFound, "id", id))
	}

	return finish(span, Success(appointment, notice(models.KeyAppointmentUpdated, "id", id)))
}

// Get returns the appointment stored under id.
func (s *AppointmentService) Get(ctx context.Context, id string) Result {
	ctx, span := s.tracer.Start(ctx, "AppointmentService.Get",
		trace.WithAttributes(attribute.String("appointment.id", id)))

	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("failed to get appointment", zap.String("id", id), zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotReadRecords))
	}
	if appointment == nil {
		return finish(span, NotFound(models.KeyAppointmentNotFound, "id", id))
	}

	return finish(span, Success(appointment, nil))
}

// Delete cancels the appointment stored under id. Appointments are never
// removed; cancelling twice succeeds both times.
func (s *AppointmentService) Delete(ctx context.Context, id string) Result {
	ctx, span := s.tracer.Start(ctx, "AppointmentService.Delete",
		trace.WithAttributes(attribute.String("appointment.id", id)))

	if v := lifecycle.Decide(lifecycle.Cancel, nil); !v.Allowed() {
		return finish(span, BusinessError(v.Reason, "id", id))
	}

	ok, err := s.repo.UpdateByID(ctx, id, lifecycle.CancelChanges())
	if err != nil {
		s.log.Error("failed to cancel appointment", zap.String("id", id), zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotUpdateAppointment))
	}
	if !ok {
		return finish(span, NotFound(models.KeyAppointmentNotFound, "id", id))
	}

	return finish(span, Success(nil, notice(models.KeyAppointmentCancelled, "id", id)))
}

// List returns every appointment.
func (s *AppointmentService) List(ctx context.Context) Result {
	ctx, span := s.tracer.Start(ctx, "AppointmentService.List")

	appointments, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list appointments", zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotReadRecords))
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	return finish(span, Success(appointments, notice(models.KeyAppointmentsFetched)))
}
