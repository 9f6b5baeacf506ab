package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"panda-server/internal/models"
	"panda-server/internal/repository"
	"panda-server/internal/validation"
)

// PatientService coordinates validation and storage of patients.
type PatientService struct {
	repo   repository.PatientRepository
	log    *zap.Logger
	tracer trace.Tracer
}

// NewPatientService creates a new PatientService.
func NewPatientService(repo repository.PatientRepository, log *zap.Logger) *PatientService {
	return &PatientService{
		repo:   repo,
		log:    log.Named("patients"),
		tracer: otel.Tracer("panda-server/service"),
	}
}

// Create validates record and stores it as a new patient. A patient already
// registered under the same NHS number is refused without writing.
func (s *PatientService) Create(ctx context.Context, record validation.Record) Result {
	ctx, span := s.tracer.Start(ctx, "PatientService.Create")

	if errs := validation.ValidatePatient(record); len(errs) > 0 {
		s.log.Debug("patient rejected", zap.Int("errors", len(errs)))
		return finish(span, ValidationFailed(errs))
	}

	patient := record.Patient()
	span.SetAttributes(attribute.String("patient.nhs_number", patient.NHSNumber))

	existing, err := s.repo.GetByNHSNumber(ctx, patient.NHSNumber)
	if err != nil {
		s.log.Error("failed to look up patient", zap.String("nhs_number", patient.NHSNumber), zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotCreatePatient))
	}
	if existing != nil {
		s.log.Info("duplicate patient refused", zap.String("nhs_number", patient.NHSNumber))
		return finish(span, BusinessError(models.KeyCouldNotCreatePatient, "nhs_number", patient.NHSNumber))
	}

	ok, err := s.repo.Create(ctx, patient)
	if err != nil || !ok {
		s.log.Error("failed to create patient", zap.String("nhs_number", patient.NHSNumber), zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotCreatePatient))
	}

	return finish(span, Success(patient, notice(models.KeyNewPatientAdded, "nhs_number", patient.NHSNumber)))
}

// Update validates record and overwrites the non-key fields of the patient
// registered under nhsNumber. The NHS number itself never changes.
func (s *PatientService) Update(ctx context.Context, nhsNumber string, record validation.Record) Result {
	ctx, span := s.tracer.Start(ctx, "PatientService.Update",
		trace.WithAttributes(attribute.String("patient.nhs_number", nhsNumber)))

	if errs := validation.ValidatePatient(record); len(errs) > 0 {
		s.log.Debug("patient update rejected", zap.Int("errors", len(errs)))
		return finish(span, ValidationFailed(errs))
	}

	patient := record.Patient()
	patient.NHSNumber = nhsNumber

	ok, err := s.repo.UpdateByNHSNumber(ctx, nhsNumber, patient.Changes())
	if err != nil {
		s.log.Error("failed to update patient", zap.String("nhs_number", nhsNumber), zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotUpdatePatient))
	}
	if !ok {
		return finish(span, NotFound(models.KeyPatientNotFound, "nhs_number", nhsNumber))
	}

	return finish(span, Success(patient, notice(models.KeyPatientUpdated, "nhs_number", nhsNumber)))
}

// Get returns the patient registered under nhsNumber.
func (s *PatientService) Get(ctx context.Context, nhsNumber string) Result {
	ctx, span := s.tracer.Start(ctx, "PatientService.Get",
		trace.WithAttributes(attribute.String("patient.nhs_number", nhsNumber)))

	patient, err := s.repo.GetByNHSNumber(ctx, nhsNumber)
	if err != nil {
		s.log.Error("failed to get patient", zap.String("nhs_number", nhsNumber), zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotReadRecords))
	}
	if patient == nil {
		return finish(span, NotFound(models.KeyPatientNotFound, "nhs_number", nhsNumber))
	}

	return finish(span, Success(patient, nil))
}

// Delete removes the patient registered under nhsNumber.
func (s *PatientService) Delete(ctx context.Context, nhsNumber string) Result {
	ctx, span := s.tracer.Start(ctx, "PatientService.Delete",
		trace.WithAttributes(attribute.String("patient.nhs_number", nhsNumber)))

	ok, err := s.repo.DeleteByNHSNumber(ctx, nhsNumber)
	if err != nil {
		s.log.Error("failed to delete patient", zap.String("nhs_number", nhsNumber), zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotDeletePatient))
	}
	if !ok {
		return finish(span, NotFound(models.KeyPatientNotFound, "nhs_number", nhsNumber))
	}

	return finish(span, Success(nil, notice(models.KeyPatientDeleted, "nhs_number", nhsNumber)))
}

// List returns every patient.
func (s *PatientService) List(ctx context.Context) Result {
	ctx, span := s.tracer.Start(ctx, "PatientService.List")

	patients, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list patients", zap.Error(err))
		return finish(span, DatabaseError(models.KeyCouldNotReadRecords))
	}
	if patients == nil {
		patients = []models.Patient{}
	}

	return finish(span, Success(patients, notice(models.KeyPatientsFetched)))
}
