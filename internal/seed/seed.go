// Package seed loads example records into storage through the services, so
// seeded data obeys the same rules as data created over HTTP.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"panda-server/internal/service"
	"panda-server/internal/validation"
)

const (
	PatientsFile     = "example_patients.json"
	AppointmentsFile = "example_appointments.json"
)

// Summary counts the outcome of seeding one file.
type Summary struct {
	File    string
	Loaded  int
	Skipped int
}

// Seeder writes example records through the services.
type Seeder struct {
	patients     *service.PatientService
	appointments *service.AppointmentService
	log          *zap.Logger
}

// New creates a Seeder.
func New(patients *service.PatientService, appointments *service.AppointmentService, log *zap.Logger) *Seeder {
	return &Seeder{patients: patients, appointments: appointments, log: log.Named("seed")}
}

// Run loads the patients file then the appointments file from fsys. Records
// the services refuse are logged and skipped; only unreadable files fail.
func (s *Seeder) Run(ctx context.Context, fsys fs.FS) ([]Summary, error) {
	patients, err := ReadRecords(fsys, PatientsFile)
	if err != nil {
		return nil, err
	}
	appointments, err := ReadRecords(fsys, AppointmentsFile)
	if err != nil {
		return nil, err
	}

	return []Summary{
		s.load(ctx, PatientsFile, patients, s.patients.Create),
		s.load(ctx, AppointmentsFile, appointments, s.appointments.Create),
	}, nil
}

func (s *Seeder) load(ctx context.Context, file string, records []validation.Record, create func(context.Context, validation.Record) service.Result) Summary {
	summary := Summary{File: file}
	for i, record := range records {
		res := create(ctx, record)
		if !res.OK() {
			summary.Skipped++
			s.log.Warn("record skipped",
				zap.String("file", file),
				zap.Int("index", i),
				zap.String("kind", string(res.Kind)),
				zap.Any("errors", res.Errors))
			continue
		}
		summary.Loaded++
	}
	s.log.Info("seeded", zap.String("file", file), zap.Int("loaded", summary.Loaded), zap.Int("skipped", summary.Skipped))
	return summary
}

// ReadRecords decodes a JSON array of objects.
func ReadRecords(fsys fs.FS, name string) ([]validation.Record, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	var records []validation.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return records, nil
}
