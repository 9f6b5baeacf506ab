package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// DatabaseType selects the storage backend.
type DatabaseType string

const (
	DatabaseMemory   DatabaseType = "memory"
	DatabaseMySQL    DatabaseType = "mysql"
	DatabasePostgres DatabaseType = "postgres"
)

// NeedsConnection reports whether the backend requires an open *gorm.DB.
func (t DatabaseType) NeedsConnection() bool {
	return t == DatabaseMySQL || t == DatabasePostgres
}

// New builds the patient and appointment repositories for the given backend.
// db is ignored for the memory backend and required otherwise.
func New(dbType DatabaseType, db *gorm.DB) (PatientRepository, AppointmentRepository, error) {
	switch dbType {
	case DatabaseMemory:
		return NewMemoryPatientRepository(), NewMemoryAppointmentRepository(), nil
	case DatabaseMySQL, DatabasePostgres:
		if db == nil {
			return nil, nil, fmt.Errorf("%s repository needs a database connection", dbType)
		}
		return NewGormPatientRepository(db), NewGormAppointmentRepository(db), nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedDatabase, dbType)
}
