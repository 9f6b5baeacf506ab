package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusActive    AppointmentStatus = "active"
	StatusAttended  AppointmentStatus = "attended"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusMissed    AppointmentStatus = "missed"
)

// AppointmentStatuses lists every status an appointment may carry.
var AppointmentStatuses = []AppointmentStatus{StatusActive, StatusAttended, StatusCancelled, StatusMissed}

// IsValid reports whether s is one of the known statuses.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusAttended, StatusCancelled, StatusMissed:
		return true
	}
	return false
}

// Appointment represents a scheduled appointment between a patient and a clinician.
// Time is kept exactly as supplied so the client's offset survives a round trip.
type Appointment struct {
	ID         string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	Patient    string            `gorm:"column:patient;size:10;index;not null" json:"patient"`
	Status     AppointmentStatus `gorm:"column:status;size:20;index;not null" json:"status"`
	Time       string            `gorm:"column:time;size:40;not null" json:"time"`
	Duration   string            `gorm:"column:duration;size:16;not null" json:"duration"`
	Clinician  string            `gorm:"column:clinician;size:255;not null" json:"clinician"`
	Department string            `gorm:"column:department;size:255;not null" json:"department"`
	Postcode   string            `gorm:"column:postcode;size:16;not null" json:"postcode"`
}

// TableName overrides the table name used by gorm.
func (Appointment) TableName() string {
	return "appointments"
}

// Changes returns every non-key field of the appointment as a partial document.
func (a *Appointment) Changes() Changes {
	return Changes{
		FieldPatient:    a.Patient,
		FieldStatus:     string(a.Status),
		FieldTime:       a.Time,
		FieldDuration:   a.Duration,
		FieldClinician:  a.Clinician,
		FieldDepartment: a.Department,
		FieldPostcode:   a.Postcode,
	}
}

// Apply overwrites the fields named in changes. Unknown fields and the
// identity key are ignored.
func (a *Appointment) Apply(changes Changes) {
	for field, value := range changes {
		switch field {
		case FieldPatient:
			a.Patient = value
		case FieldStatus:
			a.Status = AppointmentStatus(value)
		case FieldTime:
			a.Time = value
		case FieldDuration:
			a.Duration = value
		case FieldClinician:
			a.Clinician = value
		case FieldDepartment:
			a.Department = value
		case FieldPostcode:
			a.Postcode = value
		}
	}
}
