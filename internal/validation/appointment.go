package validation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"panda-server/internal/models"
)

// AppointmentRequiredFields must all be present and non-empty on an appointment record.
var AppointmentRequiredFields = []models.Field{
	models.FieldPatient, models.FieldStatus, models.FieldTime, models.FieldDuration,
	models.FieldClinician, models.FieldDepartment, models.FieldPostcode, models.FieldID,
}

// isoLayouts are the ISO 8601 shapes accepted for an appointment time: a bare
// date, or a date and time joined by 'T' or a space, with an optional offset.
var isoLayouts = buildISOLayouts()

func buildISOLayouts() []string {
	layouts := []string{DateLayout}
	for _, sep := range []string{"T", " "} {
		for _, clock := range []string{"15", "15:04", "15:04:05"} {
			for _, zone := range []string{"", "Z07:00", "-0700", "-07"} {
				layouts = append(layouts, DateLayout+sep+clock+zone)
			}
		}
	}
	return layouts
}

// ValidateAppointment validates an appointment record. Missing fields are
// reported on their own; otherwise every rule runs and all failures are
// returned.
func ValidateAppointment(record Record) []models.Message {
	if errs := RequiredFields(record, AppointmentRequiredFields...); len(errs) > 0 {
		return errs
	}

	var errs []models.Message
	errs = append(errs, validateDetails(record)...)
	errs = append(errs, validatePersonnel(record)...)
	errs = append(errs, validateLocation(record)...)
	return errs
}

func validateDetails(record Record) []models.Message {
	var errs []models.Message

	if id, ok := record.Text(models.FieldID); !ok || !isUUID(id) {
		errs = append(errs, models.FieldMessage(models.KeyInvalidUUID, models.FieldID))
	}

	if t, ok := record.Text(models.FieldTime); !ok || !IsISODateTime(t) {
		errs = append(errs, models.FieldMessage(models.KeyInvalidISO8601Time, models.FieldTime))
	}

	duration, _ := record.Value(models.FieldDuration)
	errs = append(errs, RegexFullMatch(duration, durationPattern,
		models.KeyInvalidDurationFormat, fieldParams(models.FieldDuration))...)

	if status, ok := record.Text(models.FieldStatus); !ok || !models.AppointmentStatus(status).IsValid() {
		errs = append(errs, models.NewMessage(models.KeyInvalidStatus,
			"field", string(models.FieldStatus),
			"allowed", allowedStatuses()))
	}

	return errs
}

// validatePersonnel checks who the appointment is for and with. The patient
// reference is checked for shape only; the checksum belongs to patient records.
func validatePersonnel(record Record) []models.Message {
	var errs []models.Message

	patient, _ := record.Value(models.FieldPatient)
	errs = append(errs, RegexFullMatch(patient, nhsNumberPattern,
		models.KeyInvalidPatientID, fieldParams(models.FieldPatient))...)

	clinician, _ := record.Value(models.FieldClinician)
	errs = append(errs, MinLength(clinician, 3,
		models.KeyInvalidClinician, fieldParams(models.FieldClinician))...)

	return errs
}

func validateLocation(record Record) []models.Message {
	var errs []models.Message

	if record.Missing(models.FieldPostcode) {
		errs = append(errs, models.FieldMessage(models.KeyMissingPostcode, models.FieldPostcode))
	} else {
		postcode, _ := record.Value(models.FieldPostcode)
		errs = append(errs, Postcode(postcode, fieldParams(models.FieldPostcode))...)
	}

	if department, ok := record.Text(models.FieldDepartment); !ok || department == "" {
		errs = append(errs, models.FieldMessage(models.KeyInvalidDepartment, models.FieldDepartment))
	}

	return errs
}

// IsISODateTime reports whether s is an ISO 8601 date or datetime. The value
// is only checked, never rewritten.
func IsISODateTime(s string) bool {
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// isUUID accepts only the canonical hyphenated form. uuid.Parse also takes
// braced, urn and bare hex forms, none of which fit the 36 character column.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func allowedStatuses() string {
	names := make([]string, len(models.AppointmentStatuses))
	for i, s := range models.AppointmentStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
