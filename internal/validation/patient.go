package validation

import (
	"time"

	"panda-server/internal/models"
)

// PatientRequiredFields must all be present and non-empty on a patient record.
var PatientRequiredFields = []models.Field{
	models.FieldNHSNumber, models.FieldName, models.FieldDateOfBirth, models.FieldPostcode,
}

// ValidatePatient validates a patient record against today's date.
func ValidatePatient(record Record) []models.Message {
	return ValidatePatientAt(record, time.Now())
}

// ValidatePatientAt validates a patient record, treating now as the current
// date for the date of birth check. Missing fields are reported on their own;
// otherwise every rule runs and all failures are returned.
func ValidatePatientAt(record Record, now time.Time) []models.Message {
	if errs := RequiredFields(record, PatientRequiredFields...); len(errs) > 0 {
		return errs
	}

	var errs []models.Message
	errs = append(errs, validateNHSNumber(record)...)

	name, _ := record.Value(models.FieldName)
	errs = append(errs, MinLength(name, 3, models.KeyInvalidName, fieldParams(models.FieldName))...)

	dob, _ := record.Value(models.FieldDateOfBirth)
	errs = append(errs, DateFormat(dob, DateLayout,
		models.KeyInvalidDateFormat, models.KeyInvalidDateOfBirth,
		fieldParams(models.FieldDateOfBirth, "format", ReadableDateFormat), now)...)

	postcode, _ := record.Value(models.FieldPostcode)
	errs = append(errs, Postcode(postcode, fieldParams(models.FieldPostcode))...)

	return errs
}

// validateNHSNumber reports a format error or, only when the format is right,
// a checksum error. Never both.
func validateNHSNumber(record Record) []models.Message {
	value, _ := record.Value(models.FieldNHSNumber)
	if errs := RegexFullMatch(value, nhsNumberPattern, models.KeyInvalidNHSNumber, fieldParams(models.FieldNHSNumber)); len(errs) > 0 {
		return errs
	}
	if !NHSChecksumValid(coerceString(value)) {
		return []models.Message{models.FieldMessage(models.KeyInvalidNHSNumberChecksum, models.FieldNHSNumber)}
	}
	return nil
}
