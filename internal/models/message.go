package models

// MessageKey identifies a message in the localisation catalogs. Keys are a
// stable contract with clients and must never be renamed.
type MessageKey string

// Validation keys
const (
	KeyMissingRequiredField     MessageKey = "missing_required_field"
	KeyInvalidNHSNumber         MessageKey = "invalid_nhs_number"
	KeyInvalidNHSNumberChecksum MessageKey = "invalid_nhs_number_checksum"
	KeyInvalidName              MessageKey = "invalid_name"
	KeyInvalidDateFormat        MessageKey = "invalid_date_format"
	KeyInvalidDateOfBirth       MessageKey = "invalid_date_of_birth"
	KeyInvalidUKPostcode        MessageKey = "invalid_uk_postcode"
	KeyInvalidUUID              MessageKey = "invalid_uuid"
	KeyInvalidISO8601Time       MessageKey = "invalid_iso8601_time"
	KeyInvalidDurationFormat    MessageKey = "invalid_duration_format"
	KeyInvalidStatus            MessageKey = "invalid_status"
	KeyInvalidPatientID         MessageKey = "invalid_patient_id"
	KeyInvalidClinician         MessageKey = "invalid_clinician"
	KeyInvalidDepartment        MessageKey = "invalid_department"
	KeyMissingPostcode          MessageKey = "missing_postcode"
	KeyInvalidRequestBody       MessageKey = "invalid_request_body"
)

// Outcome keys
const (
	KeyPatientNotFound           MessageKey = "patient_not_found"
	KeyAppointmentNotFound       MessageKey = "appointment_not_found"
	KeyCouldNotCreatePatient     MessageKey = "could_not_create_patient"
	KeyCouldNotUpdatePatient     MessageKey = "could_not_update_patient"
	KeyCouldNotDeletePatient     MessageKey = "could_not_delete_patient"
	KeyCouldNotCreateAppointment MessageKey = "could_not_create_appointment"
	KeyCouldNotUpdateAppointment MessageKey = "could_not_update_appointment"
	KeyCouldNotReadRecords       MessageKey = "could_not_read_records"
	KeyUnauthorized              MessageKey = "unauthorized"
	KeyRequestFailed             MessageKey = "request_failed"
	KeyTooManyRequests           MessageKey = "too_many_requests"
)

// Success keys
const (
	KeyNewPatientAdded      MessageKey = "new_patient_added"
	KeyPatientUpdated       MessageKey = "patient_updated"
	KeyPatientDeleted       MessageKey = "patient_deleted"
	KeyNewAppointmentAdded  MessageKey = "new_appointment_added"
	KeyAppointmentUpdated   MessageKey = "appointment_updated"
	KeyAppointmentCancelled MessageKey = "appointment_cancelled"
	KeyPatientsFetched      MessageKey = "patients_fetched"
	KeyAppointmentsFetched  MessageKey = "appointments_fetched"
)

// Message is a structured error or notice: a catalog key plus the values to
// interpolate into it. It carries no rendered prose.
type Message struct {
	Key    MessageKey        `json:"key"`
	Params map[string]string `json:"params"`
}

// NewMessage builds a message from a key and alternating name/value pairs.
func NewMessage(key MessageKey, kv ...string) Message {
	params := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		params[kv[i]] = kv[i+1]
	}
	return Message{Key: key, Params: params}
}

// FieldMessage builds a message whose only parameter is the offending field.
func FieldMessage(key MessageKey, field Field) Message {
	return NewMessage(key, "field", string(field))
}

// HasKey reports whether any message in msgs carries key.
func HasKey(msgs []Message, key MessageKey) bool {
	for _, m := range msgs {
		if m.Key == key {
			return true
		}
	}
	return false
}
