package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"panda-server/internal/models"
)

// Record is a raw, client-supplied document. Values are whatever the JSON
// decoder produced, so nothing about their types can be assumed.
type Record map[string]interface{}

// Value returns the raw value stored under field.
func (r Record) Value(field models.Field) (interface{}, bool) {
	v, ok := r[string(field)]
	return v, ok
}

// Text returns the value stored under field when it is a string.
func (r Record) Text(field models.Field) (string, bool) {
	s, ok := r[string(field)].(string)
	return s, ok
}

// String returns the value stored under field coerced to a string, or ""
// when the field is absent.
func (r Record) String(field models.Field) string {
	v, ok := r[string(field)]
	if !ok {
		return ""
	}
	return coerceString(v)
}

// Missing reports whether field is absent or holds a falsy value. An empty
// string counts as missing, exactly like an absent key.
func (r Record) Missing(field models.Field) bool {
	v, ok := r[string(field)]
	return !ok || isFalsy(v)
}

// coerceString renders v the way a client would have typed it. Integral JSON
// numbers come back from the decoder as float64 and must not be printed in
// exponent form, otherwise 9434765919 would stop looking like an NHS number.
func coerceString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

func isFalsy(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Patient converts a validated record into a patient document.
func (r Record) Patient() *models.Patient {
	return &models.Patient{
		NHSNumber:   r.String(models.FieldNHSNumber),
		Name:        r.String(models.FieldName),
		DateOfBirth: r.String(models.FieldDateOfBirth),
		Postcode:    r.String(models.FieldPostcode),
	}
}

// Appointment converts a validated record into an appointment document.
func (r Record) Appointment() *models.Appointment {
	return &models.Appointment{
		ID:         r.String(models.FieldID),
		Patient:    r.String(models.FieldPatient),
		Status:     models.AppointmentStatus(r.String(models.FieldStatus)),
		Time:       r.String(models.FieldTime),
		Duration:   r.String(models.FieldDuration),
		Clinician:  r.String(models.FieldClinician),
		Department: r.String(models.FieldDepartment),
		Postcode:   r.String(models.FieldPostcode),
	}
}
