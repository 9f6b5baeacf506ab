package models

// Field is the wire name of a record attribute. It doubles as the document key
// and the database column name.
type Field string

// Patient fields
const (
	FieldNHSNumber   Field = "nhs_number"
	FieldName        Field = "name"
	FieldDateOfBirth Field = "date_of_birth"
	FieldPostcode    Field = "postcode"
)

// Appointment fields
const (
	FieldID         Field = "id"
	FieldPatient    Field = "patient"
	FieldStatus     Field = "status"
	FieldTime       Field = "time"
	FieldDuration   Field = "duration"
	FieldClinician  Field = "clinician"
	FieldDepartment Field = "department"
)

// String returns the wire name.
func (f Field) String() string {
	return string(f)
}

// Changes is a partial document: the fields to overwrite and their new values.
type Changes map[Field]string

// Columns converts the changes into a column map usable by gorm's Updates.
func (c Changes) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, len(c))
	for field, value := range c {
		cols[string(field)] = value
	}
	return cols
}
