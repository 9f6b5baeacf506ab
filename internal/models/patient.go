package models

// Patient represents a registered patient. The NHS number is the identity key.
type Patient struct {
	NHSNumber   string `gorm:"column:nhs_number;primaryKey;size:10" json:"nhs_number"`
	Name        string `gorm:"column:name;size:255;not null" json:"name"`
	DateOfBirth string `gorm:"column:date_of_birth;size:10;not null" json:"date_of_birth"`
	Postcode    string `gorm:"column:postcode;size:16;not null" json:"postcode"`
}

// TableName overrides the table name used by gorm.
func (Patient) TableName() string {
	return "patients"
}

// Changes returns every non-key field of the patient as a partial document.
func (p *Patient) Changes() Changes {
	return Changes{
		FieldName:        p.Name,
		FieldDateOfBirth: p.DateOfBirth,
		FieldPostcode:    p.Postcode,
	}
}

// Apply overwrites the fields named in changes. Unknown fields and the
// identity key are ignored.
func (p *Patient) Apply(changes Changes) {
	for field, value := range changes {
		switch field {
		case FieldName:
			p.Name = value
		case FieldDateOfBirth:
			p.DateOfBirth = value
		case FieldPostcode:
			p.Postcode = value
		}
	}
}
