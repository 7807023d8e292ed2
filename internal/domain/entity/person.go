package entity

import "time"

// Person is one roster entry. ID is the person's roll number.
type Person struct {
	ID           string    `gorm:"column:roll_number;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	BirthDate    time.Time `gorm:"column:birth_date" json:"birth_date"`
	CountryCode  string    `gorm:"column:country_code" json:"country_code"`
	MobileNumber string    `gorm:"column:mobile_number" json:"mobile_number"`
	FieldOfStudy string    `gorm:"column:field_of_study" json:"field_of_study"`
	Branch       string    `gorm:"column:branch" json:"branch"`
}

// TableName specifies the table name for the Person entity.
func (Person) TableName() string {
	return "roster"
}

// Phone returns the country code and mobile number joined, or "" when no number is known.
func (p *Person) Phone() string {
	if p.MobileNumber == "" {
		return ""
	}
	return p.CountryCode + p.MobileNumber
}

// RosterSnapshot holds the people whose birthday falls today or tomorrow,
// valid only for the calendar day in Date.
type RosterSnapshot struct {
	Date     time.Time `json:"date"`
	Today    []*Person `json:"today"`
	Tomorrow []*Person `json:"tomorrow"`
}
