package domain

import (
	"fmt"
	"time"
)

// Sex determines which legal thresholds apply to an insured worker.
type Sex string

const (
	SexFemale Sex = "F"
	SexMale   Sex = "M"
)

// Valid reports whether the value is one of the two legally defined codes.
func (s Sex) Valid() bool {
	return s == SexFemale || s == SexMale
}

// Category is the insured worker's affiliation category with the social
// security administration.
type Category string

const (
	CategoryEmployee   Category = "employee"
	CategoryIndividual Category = "individual"
	CategoryOptional   Category = "optional"
	CategoryDomestic   Category = "domestic"
	CategoryRural      Category = "rural"
)

// InsuredProfile identifies the worker whose benefit is being computed.
// FilingDate is the DER, the date the benefit request is filed.
type InsuredProfile struct {
	Name       string    `yaml:"name" json:"name"`
	BirthDate  time.Time `yaml:"birth_date" json:"birth_date"`
	Sex        Sex       `yaml:"sex" json:"sex"`
	FilingDate time.Time `yaml:"filing_date" json:"filing_date"`
	Category   Category  `yaml:"category,omitempty" json:"category,omitempty"`
}

// Age calculates the insured's civil age at a given date: the year difference
// minus one when the (month, day) anniversary has not yet been reached.
func (p *InsuredProfile) Age(atDate time.Time) int {
	age := atDate.Year() - p.BirthDate.Year()
	if atDate.Month() < p.BirthDate.Month() ||
		(atDate.Month() == p.BirthDate.Month() && atDate.Day() < p.BirthDate.Day()) {
		age--
	}
	return age
}

// Validate checks the fields required by every calculation.
func (p *InsuredProfile) Validate() error {
	if p.BirthDate.IsZero() {
		return fmt.Errorf("birth date is required")
	}
	if !p.Sex.Valid() {
		return fmt.Errorf("sex must be %q or %q, got %q", SexFemale, SexMale, p.Sex)
	}
	if !p.FilingDate.IsZero() && p.FilingDate.Before(p.BirthDate) {
		return fmt.Errorf("filing date (%s) cannot be before birth date (%s)",
			p.FilingDate.Format("2006-01-02"), p.BirthDate.Format("2006-01-02"))
	}
	return nil
}
