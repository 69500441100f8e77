package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HazardAgent names the hazardous condition a special period was worked under.
type HazardAgent string

const (
	HazardNoise       HazardAgent = "noise"
	HazardHeat        HazardAgent = "heat"
	HazardElectricity HazardAgent = "electricity"
	HazardChemical    HazardAgent = "chemical"
	HazardBiological  HazardAgent = "biological"
	HazardMining      HazardAgent = "mining"
)

// SpecialPeriod is a continuous stretch of work under hazardous conditions
// eligible for time-credit multiplication. The conversion factor must be one
// of the legally defined multipliers (1.4, 1.75, 2.0).
type SpecialPeriod struct {
	Start            time.Time       `yaml:"start" json:"start"`
	End              time.Time       `yaml:"end" json:"end"`
	ConversionFactor decimal.Decimal `yaml:"conversion_factor" json:"conversion_factor"`
	HazardAgent      HazardAgent     `yaml:"hazard_agent,omitempty" json:"hazard_agent,omitempty"`
	HasProof         bool            `yaml:"has_proof" json:"has_proof"`
}

// SpecialTimeResult breaks down the month counts derived from one period.
// Only CreditMonths counts toward total contribution time; the worked months
// are already counted once through the ledger.
type SpecialTimeResult struct {
	WorkedMonths    int `json:"worked_months"`
	ConvertedMonths int `json:"converted_months"`
	CreditMonths    int `json:"credit_months"`
}
