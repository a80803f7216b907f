package services

import (
	"fmt"
	"math"
)

// TaxCalculator computes the CGST/SGST split for an intra-state supply.
// Rates are percentages taken from configuration so jurisdictional
// changes never touch this code.
type TaxCalculator struct {
	CGSTRate float64
	SGSTRate float64
}

// NewTaxCalculator creates a calculator with the configured rates.
func NewTaxCalculator(cgstRate, sgstRate float64) *TaxCalculator {
	return &TaxCalculator{CGSTRate: cgstRate, SGSTRate: sgstRate}
}

// Split returns the two tax amounts for a net total, rounded to paise.
// The only failure is a negative net total.
func (t *TaxCalculator) Split(netTotal float64) (cgst, sgst float64, err error) {
	if netTotal < 0 {
		return 0, 0, fmt.Errorf("net total cannot be negative")
	}
	cgst = RoundPaise(netTotal * t.CGSTRate / 100)
	sgst = RoundPaise(netTotal * t.SGSTRate / 100)
	return cgst, sgst, nil
}

// RoundPaise rounds a rupee amount to two decimal places.
func RoundPaise(amount float64) float64 {
	return math.Round(amount*100) / 100
}
