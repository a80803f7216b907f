package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateGSTIN(t *testing.T) {
	assert.NoError(t, ValidateGSTIN("27AABCS1234E1ZP", "party_gstin"))
	assert.NoError(t, ValidateGSTIN("  27AABCS1234E1ZP  ", "party_gstin"))

	err := ValidateGSTIN("27AABCS1234", "party_gstin")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "15 characters")

	// Right length, wrong shape
	err = ValidateGSTIN("AAAAAAAAAAAAAAA", "party_gstin")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid GSTIN format")

	// 14th character must be Z
	err = ValidateGSTIN("27AABCS1234E1XP", "party_gstin")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-03-15", "date")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("", "date")
	assert.Error(t, err)
	assert.Equal(t, "date is required", err.Error())

	_, err = ParseDate("15-03-2026", "date")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestParsePageParam(t *testing.T) {
	assert.Equal(t, 1, ParsePageParam("", 1))
	assert.Equal(t, 3, ParsePageParam("3", 1))
	assert.Equal(t, 10, ParsePageParam("abc", 10))
	assert.Equal(t, 10, ParsePageParam("0", 10))
	assert.Equal(t, 10, ParsePageParam("-4", 10))
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("vehicle_no")
	assert.Equal(t, "vehicle_no is required", err.Error())
}
