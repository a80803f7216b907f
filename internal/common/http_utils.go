package common

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[0-9A-Z]{1}[Z]{1}[0-9A-Z]{1}$`)

// MessageResponse is the error body shape for client failures.
type MessageResponse struct {
	Message string `json:"message"`
}

// SendMessage sends a JSON {"message": ...} body with the given status.
func SendMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, MessageResponse{Message: message})
}

// SendClientError sends a 400 client error response.
func SendClientError(c echo.Context, message string) error {
	return SendMessage(c, http.StatusBadRequest, message)
}

// SendServerError sends a 500 server error response. The body uses an
// "error" key, matching what PDF consumers already expect.
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": message})
}

// ValidateGSTIN validates the 15-character GSTIN format.
func ValidateGSTIN(gstin, fieldName string) error {
	gstin = strings.TrimSpace(gstin)
	if len(gstin) != 15 {
		return fmt.Errorf("%s must be exactly 15 characters", fieldName)
	}
	if !gstinPattern.MatchString(gstin) {
		return fmt.Errorf("%s has invalid GSTIN format", fieldName)
	}
	return nil
}

// ParseDate parses a required YYYY-MM-DD date field.
func ParseDate(dateStr, fieldName string) (time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return time.Time{}, NewValidationError(fieldName)
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", fieldName)
	}
	return date, nil
}

// ParsePageParam parses a positive integer query parameter, falling back
// to def when the value is absent or non-numeric.
func ParsePageParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
