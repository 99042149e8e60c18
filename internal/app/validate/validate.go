// Package validate holds the input coercion helpers shared by the procedure
// layer: caller identity, ISO date and clock parsing, and the mapping of
// store failures onto the error taxonomy.
package validate

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/platform/database"
)

// dateLayouts are accepted for date-only fields: plain ISO dates plus full
// RFC 3339 timestamps, which callers sometimes send for date fields.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Date parses a required date field.
func Date(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.Validation(field, field+" is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Validationf(field, "%s must be an ISO date, got %q", field, value)
}

// OptionalDate parses an optional date field; a nil or empty value stays nil.
func OptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := Date(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Caller rejects a missing or invalid caller identity. Every operation on
// user-owned records runs this before touching storage.
func Caller(userID int64) error {
	if userID <= 0 {
		return errors.Unauthorized("")
	}
	return nil
}

// Clock parses a required wall-clock "HH:MM" field.
func Clock(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.Validation(field, field+" is required")
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return errors.Validationf(field, "%s must be a HH:MM clock time, got %q", field, value)
	}
	return nil
}

// Required rejects blank strings.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.Validation(field, field+" is required")
	}
	return nil
}

// StoreWrite maps a persistence failure on a write path onto the taxonomy.
// Reads never call this; they degrade to empty results instead.
func StoreWrite(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, database.ErrUnavailable) {
		return errors.StoreUnavailable(err)
	}
	if errors.GetServiceError(err) != nil {
		return err
	}
	return errors.Internal("persistence failure", err)
}
