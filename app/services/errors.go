package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/bilemo/api/pkg/database"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports business-rule failures per JSON field, in the
// same shape as request validation errors.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func alreadyUsed(field string) *ValidationError {
	return fieldError(field, "This value is already used.")
}

// notFound maps gorm's missing-row error to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// uniqueViolation turns a unique index failure into a ValidationError on the
// field owning the violated column. columns maps column names to fields;
// the first entry is blamed when the driver does not name the column.
func uniqueViolation(err error, columns [][2]string) error {
	if !database.IsUniqueViolation(err) {
		return err
	}
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c[0]
	}
	col := database.UniqueViolationColumn(err, names...)
	for _, c := range columns {
		if c[0] == col {
			return alreadyUsed(c[1])
		}
	}
	if len(columns) > 0 {
		return alreadyUsed(columns[0][1])
	}
	return fmt.Errorf("unique violation: %w", err)
}
