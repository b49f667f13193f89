// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bilemo/api/config"
	"github.com/bilemo/api/pkg/validate"
)

// ErrBodyTooLarge is returned when the body exceeds MAX_BODY_BYTES.
var ErrBodyTooLarge = errors.New("request body too large")

// JSON decodes r.Body as JSON into dest and runs validation.
// Unknown fields are rejected so that read-only attributes such as "id" or
// "slug" cannot be smuggled into a write.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest any) (errs map[string]string, err error) {
	limit := config.MaxBodyBytes()
	r.Body = http.MaxBytesReader(nil, r.Body, limit)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w (max %d bytes)", ErrBodyTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
