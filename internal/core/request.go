// AngelaMos | 2026
// request.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// Paging holds the list size bounds applied to every paginated endpoint.
type Paging struct {
	Default int
	Max     int
}

// FromQuery reads limit and offset. Missing or malformed values fall back
// to the defaults rather than failing the request.
func (p Paging) FromQuery(r *http.Request) Page {
	page := Page{
		Limit:  QueryInt(r, "limit", p.Default),
		Offset: QueryInt(r, "offset", 0),
	}
	page.Normalize(p.Default, p.Max)
	return page
}

// Limit reads a bare limit for unpaged lists such as featured rows.
func (p Paging) Limit(r *http.Request, defaultVal int) int {
	page := Page{Limit: QueryInt(r, "limit", defaultVal)}
	page.Normalize(defaultVal, p.Max)
	return page.Limit
}

func QueryInt(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

// QueryDecimal parses an optional numeric filter. Absent keys yield nil.
func QueryDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(val)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number: %w", key, ErrInvalidInput)
	}

	return &d, nil
}

func IDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, ValidationError(name + " must be a positive integer")
	}
	return id, nil
}

// DecodeAndValidate reads a JSON body into dst and runs struct validation.
// Every failure is returned as a 400 AppError.
func DecodeAndValidate(r *http.Request, v *validator.Validate, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ValidationError("request body is required")
		}
		return ValidationError("invalid request body")
	}

	if err := v.Struct(dst); err != nil {
		return ValidationError(FormatValidationError(err))
	}

	return nil
}
