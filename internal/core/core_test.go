// AngelaMos | 2026
// core_test.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhere(t *testing.T) {
	var w Where
	assert.Empty(t, w.Clause())
	assert.Equal(t, 1, w.Next())

	w.AddRaw("is_active = TRUE")
	w.Add("category = $?", "metal")
	w.Add("(name ILIKE $? OR description ILIKE $?)", "%x%")

	assert.Equal(t,
		"WHERE is_active = TRUE AND category = $1 AND (name ILIKE $2 OR description ILIKE $2)",
		w.Clause(),
	)
	assert.Equal(t, []any{"metal", "%x%"}, w.Args())
	assert.Equal(t, 3, w.Next())

	args := append(w.Args(), 20)
	assert.Len(t, args, 3)
	assert.Len(t, w.Args(), 2, "Args returns a copy")
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\d`, EscapeLike(`c:\d`))
	assert.Equal(t, `%steel%`, ContainsPattern("steel"))
}

func TestPageNormalize(t *testing.T) {
	p := Page{Limit: 0, Offset: -5}
	p.Normalize(20, 100)
	assert.Equal(t, Page{Limit: 20, Offset: 0}, p)

	p = Page{Limit: 500, Offset: 40}
	p.Normalize(20, 100)
	assert.Equal(t, Page{Limit: 100, Offset: 40}, p)
}

func TestPagingFromQuery(t *testing.T) {
	paging := Paging{Default: 20, Max: 100}

	r := httptest.NewRequest(http.MethodGet, "/?limit=abc&offset=10", nil)
	assert.Equal(t, Page{Limit: 20, Offset: 10}, paging.FromQuery(r))

	r = httptest.NewRequest(http.MethodGet, "/?limit=5", nil)
	assert.Equal(t, Page{Limit: 5, Offset: 0}, paging.FromQuery(r))
}

func TestQueryDecimal(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?budgetMin=1500.50&budgetMax=x", nil)

	d, err := QueryDecimal(r, "budgetMin")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1500.5")))

	d, err = QueryDecimal(r, "missing")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = QueryDecimal(r, "budgetMax")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestStringList(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(nil))
	assert.Equal(t, StringList{}, l)

	require.NoError(t, l.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, l)
	assert.True(t, l.Contains("b"))

	require.NoError(t, l.Scan(`null`))
	assert.Equal(t, StringList{}, l)

	require.Error(t, l.Scan(42))

	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringList{"x"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["x"]`, v)
}

func TestTranslateStoreError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	fk := &pgconn.PgError{Code: "23503"}
	overflow := &pgconn.PgError{Code: "22003"}

	require.ErrorIs(t, TranslateStoreError("op", dup), ErrDuplicateKey)
	require.ErrorIs(t, TranslateStoreError("op", fk), ErrInvalidInput)
	require.ErrorIs(t, TranslateStoreError("op", overflow), ErrInvalidInput)
	require.NoError(t, TranslateStoreError("op", nil))

	other := errors.New("connection reset")
	err := TranslateStoreError("op", other)
	require.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"not found", fmt.Errorf("get: %w", ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", fmt.Errorf("update: %w", ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{"duplicate", fmt.Errorf("create: %w", ErrDuplicateKey), http.StatusConflict, "company already exists"},
		{"conflict", ConflictError("user already has a company"), http.StatusConflict, "user already has a company"},
		{"validation", ValidationError("title is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"store", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleServiceError(rec, tt.err, "company")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			var body Response
			require.NoError(t, json.NewDecoder(strings.NewReader(rec.Body.String())).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
		})
	}
}

func TestPaginatedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []int{1, 2}, 2, 4, 9)

	var body struct {
		Success bool     `json:"success"`
		Data    []int    `json:"data"`
		Meta    PageMeta `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, []int{1, 2}, body.Data)
	assert.Equal(t, PageMeta{Total: 9, Limit: 2, Offset: 4}, body.Meta)
}

func TestValidatorDecimal(t *testing.T) {
	type req struct {
		Budget *decimal.Decimal `json:"budget" validate:"omitempty,gte=0,lte=9999999999.99"`
	}
	v := NewValidator()

	neg := decimal.NewFromInt(-1)
	err := v.Struct(req{Budget: &neg})
	require.Error(t, err)
	assert.Contains(t, FormatValidationError(err), "budget must be >= 0")

	huge := decimal.RequireFromString("99999999999999")
	err = v.Struct(req{Budget: &huge})
	require.Error(t, err)
	assert.Contains(t, FormatValidationError(err), "budget must be <= 9999999999.99")

	pos := decimal.NewFromInt(100000)
	require.NoError(t, v.Struct(req{Budget: &pos}))
	require.NoError(t, v.Struct(req{}))
}

func TestSet(t *testing.T) {
	var s Set
	s.Add("title", "Gears")
	s.Add("budget", 100)
	s.AddRaw("updated_at = NOW()")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "title = $1, budget = $2, updated_at = NOW()", s.Clause())
	assert.Equal(t, []any{"Gears", 100}, s.Args())
	assert.Equal(t, 3, s.Next())
}

func TestPagingLimit(t *testing.T) {
	paging := Paging{Default: 20, Max: 100}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, 6, paging.Limit(r, 6))

	r = httptest.NewRequest(http.MethodGet, "/?limit=1000", nil)
	assert.Equal(t, 100, paging.Limit(r, 6))

	r = httptest.NewRequest(http.MethodGet, "/?limit=-3", nil)
	assert.Equal(t, 6, paging.Limit(r, 6))
}
