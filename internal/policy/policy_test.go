// AngelaMos | 2026
// policy_test.go

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prombirzha/marketplace/internal/core"
)

func TestOwnership(t *testing.T) {
	require.NoError(t, CanUpdateOrder("u1", "u1"))
	require.ErrorIs(t, CanUpdateOrder("u2", "u1"), core.ErrForbidden)
	require.ErrorIs(t, CanUpdateOrder("", ""), core.ErrForbidden)

	require.NoError(t, CanUpdateCompany("u1", "u1"))
	require.ErrorIs(t, CanUpdateCompany("u2", "u1"), core.ErrForbidden)
}

func TestCompanyCreationAndResponding(t *testing.T) {
	require.NoError(t, CanCreateCompany(false))
	require.ErrorIs(t, CanCreateCompany(true), core.ErrConflict)

	require.NoError(t, CanRespond(true))
	require.ErrorIs(t, CanRespond(false), core.ErrForbidden)
}

func TestCanReview(t *testing.T) {
	require.NoError(t, CanReview("client", "owner"))
	require.ErrorIs(t, CanReview("owner", "owner"), core.ErrForbidden)
	require.ErrorIs(t, CanReview("", "owner"), core.ErrUnauthorized)
}

func TestCanSetResponseStatus(t *testing.T) {
	tests := []struct {
		caller string
		status string
		want   error
	}{
		{"customer", StatusAccepted, nil},
		{"customer", StatusRejected, nil},
		{"customer", StatusPending, nil},
		{"owner", StatusRejected, nil},
		{"owner", StatusPending, nil},
		{"owner", StatusAccepted, core.ErrForbidden},
		{"stranger", StatusRejected, core.ErrForbidden},
		{"", StatusRejected, core.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.caller+"/"+tt.status, func(t *testing.T) {
			err := CanSetResponseStatus(tt.caller, "customer", "owner", tt.status)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
