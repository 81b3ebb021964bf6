package policy

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"edusync/backend/pkg/metrics"
)

var (
	student    = Identity{UserID: "u-student", Role: "Student"}
	instructor = Identity{UserID: "u-instructor", Role: "Instructor"}
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want Decision
	}{
		{"anonymous", Request{}, DenyUnauthenticated},
		{"anonymous with role", Request{RequiredRole: "Instructor"}, DenyUnauthenticated},
		{"authenticated only", Request{Caller: student}, Allow},
		{"role match", Request{Caller: instructor, RequiredRole: "Instructor"}, Allow},
		{"role mismatch", Request{Caller: student, RequiredRole: "Instructor"}, DenyForbidden},
		{"owner match", Request{Caller: instructor, RequiredRole: "Instructor", OwnerID: "u-instructor"}, Allow},
		{"owner mismatch", Request{Caller: instructor, RequiredRole: "Instructor", OwnerID: "u-other"}, DenyForbidden},
		{"self without role", Request{Caller: student, OwnerID: "u-student"}, Allow},
		{"role checked before owner", Request{Caller: student, RequiredRole: "Instructor", OwnerID: "u-student"}, DenyForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.req))
		})
	}
}

func TestDecide_IsPure(t *testing.T) {
	req := Request{Caller: instructor, OwnerID: "u-other"}
	first := Decide(req)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Decide(req))
	}
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, Allow.Err())
	assert.ErrorIs(t, DenyUnauthenticated.Err(), ErrUnauthenticated)
	assert.ErrorIs(t, DenyForbidden.Err(), ErrForbidden)
}

func TestAuthorize_RecordsDecision(t *testing.T) {
	counter := metrics.AuthzDecisionsTotal.WithLabelValues("Student", "deny_forbidden")
	before := testutil.ToFloat64(counter)

	err := Authorize(Request{Caller: student, RequiredRole: "Instructor"})

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
