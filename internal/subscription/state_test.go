package subscription

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

const day = 24 * time.Hour

func TestEvaluate_StateMachine(t *testing.T) {
	cases := []struct {
		name      string
		sub       repository.Subscription
		effective State
		access    Access
	}{
		{"trial vigente", repository.Subscription{Status: repository.StatusTrial, TrialEnd: at(day)}, StateTrial, AccessFull},
		{"trial sin fecha", repository.Subscription{Status: repository.StatusTrial}, StateTrial, AccessFull},
		{"trial vencido", repository.Subscription{Status: repository.StatusTrial, TrialEnd: at(-time.Second)}, StateExpired, AccessDenied},
		{"trial vence justo ahora", repository.Subscription{Status: repository.StatusTrial, TrialEnd: at(0)}, StateTrial, AccessFull},
		{"activa vigente", repository.Subscription{Status: repository.StatusActive, EndDate: at(day)}, StateActive, AccessFull},
		{"activa sin fin", repository.Subscription{Status: repository.StatusActive}, StateActive, AccessFull},
		{"activa vencida con gracia", repository.Subscription{Status: repository.StatusActive, EndDate: at(-day), GraceEnd: at(2 * day)}, StateGrace, AccessReadOnly},
		{"activa vencida gracia vencida", repository.Subscription{Status: repository.StatusActive, EndDate: at(-3 * day), GraceEnd: at(-day)}, StateExpired, AccessDenied},
		{"activa vencida sin gracia", repository.Subscription{Status: repository.StatusActive, EndDate: at(-day)}, StateExpired, AccessDenied},
		{"grace persistida vigente", repository.Subscription{Status: repository.StatusGrace, GraceEnd: at(day)}, StateGrace, AccessReadOnly},
		{"grace persistida vencida", repository.Subscription{Status: repository.StatusGrace, GraceEnd: at(-day)}, StateExpired, AccessDenied},
		{"expired con fechas futuras", repository.Subscription{Status: repository.StatusExpired, EndDate: at(day), GraceEnd: at(day)}, StateExpired, AccessDenied},
		{"suspended con fechas futuras", repository.Subscription{Status: repository.StatusSuspended, EndDate: at(day)}, StateSuspended, AccessDenied},
		{"status desconocido", repository.Subscription{Status: "weird"}, StateSuspended, AccessDenied},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := tc.sub
			ev := Evaluate(&sub, now, PolicyAllow)
			assert.Equal(t, tc.effective, ev.Effective)
			assert.Equal(t, tc.access, ev.Access)
			assert.Equal(t, tc.sub.Status, ev.Persisted)
		})
	}
}

func TestEvaluate_NoSubscriptionPolicy(t *testing.T) {
	assert.Equal(t, AccessFull, Evaluate(nil, now, PolicyAllow).Access)
	assert.Equal(t, AccessReadOnly, Evaluate(nil, now, PolicyReadOnly).Access)
	assert.Equal(t, AccessDenied, Evaluate(nil, now, PolicyDeny).Access)
	assert.Equal(t, StateNone, Evaluate(nil, now, PolicyDeny).Effective)
}

func TestEvaluation_Permits(t *testing.T) {
	grace := Evaluation{Effective: StateGrace, Access: AccessReadOnly}
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodOptions, "get"} {
		assert.True(t, grace.Permits(m), m)
	}
	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		assert.False(t, grace.Permits(m), m)
	}

	expired := Evaluation{Effective: StateExpired, Access: AccessDenied}
	assert.False(t, expired.Permits(http.MethodGet))

	active := Evaluation{Effective: StateActive, Access: AccessFull}
	assert.True(t, active.Permits(http.MethodDelete))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyAllow, p)

	p, err = ParsePolicy(" READ_ONLY ")
	require.NoError(t, err)
	assert.Equal(t, PolicyReadOnly, p)

	p, err = ParsePolicy("deny")
	require.NoError(t, err)
	assert.Equal(t, PolicyDeny, p)

	_, err = ParsePolicy("maybe")
	require.Error(t, err)
}
