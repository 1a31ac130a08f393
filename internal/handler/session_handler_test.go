package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lernplan-api/internal/models"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
)

func TestSessionHandlerSingleDay(t *testing.T) {
	svc := &sessionServiceStub{sessions: []models.Session{{ID: "2026-01-05-1", ContentID: "c-1", Date: "2026-01-05", Position: 1}}}
	h := NewSessionHandler(svc)
	c, w := newTestContext(t, http.MethodGet, "/plans/plan-1/sessions?date=2026-01-05", nil, "plan-1")

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-01-05", svc.lastDate)
	var day models.DaySessions
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &day))
	assert.Equal(t, "2026-01-05", day.Date)
	assert.Len(t, day.Sessions, 1)
}

func TestSessionHandlerRange(t *testing.T) {
	svc := &sessionServiceStub{days: []models.DaySessions{{Date: "2026-01-05"}, {Date: "2026-01-06"}}}
	h := NewSessionHandler(svc)
	c, w := newTestContext(t, http.MethodGet, "/plans/plan-1/sessions", nil, "plan-1")

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.lastDate)
	assert.EqualValues(t, 2, decodeEnvelope(t, w).Meta["days"])
}

func TestSessionHandlerBadDate(t *testing.T) {
	h := NewSessionHandler(&sessionServiceStub{err: appErrors.Clone(appErrors.ErrValidation, "invalid date")})
	c, w := newTestContext(t, http.MethodGet, "/plans/plan-1/sessions?date=05.01.2026", nil, "plan-1")

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
