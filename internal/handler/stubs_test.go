package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/middleware"
	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
	"github.com/noah-isme/lernplan-api/internal/service"
)

// newTestContext builds a gin context for a plan scoped request.
func newTestContext(t *testing.T, method, target string, body interface{}, planID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "planId", Value: planID}}
	return c, w
}

func withUser(c *gin.Context, userID string) {
	claims := &models.AuthClaims{}
	claims.Subject = userID
	c.Set(middleware.ContextUserKey, claims)
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type planServiceStub struct {
	plan    *models.PlanMetadata
	err     error
	lastKS  repository.Keyspace
	lastReq dto.UpdatePlanRequest
}

func (s *planServiceStub) Get(_ context.Context, ks repository.Keyspace) (*models.PlanMetadata, error) {
	s.lastKS = ks
	return s.plan, s.err
}

func (s *planServiceStub) Update(_ context.Context, ks repository.Keyspace, req dto.UpdatePlanRequest) (*models.PlanMetadata, error) {
	s.lastKS = ks
	s.lastReq = req
	return s.plan, s.err
}

type slotServiceStub struct {
	slots    map[string][]models.Slot
	slot     *models.Slot
	placed   []models.Slot
	swap     *dto.SwapResponse
	err      error
	lastKS   repository.Keyspace
	lastSwap dto.SwapRequest
}

func (s *slotServiceStub) List(_ context.Context, ks repository.Keyspace) (map[string][]models.Slot, error) {
	s.lastKS = ks
	return s.slots, s.err
}

func (s *slotServiceStub) BulkReplace(_ context.Context, ks repository.Keyspace, _ dto.BulkSlotsRequest) (map[string][]models.Slot, error) {
	s.lastKS = ks
	return s.slots, s.err
}

func (s *slotServiceStub) Upsert(_ context.Context, ks repository.Keyspace, _ dto.SlotInput) (*models.Slot, error) {
	s.lastKS = ks
	return s.slot, s.err
}

func (s *slotServiceStub) Assign(_ context.Context, ks repository.Keyspace, _ dto.AssignContentRequest) ([]models.Slot, error) {
	s.lastKS = ks
	return s.placed, s.err
}

func (s *slotServiceStub) Swap(_ context.Context, ks repository.Keyspace, req dto.SwapRequest) (*dto.SwapResponse, error) {
	s.lastKS = ks
	s.lastSwap = req
	return s.swap, s.err
}

func (s *slotServiceStub) CompleteWizard(_ context.Context, ks repository.Keyspace, _ dto.WizardRequest) (map[string][]models.Slot, error) {
	s.lastKS = ks
	return s.slots, s.err
}

type contentServiceStub struct {
	contents []models.Content
	content  *models.Content
	err      error
	deleted  string
}

func (s *contentServiceStub) List(context.Context, repository.Keyspace) ([]models.Content, error) {
	return s.contents, s.err
}

func (s *contentServiceStub) Get(context.Context, repository.Keyspace, string) (*models.Content, error) {
	return s.content, s.err
}

func (s *contentServiceStub) Save(context.Context, repository.Keyspace, dto.CreateContentRequest) (*models.Content, error) {
	return s.content, s.err
}

func (s *contentServiceStub) Delete(_ context.Context, _ repository.Keyspace, id string) error {
	s.deleted = id
	return s.err
}

type sessionServiceStub struct {
	sessions []models.Session
	days     []models.DaySessions
	lastDate string
	err      error
}

func (s *sessionServiceStub) ForDay(_ context.Context, _ repository.Keyspace, date string) ([]models.Session, error) {
	s.lastDate = date
	return s.sessions, s.err
}

func (s *sessionServiceStub) ForRange(context.Context, repository.Keyspace) ([]models.DaySessions, error) {
	return s.days, s.err
}

type ruleServiceStub struct {
	report       *dto.ViolationReport
	redistribute *dto.RedistributeResponse
	validation   *models.SwapValidation
	lastReq      dto.RedistributeRequest
	err          error
}

func (s *ruleServiceStub) Violations(context.Context, repository.Keyspace) (*dto.ViolationReport, error) {
	return s.report, s.err
}

func (s *ruleServiceStub) Redistribute(_ context.Context, _ repository.Keyspace, req dto.RedistributeRequest) (*dto.RedistributeResponse, error) {
	s.lastReq = req
	return s.redistribute, s.err
}

func (s *ruleServiceStub) ValidateSwap(context.Context, repository.Keyspace, dto.SwapRequest) (*models.SwapValidation, error) {
	return s.validation, s.err
}

type migrationServiceStub struct {
	resp *dto.MigrateResponse
	err  error
}

func (s *migrationServiceStub) Migrate(context.Context, repository.Keyspace, dto.MigrateRequest) (*dto.MigrateResponse, error) {
	return s.resp, s.err
}

type exportServiceStub struct {
	result     *service.ExportResult
	err        error
	lastFormat string
}

func (s *exportServiceStub) Export(_ context.Context, _ repository.Keyspace, format string) (*service.ExportResult, error) {
	s.lastFormat = format
	return s.result, s.err
}
