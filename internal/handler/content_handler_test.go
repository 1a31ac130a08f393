package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/models"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
)

func TestContentHandlerListTotal(t *testing.T) {
	h := NewContentHandler(&contentServiceStub{contents: []models.Content{{ID: "c-1"}, {ID: "c-2"}}})
	c, w := newTestContext(t, http.MethodGet, "/plans/plan-1/contents", nil, "plan-1")

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeEnvelope(t, w).Meta["total"])
}

func TestContentHandlerSaveCreated(t *testing.T) {
	h := NewContentHandler(&contentServiceStub{content: &models.Content{ID: "c-1", Title: "Kaufrecht"}})
	c, w := newTestContext(t, http.MethodPost, "/plans/plan-1/contents",
		dto.CreateContentRequest{Title: "Kaufrecht", Rechtsgebiet: "zivilrecht"}, "plan-1")

	h.Save(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestContentHandlerGetNotFound(t *testing.T) {
	h := NewContentHandler(&contentServiceStub{err: appErrors.Clone(appErrors.ErrNotFound, "content not found")})
	c, w := newTestContext(t, http.MethodGet, "/plans/plan-1/contents/missing", nil, "plan-1")
	c.Params = append(c.Params, gin.Param{Key: "contentId", Value: "missing"})

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContentHandlerDelete(t *testing.T) {
	svc := &contentServiceStub{}
	h := NewContentHandler(svc)
	c, w := newTestContext(t, http.MethodDelete, "/plans/plan-1/contents/c-1", nil, "plan-1")
	c.Params = append(c.Params, gin.Param{Key: "contentId", Value: "c-1"})

	h.Delete(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "c-1", svc.deleted)
}
