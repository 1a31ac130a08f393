package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lernplan-api/internal/middleware"
	"github.com/noah-isme/lernplan-api/internal/repository"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
	"github.com/noah-isme/lernplan-api/pkg/response"
)

const maxPlanIDLength = 128

// planIDReserved holds the key separator, whitespace and the glob characters that
// would widen a cache invalidation pattern beyond one plan.
const planIDReserved = ": *?[]\\"

// keyspaceFromContext scopes the request to the :planId path parameter and the
// verified caller. It writes the error response itself and reports false on failure.
func keyspaceFromContext(c *gin.Context) (repository.Keyspace, bool) {
	planID := strings.TrimSpace(c.Param("planId"))
	if planID == "" || len(planID) > maxPlanIDLength || strings.ContainsAny(planID, planIDReserved) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid plan id"))
		return repository.Keyspace{}, false
	}
	return repository.Keyspace{UserID: middleware.CurrentUser(c).UserID(), PlanID: planID}, true
}

func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}
