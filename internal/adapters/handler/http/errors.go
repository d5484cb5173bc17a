package http

import (
	"errors"
	"net/http"

	"github.com/bpr-hq/bpr-dashboard/internal/adapters/handler/http/middleware"
	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errorStatus = []struct {
	status int
	errs   []error
}{
	{http.StatusUnauthorized, []error{domain.ErrUnauthorized}},
	{http.StatusForbidden, []error{domain.ErrForbidden}},
	{http.StatusNotFound, []error{
		domain.ErrVictoryTargetNotFound, domain.ErrPowerMoveNotFound, domain.ErrTaskNotFound,
		domain.ErrCommitmentNotFound, domain.ErrClientNotFound, domain.ErrUserNotFound,
		domain.ErrBrandNotFound, domain.ErrAssignmentNotFound,
	}},
	{http.StatusConflict, []error{
		domain.ErrVictoryTargetConflict, domain.ErrPowerMoveConflict,
		domain.ErrEmailAlreadyExists, domain.ErrBrandSlugDuplicate, domain.ErrAssignmentExists,
	}},
	{http.StatusBadRequest, []error{
		domain.ErrBrandRequired, domain.ErrInvalidDepartment, domain.ErrInvalidPeriod,
		domain.ErrTargetTitleEmpty, domain.ErrTargetTitleTooLong, domain.ErrNegativeTarget,
		domain.ErrInvalidQuarterBreakdown,
		domain.ErrPowerMoveNameEmpty, domain.ErrPowerMoveNameTooLong, domain.ErrInvalidFrequency,
		domain.ErrInvalidCycleTarget, domain.ErrInvalidIncrement,
		domain.ErrTaskTitleEmpty, domain.ErrInvalidTaskStatus,
		domain.ErrCommitmentTextEmpty, domain.ErrInvalidDueDay,
		domain.ErrClientNameShort,
		domain.ErrInvalidEmail, domain.ErrPasswordTooShort, domain.ErrUserNameTooShort, domain.ErrUserRequired,
		domain.ErrBrandNameShort, domain.ErrInvalidBrandSlug, domain.ErrInvalidPermission,
	}},
}

// statusFor maps a service error to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	for _, group := range errorStatus {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.status
			}
		}
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": ...}. Internal errors are logged and replaced
// with a generic message.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func actorFrom(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return domain.Actor{}, false
	}
	return actor, true
}

// queryID reads the ?id= parameter used by DELETE routes.
func queryID(c *gin.Context) (string, bool) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id query parameter is required"})
		return "", false
	}
	return id, true
}

func listFilter(c *gin.Context) domain.ListFilter {
	return domain.ListFilter{
		BrandID:    c.Query("brand_id"),
		Department: c.Query("department"),
		OwnerID:    c.Query("owner_id"),
	}
}

func deleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
