package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidDate = errors.New("invalid date, use YYYY-MM-DD or RFC3339")

type DashboardHandler struct {
	scores *services.ScoreService
	log    *zap.Logger
	now    func() time.Time
}

func NewDashboardHandler(scores *services.ScoreService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		scores: scores,
		log:    log,
		now:    time.Now,
	}
}

type periodWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/department", h.Department)
		dashboard.GET("/company", h.Company)
		dashboard.GET("/history", h.History)
		dashboard.GET("/config", h.Config)
	}
	router.GET("/departments", h.Departments)
	router.GET("/periods/current", h.CurrentPeriod)
}

// parseDate accepts an empty string (zero time), a calendar date or RFC3339.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errInvalidDate
}

// Department godoc
// @Summary  Score one department
// @Tags     dashboard
// @Produce  json
// @Param    brand_id   query string false "Brand (defaults to X-Brand-ID)"
// @Param    department query string true  "Department code"
// @Success  200 {object} map[string]domain.DepartmentScore
// @Failure  403 {object} map[string]string
// @Router   /dashboard/department [get]
// @Security BearerAuth
func (h *DashboardHandler) Department(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	score, err := h.scores.DepartmentScore(c.Request.Context(), actor, c.Query("brand_id"), c.Query("department"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": score})
}

// Company godoc
// @Summary  Company-wide score across visible departments
// @Tags     dashboard
// @Produce  json
// @Param    brand_id query string false "Brand (defaults to X-Brand-ID)"
// @Success  200 {object} map[string]domain.CompanyScore
// @Router   /dashboard/company [get]
// @Security BearerAuth
func (h *DashboardHandler) Company(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	company, err := h.scores.CompanyScore(c.Request.Context(), actor, c.Query("brand_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// History godoc
// @Summary  Weekly snapshots for a department
// @Tags     dashboard
// @Produce  json
// @Param    brand_id   query string false "Brand (defaults to X-Brand-ID)"
// @Param    department query string true  "Department code"
// @Param    period     query string false "today, this-week, this-month, last-month, last-4-weeks or this-quarter"
// @Param    anchor     query string false "Date inside the period (YYYY-MM-DD or RFC3339)"
// @Success  200 {object} map[string][]domain.WeeklySnapshot
// @Failure  400 {object} map[string]string
// @Router   /dashboard/history [get]
// @Security BearerAuth
func (h *DashboardHandler) History(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var period domain.Period
	if raw := c.Query("period"); raw != "" {
		p, err := domain.ParsePeriod(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		period = p
	}
	anchor, err := parseDate(c.Query("anchor"))
	if err != nil {
		badRequest(c, err)
		return
	}

	history, err := h.scores.History(c.Request.Context(), services.HistoryInput{
		Actor:      actor,
		BrandID:    c.Query("brand_id"),
		Department: c.Query("department"),
		Period:     period,
		Anchor:     anchor,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// Config godoc
// @Summary  Everything one department tracks
// @Tags     dashboard
// @Produce  json
// @Param    brand_id   query string false "Brand (defaults to X-Brand-ID)"
// @Param    department query string true  "Department code"
// @Success  200 {object} map[string]domain.DepartmentConfig
// @Router   /dashboard/config [get]
// @Security BearerAuth
func (h *DashboardHandler) Config(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	cfg, err := h.scores.DepartmentConfig(c.Request.Context(), actor, c.Query("brand_id"), c.Query("department"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *DashboardHandler) Departments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"departments": domain.KnownDepartments})
}

// CurrentPeriod godoc
// @Summary  Quarter, week and period windows for a date
// @Tags     dashboard
// @Produce  json
// @Param    date query string false "Reference date (defaults to today)"
// @Success  200 {object} map[string]interface{}
// @Router   /periods/current [get]
// @Security BearerAuth
func (h *DashboardHandler) CurrentPeriod(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		badRequest(c, err)
		return
	}
	if date.IsZero() {
		date = h.now().UTC()
	}

	quarter := domain.CurrentQuarter(date)
	qFrom, qTo := domain.QuarterRange(date.Year(), quarter, date.Location())

	windows := make(map[domain.Period]periodWindow, len(domain.Periods))
	for _, p := range domain.Periods {
		from, to := domain.PeriodRange(date, p)
		windows[p] = periodWindow{From: from, To: to}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":          date,
		"quarter":       quarter,
		"quarter_range": periodWindow{From: qFrom, To: qTo},
		"week_start":    domain.WeekStart(date),
		"periods":       windows,
	})
}
