package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrVictoryTargetNotFound   = errors.New("victory target not found")
	ErrVictoryTargetConflict   = errors.New("victory target version conflict")
	ErrTargetTitleEmpty        = errors.New("victory target title cannot be empty")
	ErrTargetTitleTooLong      = errors.New("victory target title is too long (max 150 chars)")
	ErrNegativeTarget          = errors.New("target cannot be negative")
	ErrInvalidQuarterBreakdown = errors.New("quarter breakdown must hold at most one entry per quarter Q1-Q4")
)

const MaxTargetTitleLen = 150

type QuarterTarget struct {
	Quarter  Quarter `json:"quarter"`
	Target   float64 `json:"target"`
	Achieved float64 `json:"achieved"`
}

type VictoryTarget struct {
	ID         string          `json:"id" db:"id"`
	BrandID    string          `json:"brand_id" db:"brand_id"`
	Department string          `json:"department" db:"department"`
	Title      string          `json:"title" db:"title"`
	Target     float64         `json:"target" db:"target"`
	Achieved   float64         `json:"achieved" db:"achieved"`
	Unit       string          `json:"unit" db:"unit"`
	OwnerID    string          `json:"owner_id" db:"owner_id"`
	Quarters   []QuarterTarget `json:"quarters,omitempty" db:"-"`
	Version    int             `json:"version" db:"version"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt  *time.Time      `json:"deleted_at,omitempty" db:"deleted_at"`
}

func validateTarget(title string, target float64, quarters []QuarterTarget) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTargetTitleEmpty
	}
	if len(title) > MaxTargetTitleLen {
		return ErrTargetTitleTooLong
	}
	if target < 0 {
		return ErrNegativeTarget
	}

	seen := make(map[Quarter]bool, len(quarters))
	for _, q := range quarters {
		if !q.Quarter.Valid() || seen[q.Quarter] {
			return ErrInvalidQuarterBreakdown
		}
		if q.Target < 0 {
			return ErrNegativeTarget
		}
		seen[q.Quarter] = true
	}
	return nil
}

func NewVictoryTarget(brandID, department, title string, target, achieved float64, unit, ownerID string, quarters []QuarterTarget) (*VictoryTarget, error) {
	if strings.TrimSpace(brandID) == "" {
		return nil, ErrBrandRequired
	}
	dept, err := NormalizeDepartment(department)
	if err != nil {
		return nil, err
	}
	if err := validateTarget(title, target, quarters); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &VictoryTarget{
		ID:         uuid.NewString(),
		BrandID:    brandID,
		Department: dept,
		Title:      strings.TrimSpace(title),
		Target:     target,
		Achieved:   achieved,
		Unit:       strings.TrimSpace(unit),
		OwnerID:    ownerID,
		Quarters:   sortQuarters(quarters),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (v *VictoryTarget) Update(title string, target, achieved float64, unit, ownerID string, quarters []QuarterTarget) error {
	if err := validateTarget(title, target, quarters); err != nil {
		return err
	}

	v.Title = strings.TrimSpace(title)
	v.Target = target
	v.Achieved = achieved
	v.Unit = strings.TrimSpace(unit)
	v.OwnerID = ownerID
	v.Quarters = sortQuarters(quarters)
	v.UpdatedAt = time.Now().UTC()
	return nil
}

func (v *VictoryTarget) Progress() int {
	return ComputeProgress(v.Achieved, v.Target)
}

// QuarterProgress scores one quarter of the breakdown; ok is false when the
// target has no entry for q.
func (v *VictoryTarget) QuarterProgress(q Quarter) (pct int, ok bool) {
	for _, entry := range v.Quarters {
		if entry.Quarter == q {
			return ComputeProgress(entry.Achieved, entry.Target), true
		}
	}
	return 0, false
}

func sortQuarters(in []QuarterTarget) []QuarterTarget {
	if len(in) == 0 {
		return nil
	}
	out := make([]QuarterTarget, 0, len(in))
	for _, q := range quarters {
		for _, entry := range in {
			if entry.Quarter == q {
				out = append(out, entry)
			}
		}
	}
	return out
}
