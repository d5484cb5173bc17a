package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPowerMoveNotFound    = errors.New("power move not found")
	ErrPowerMoveConflict    = errors.New("power move version conflict")
	ErrPowerMoveNameEmpty   = errors.New("power move name cannot be empty")
	ErrInvalidFrequency     = errors.New("invalid frequency (must be daily, weekly or monthly)")
	ErrInvalidCycleTarget   = errors.New("target per cycle must be at least 1")
	ErrInvalidIncrement     = errors.New("increment amount cannot be negative")
	ErrPowerMoveNameTooLong = errors.New("power move name is too long (max 150 chars)")
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// CycleStart is the start of the cycle containing t.
func (f Frequency) CycleStart(t time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return StartOfDay(t)
	case FrequencyMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return WeekStart(t)
	}
}

const MaxPowerMoveNameLen = 150

// PowerMove progress never leaves [0, TargetPerCycle]. Nothing resets it
// automatically at a cycle boundary; callers reset explicitly.
type PowerMove struct {
	ID              string     `json:"id" db:"id"`
	BrandID         string     `json:"brand_id" db:"brand_id"`
	Department      string     `json:"department" db:"department"`
	Name            string     `json:"name" db:"name"`
	Frequency       Frequency  `json:"frequency" db:"frequency"`
	TargetPerCycle  int        `json:"target_per_cycle" db:"target_per_cycle"`
	Progress        int        `json:"progress" db:"progress"`
	OwnerID         string     `json:"owner_id" db:"owner_id"`
	VictoryTargetID *string    `json:"victory_target_id,omitempty" db:"victory_target_id"`
	LastResetAt     *time.Time `json:"last_reset_at,omitempty" db:"last_reset_at"`
	Version         int        `json:"version" db:"version"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func validatePowerMove(name string, freq Frequency, targetPerCycle int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrPowerMoveNameEmpty
	}
	if len(name) > MaxPowerMoveNameLen {
		return ErrPowerMoveNameTooLong
	}
	if !freq.Valid() {
		return ErrInvalidFrequency
	}
	if targetPerCycle < 1 {
		return ErrInvalidCycleTarget
	}
	return nil
}

func NewPowerMove(brandID, department, name string, freq Frequency, targetPerCycle int, ownerID string, victoryTargetID *string) (*PowerMove, error) {
	if strings.TrimSpace(brandID) == "" {
		return nil, ErrBrandRequired
	}
	dept, err := NormalizeDepartment(department)
	if err != nil {
		return nil, err
	}
	if freq == "" {
		freq = FrequencyWeekly
	}
	if err := validatePowerMove(name, freq, targetPerCycle); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &PowerMove{
		ID:              uuid.NewString(),
		BrandID:         brandID,
		Department:      dept,
		Name:            strings.TrimSpace(name),
		Frequency:       freq,
		TargetPerCycle:  targetPerCycle,
		OwnerID:         ownerID,
		VictoryTargetID: emptyToNil(victoryTargetID),
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (p *PowerMove) Update(name string, freq Frequency, targetPerCycle int, ownerID string, victoryTargetID *string) error {
	if err := validatePowerMove(name, freq, targetPerCycle); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Frequency = freq
	p.TargetPerCycle = targetPerCycle
	p.OwnerID = ownerID
	p.VictoryTargetID = emptyToNil(victoryTargetID)
	p.Progress = p.clamp(p.Progress)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Increment adds amount to the cycle progress, saturating at the cycle target.
func (p *PowerMove) Increment(amount int) error {
	if amount < 0 {
		return ErrInvalidIncrement
	}
	current := p.clamp(p.Progress)
	if amount >= p.TargetPerCycle-current {
		p.Progress = p.clamp(p.TargetPerCycle)
	} else {
		p.Progress = current + amount
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *PowerMove) SetProgress(value int) {
	p.Progress = p.clamp(value)
	p.UpdatedAt = time.Now().UTC()
}

func (p *PowerMove) ResetCycle(now time.Time) {
	now = now.UTC()
	p.Progress = 0
	p.LastResetAt = &now
	p.UpdatedAt = now
}

func (p *PowerMove) Percentage() int {
	return ComputeProgress(float64(p.clamp(p.Progress)), float64(p.TargetPerCycle))
}

func (p *PowerMove) clamp(v int) int {
	switch {
	case p.TargetPerCycle <= 0 || v < 0:
		return 0
	case v > p.TargetPerCycle:
		return p.TargetPerCycle
	default:
		return v
	}
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
