package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCommitmentNotFound  = errors.New("commitment not found")
	ErrCommitmentTextEmpty = errors.New("commitment description cannot be empty")
	ErrInvalidDueDay       = errors.New("invalid due day (must be monday through sunday)")
)

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

type Commitment struct {
	ID              string     `json:"id" db:"id"`
	BrandID         string     `json:"brand_id" db:"brand_id"`
	Department      string     `json:"department" db:"department"`
	OwnerID         string     `json:"owner_id" db:"owner_id"`
	Description     string     `json:"description" db:"description"`
	DueDay          string     `json:"due_day" db:"due_day"`
	Completed       bool       `json:"completed" db:"completed"`
	PowerMoveID     *string    `json:"power_move_id,omitempty" db:"power_move_id"`
	VictoryTargetID *string    `json:"victory_target_id,omitempty" db:"victory_target_id"`
	WeekStart       time.Time  `json:"week_start" db:"week_start"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewCommitment(brandID, department, ownerID, description, dueDay string, powerMoveID, victoryTargetID *string, now time.Time) (*Commitment, error) {
	if strings.TrimSpace(brandID) == "" {
		return nil, ErrBrandRequired
	}
	dept, err := NormalizeDepartment(department)
	if err != nil {
		return nil, err
	}
	c := &Commitment{
		ID:         uuid.NewString(),
		BrandID:    brandID,
		Department: dept,
		WeekStart:  WeekStart(now.UTC()),
		CreatedAt:  now.UTC(),
	}
	if err := c.Update(ownerID, description, dueDay, powerMoveID, victoryTargetID); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Commitment) Update(ownerID, description, dueDay string, powerMoveID, victoryTargetID *string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrCommitmentTextEmpty
	}
	dueDay = strings.ToLower(strings.TrimSpace(dueDay))
	if !ValidDueDay(dueDay) {
		return ErrInvalidDueDay
	}
	c.OwnerID = ownerID
	c.Description = description
	c.DueDay = dueDay
	c.PowerMoveID = emptyToNil(powerMoveID)
	c.VictoryTargetID = emptyToNil(victoryTargetID)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// ValidDueDay accepts an empty day or a weekday name in any case.
func ValidDueDay(day string) bool {
	day = strings.ToLower(strings.TrimSpace(day))
	return day == "" || weekdays[day]
}

func (c *Commitment) Toggle() {
	c.Completed = !c.Completed
	c.UpdatedAt = time.Now().UTC()
}
