package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("insufficient permission")
)

type VictoryTargetRepository interface {
	Create(ctx context.Context, target *VictoryTarget) error

	// GetByID retrieves an active (non-deleted) target.
	GetByID(ctx context.Context, id string) (*VictoryTarget, error)

	List(ctx context.Context, filter ListFilter) ([]*VictoryTarget, error)

	// Update must reject a stale Version with ErrVictoryTargetConflict.
	Update(ctx context.Context, target *VictoryTarget) error

	// Delete is a soft delete.
	Delete(ctx context.Context, id string) error
}

type PowerMoveRepository interface {
	Create(ctx context.Context, move *PowerMove) error
	GetByID(ctx context.Context, id string) (*PowerMove, error)
	List(ctx context.Context, filter ListFilter) ([]*PowerMove, error)

	// Update must reject a stale Version with ErrPowerMoveConflict.
	Update(ctx context.Context, move *PowerMove) error
	Delete(ctx context.Context, id string) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, filter ListFilter) ([]*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error
}

type CommitmentRepository interface {
	Create(ctx context.Context, c *Commitment) error
	GetByID(ctx context.Context, id string) (*Commitment, error)
	List(ctx context.Context, filter ListFilter) ([]*Commitment, error)
	Update(ctx context.Context, c *Commitment) error
	Delete(ctx context.Context, id string) error
}

type ClientRepository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	// List honours BrandID and OwnerID of the filter.
	List(ctx context.Context, filter ListFilter) ([]*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}

type BrandRepository interface {
	Create(ctx context.Context, brand *Brand) error
	GetByID(ctx context.Context, id string) (*Brand, error)
	List(ctx context.Context) ([]*Brand, error)
	Update(ctx context.Context, brand *Brand) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepository interface {
	// Create returns ErrAssignmentExists when the (user, brand, department)
	// tuple already holds a permission.
	Create(ctx context.Context, a *DepartmentAssignment) error
	GetByID(ctx context.Context, id string) (*DepartmentAssignment, error)
	ListByUser(ctx context.Context, userID string) ([]*DepartmentAssignment, error)
	ListByBrand(ctx context.Context, brandID string) ([]*DepartmentAssignment, error)
	Update(ctx context.Context, a *DepartmentAssignment) error
	Delete(ctx context.Context, id string) error
}

type SnapshotRepository interface {
	// Upsert replaces the row keyed by (brand, department, week start).
	Upsert(ctx context.Context, s *WeeklySnapshot) error
	ListRange(ctx context.Context, brandID, department string, from, to time.Time) ([]*WeeklySnapshot, error)
}
