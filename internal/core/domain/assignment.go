package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAssignmentNotFound = errors.New("department assignment not found")
	ErrAssignmentExists   = errors.New("user already has a permission for this brand and department")
	ErrInvalidPermission  = errors.New("invalid permission level (must be admin, member or view)")
	ErrUserRequired       = errors.New("user id is required")
)

type Permission string

const (
	PermissionView   Permission = "view"
	PermissionMember Permission = "member"
	PermissionAdmin  Permission = "admin"
)

func (p Permission) rank() int {
	switch p {
	case PermissionView:
		return 1
	case PermissionMember:
		return 2
	case PermissionAdmin:
		return 3
	}
	return 0
}

func (p Permission) Valid() bool {
	return p.rank() > 0
}

// Allows reports whether p grants at least need.
func (p Permission) Allows(need Permission) bool {
	return p.Valid() && p.rank() >= need.rank()
}

// DepartmentAssignment grants one permission level per (user, brand, department).
type DepartmentAssignment struct {
	ID         string     `json:"id" db:"id"`
	UserID     string     `json:"user_id" db:"user_id"`
	BrandID    string     `json:"brand_id" db:"brand_id"`
	Department string     `json:"department" db:"department"`
	Permission Permission `json:"permission" db:"permission"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

func NewDepartmentAssignment(userID, brandID, department string, perm Permission) (*DepartmentAssignment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	if strings.TrimSpace(brandID) == "" {
		return nil, ErrBrandRequired
	}
	dept, err := NormalizeDepartment(department)
	if err != nil {
		return nil, err
	}
	if !perm.Valid() {
		return nil, ErrInvalidPermission
	}
	now := time.Now().UTC()
	return &DepartmentAssignment{
		ID:         uuid.NewString(),
		UserID:     userID,
		BrandID:    brandID,
		Department: dept,
		Permission: perm,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (a *DepartmentAssignment) SetPermission(perm Permission) error {
	if !perm.Valid() {
		return ErrInvalidPermission
	}
	a.Permission = perm
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Actor is the identity a request acts as. It is built per request and passed
// explicitly; nothing in the core reads the current user from ambient state.
type Actor struct {
	UserID  string
	BrandID string
	IsAdmin bool
}
