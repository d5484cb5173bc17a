package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrClientNameShort = errors.New("client name must be at least 2 characters long")
)

type Client struct {
	ID        string     `json:"id" db:"id"`
	BrandID   string     `json:"brand_id" db:"brand_id"`
	Name      string     `json:"name" db:"name"`
	Email     string     `json:"email" db:"email"`
	Phone     string     `json:"phone" db:"phone"`
	Company   string     `json:"company" db:"company"`
	Notes     string     `json:"notes" db:"notes"`
	OwnerID   string     `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewClient(brandID, name, email, phone, company, notes, ownerID string) (*Client, error) {
	if strings.TrimSpace(brandID) == "" {
		return nil, ErrBrandRequired
	}
	c := &Client{
		ID:        uuid.NewString(),
		BrandID:   brandID,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Update(name, email, phone, company, notes); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) Update(name, email, phone, company, notes string) error {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return ErrClientNameShort
	}
	email = strings.TrimSpace(email)
	if email != "" && !isValidEmail(email) {
		return ErrInvalidEmail
	}
	c.Name = name
	c.Email = strings.ToLower(email)
	c.Phone = strings.TrimSpace(phone)
	c.Company = strings.TrimSpace(company)
	c.Notes = strings.TrimSpace(notes)
	c.UpdatedAt = time.Now().UTC()
	return nil
}
