package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBrandNotFound      = errors.New("brand not found")
	ErrBrandNameShort     = errors.New("brand name must be at least 2 characters long")
	ErrInvalidBrandSlug   = errors.New("invalid brand slug")
	ErrBrandSlugDuplicate = errors.New("brand slug already exists")
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

type Brand struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Slug      string     `json:"slug" db:"slug"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

func NewBrand(name, slug string) (*Brand, error) {
	b := &Brand{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
	if err := b.Update(name, slug); err != nil {
		return nil, err
	}
	return b, nil
}

// Update renames the brand. An empty slug is derived from the name.
func (b *Brand) Update(name, slug string) error {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return ErrBrandNameShort
	}
	if strings.TrimSpace(slug) == "" {
		slug = name
	}
	slug = Slugify(slug)
	if slug == "" {
		return ErrInvalidBrandSlug
	}
	b.Name = name
	b.Slug = slug
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func Slugify(s string) string {
	s = nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(s, "-")
}
