package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrUserNameTooShort   = errors.New("name must be at least 2 characters long")
)

const bcryptCost = 12

type User struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	PasswordHash string     `json:"-" db:"password_hash"`
	IsAdmin      bool       `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

func NewUser(id, email, name string) (*User, error) {
	u := &User{ID: id, CreatedAt: time.Now().UTC()}
	if err := u.Update(email, name); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Update(email, name string) error {
	email = strings.TrimSpace(email)
	if !isValidEmail(email) {
		return ErrInvalidEmail
	}
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return ErrUserNameTooShort
	}

	u.Email = strings.ToLower(email)
	u.Name = name
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcryptCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword))
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
