package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskTitleEmpty    = errors.New("task title cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status (must be todo, in-progress or done)")
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	return s == TaskTodo || s == TaskInProgress || s == TaskDone
}

type Task struct {
	ID         string     `json:"id" db:"id"`
	BrandID    string     `json:"brand_id" db:"brand_id"`
	Department string     `json:"department" db:"department"`
	Title      string     `json:"title" db:"title"`
	OwnerID    string     `json:"owner_id" db:"owner_id"`
	DueDate    *time.Time `json:"due_date,omitempty" db:"due_date"`
	Status     TaskStatus `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewTask(brandID, department, title, ownerID string, due *time.Time, status TaskStatus) (*Task, error) {
	if strings.TrimSpace(brandID) == "" {
		return nil, ErrBrandRequired
	}
	dept, err := NormalizeDepartment(department)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status = TaskTodo
	}
	t := &Task{
		ID:         uuid.NewString(),
		BrandID:    brandID,
		Department: dept,
		CreatedAt:  time.Now().UTC(),
	}
	if err := t.Update(title, ownerID, due, status); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Task) Update(title, ownerID string, due *time.Time, status TaskStatus) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTaskTitleEmpty
	}
	if !status.Valid() {
		return ErrInvalidTaskStatus
	}
	t.Title = title
	t.OwnerID = ownerID
	t.DueDate = due
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}
