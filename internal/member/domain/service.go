package domain

import (
	"context"
	"errors"
	"time"
)

type CreateMemberRequest struct {
	FirstName     string
	LastName      string
	DocumentID    string
	BirthDate     *time.Time
	Guardian      string
	WhatsApp      string
	Email         string
	Site          string
	Plan          string
	Notes         string
	ShirtSize     string
	TrainingGroup string
}

type UpdateMemberRequest struct {
	ID            string
	FirstName     string
	LastName      string
	DocumentID    string
	BirthDate     *time.Time
	Guardian      string
	WhatsApp      string
	Email         string
	Site          string
	Plan          string
	Notes         string
	ShirtSize     string
	TrainingGroup string
	WeightKg      float64
	HeightCm      float64
	Active        bool
}

type ListMemberRequest struct {
	Site          string
	TrainingGroup string
	Plan          string
	Active        *bool
}

type ListMemberResponse struct {
	Members []Member `json:"members"`
}

type Service interface {
	Create(ctx context.Context, req CreateMemberRequest) (Member, error)
	GetByID(ctx context.Context, id string) (Member, error)
	List(ctx context.Context, req ListMemberRequest) (ListMemberResponse, error)
	ListActive(ctx context.Context) ([]Member, error)
	Update(ctx context.Context, req UpdateMemberRequest) (Member, error)
	Deactivate(ctx context.Context, id string) (Member, error)
	UpdatePlan(ctx context.Context, id string, plan string) error
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidSite = errors.New("invalid_site")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("member_not_found")
)
