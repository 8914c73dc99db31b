package domain

import (
	"context"
	"errors"
	"time"
)

type CreateChargeRequest struct {
	MemberID string
	Concept  string
	// Amount <= 0 means "use the tariff for the concept, or the default fee".
	Amount int64
	Method string
	Note   string
	// Period overrides the resolved current period when set; it must be a
	// valid period label.
	Period string
	// Confirmed creates the record already settled, for point-of-sale
	// collection where the money changed hands in the same breath.
	Confirmed bool
}

type ListChargeRequest struct {
	Period   string
	Status   string
	MemberID string
	From     *time.Time
	To       *time.Time
	Limit    int
}

type ListChargeResponse struct {
	Records []PaymentRecord `json:"records"`
}

type SummaryRequest struct {
	Period string
	From   *time.Time
	To     *time.Time
}

type SummaryResponse struct {
	Total    int64            `json:"total"`
	Count    int64            `json:"count"`
	Concepts []ConceptSummary `json:"concepts"`
}

type Service interface {
	CreateCharge(ctx context.Context, req CreateChargeRequest) (PaymentRecord, error)
	GetByID(ctx context.Context, id string) (PaymentRecord, error)
	List(ctx context.Context, req ListChargeRequest) (ListChargeResponse, error)
	Summary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)
}

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidConcept = errors.New("invalid_concept")
	ErrInvalidPeriod  = errors.New("invalid_period")
	ErrInvalidMethod  = errors.New("invalid_method")
	ErrNotFound       = errors.New("payment_record_not_found")
	ErrMemberInactive = errors.New("member_inactive")
)
