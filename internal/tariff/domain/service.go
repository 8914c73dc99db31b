package domain

import (
	"context"
	"errors"
)

type UpsertTariffRequest struct {
	Concept string
	Price   int64
}

type ListTariffResponse struct {
	Tariffs []Tariff `json:"tariffs"`
}

// Service looks prices up by exact concept match. PriceFor reports
// ErrNotFound for unknown concepts; PriceOrDefault applies the configured
// baseline fee instead, so an unpriced plan is never billed as zero.
type Service interface {
	PriceFor(ctx context.Context, concept string) (int64, error)
	PriceOrDefault(ctx context.Context, concept string) int64
	List(ctx context.Context) (ListTariffResponse, error)
	Upsert(ctx context.Context, req UpsertTariffRequest) (Tariff, error)
	ReplaceAll(ctx context.Context, reqs []UpsertTariffRequest) (ListTariffResponse, error)
}

var (
	ErrNotFound       = errors.New("tariff_not_found")
	ErrInvalidConcept = errors.New("invalid_concept")
	ErrInvalidPrice   = errors.New("invalid_price")
)
