package domain

import (
	"context"
	"errors"
)

// Service is the configuration collaborator: reads fall back to defaults
// when the store is unavailable, writes always surface failure.
type Service interface {
	Get(ctx context.Context, key, def string) string
	Set(ctx context.Context, key, value, actor string) error

	CutoffDay(ctx context.Context) int
	SetCutoffDay(ctx context.Context, day int, actor string) error
}

var (
	ErrInvalidKey = errors.New("invalid_key")
)
