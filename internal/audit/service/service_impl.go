package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/clubarqueros/clubops/internal/audit/domain"
	obsmetrics "github.com/clubarqueros/clubops/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("audit.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// Record writes a trail entry. Failures are swallowed: losing an audit row
// must never fail the mutation it describes.
func (s *Service) Record(ctx context.Context, entityID, action, detail, actor string, metadata map[string]any) {
	action = strings.TrimSpace(action)
	if action == "" {
		return
	}

	payload := datatypes.JSONMap{}
	for key, value := range metadata {
		if key == "" {
			continue
		}
		payload[key] = value
	}

	entry := domain.AuditLog{
		ID:        s.genID.Generate(),
		EntityID:  strings.TrimSpace(entityID),
		Action:    action,
		Detail:    detail,
		Actor:     strings.TrimSpace(actor),
		Metadata:  payload,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &entry); err != nil {
		s.log.Warn("failed to write audit log",
			zap.String("action", action),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err),
		)
		s.metrics.RecordAuditDropped(ctx)
	}
}

// RecordChanges writes one entry describing a field-by-field diff. No entry
// is written when the change list is empty.
func (s *Service) RecordChanges(ctx context.Context, entityID, action, actor string, changes []domain.FieldChange) {
	if len(changes) == 0 {
		return
	}

	parts := make([]string, 0, len(changes))
	meta := map[string]any{}
	for _, change := range changes {
		parts = append(parts, change.String())
		meta[change.Field] = map[string]any{"old": change.Old, "new": change.New}
	}

	s.Record(ctx, entityID, action, strings.Join(parts, " | "), actor, meta)
}

func (s *Service) List(ctx context.Context, req domain.ListAuditLogRequest) (domain.ListAuditLogResponse, error) {
	items, err := s.repo.List(ctx, s.db, domain.ListFilter{
		EntityID: strings.TrimSpace(req.EntityID),
		Action:   strings.TrimSpace(req.Action),
		Actor:    strings.TrimSpace(req.Actor),
		Limit:    req.Limit,
	})
	if err != nil {
		return domain.ListAuditLogResponse{}, err
	}

	logs := make([]domain.AuditLog, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		logs = append(logs, *item)
	}

	return domain.ListAuditLogResponse{AuditLogs: logs}, nil
}
