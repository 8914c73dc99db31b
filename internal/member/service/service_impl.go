package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	actorcontext "github.com/clubarqueros/clubops/internal/actorcontext"
	auditdomain "github.com/clubarqueros/clubops/internal/audit/domain"
	"github.com/clubarqueros/clubops/internal/clock"
	"github.com/clubarqueros/clubops/internal/member/domain"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
	Audit auditdomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
	audit auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("member.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		audit: p.Audit,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateMemberRequest) (domain.Member, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return domain.Member{}, domain.ErrInvalidName
	}
	site := strings.TrimSpace(req.Site)
	if site == "" {
		return domain.Member{}, domain.ErrInvalidSite
	}
	plan := strings.TrimSpace(req.Plan)
	if plan == "" {
		plan = "General"
	}

	now := s.clock.Now()
	id := s.genID.Generate()
	member := domain.Member{
		ID:            id,
		Code:          memberCode(firstName, lastName, id),
		FirstName:     firstName,
		LastName:      lastName,
		DocumentID:    strings.TrimSpace(req.DocumentID),
		BirthDate:     req.BirthDate,
		Guardian:      strings.TrimSpace(req.Guardian),
		WhatsApp:      strings.TrimSpace(req.WhatsApp),
		Email:         strings.TrimSpace(req.Email),
		Site:          site,
		Plan:          plan,
		Notes:         req.Notes,
		Active:        true,
		ShirtSize:     strings.TrimSpace(req.ShirtSize),
		TrainingGroup: strings.TrimSpace(req.TrainingGroup),
		EnrolledAt:    now,
		CreatedBy:     actorcontext.ActorFromContext(ctx),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &member); err != nil {
		return domain.Member{}, err
	}

	s.audit.Record(ctx, member.ID.String(), "member.create", "enrolled "+member.DisplayName(), member.CreatedBy, map[string]any{
		"code": member.Code,
		"site": member.Site,
		"plan": member.Plan,
	})
	return member, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Member, error) {
	memberID, err := s.parseID(id)
	if err != nil {
		return domain.Member{}, err
	}

	member, err := s.repo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return domain.Member{}, err
	}
	if member == nil {
		return domain.Member{}, domain.ErrNotFound
	}
	return *member, nil
}

func (s *Service) List(ctx context.Context, req domain.ListMemberRequest) (domain.ListMemberResponse, error) {
	items, err := s.repo.List(ctx, s.db, domain.ListFilter{
		Site:          strings.TrimSpace(req.Site),
		TrainingGroup: strings.TrimSpace(req.TrainingGroup),
		Plan:          strings.TrimSpace(req.Plan),
		Active:        req.Active,
	})
	if err != nil {
		return domain.ListMemberResponse{}, err
	}

	members := make([]domain.Member, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		members = append(members, *item)
	}
	return domain.ListMemberResponse{Members: members}, nil
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Member, error) {
	items, err := s.repo.FindActive(ctx, s.db)
	if err != nil {
		return nil, err
	}

	members := make([]domain.Member, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		members = append(members, *item)
	}
	return members, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateMemberRequest) (domain.Member, error) {
	memberID, err := s.parseID(req.ID)
	if err != nil {
		return domain.Member{}, err
	}

	current, err := s.repo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return domain.Member{}, err
	}
	if current == nil {
		return domain.Member{}, domain.ErrNotFound
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return domain.Member{}, domain.ErrInvalidName
	}
	site := strings.TrimSpace(req.Site)
	if site == "" {
		return domain.Member{}, domain.ErrInvalidSite
	}

	updated := *current
	updated.FirstName = firstName
	updated.LastName = lastName
	updated.DocumentID = strings.TrimSpace(req.DocumentID)
	updated.BirthDate = req.BirthDate
	updated.Guardian = strings.TrimSpace(req.Guardian)
	updated.WhatsApp = strings.TrimSpace(req.WhatsApp)
	updated.Email = strings.TrimSpace(req.Email)
	updated.Site = site
	updated.Plan = strings.TrimSpace(req.Plan)
	updated.Notes = req.Notes
	updated.ShirtSize = strings.TrimSpace(req.ShirtSize)
	updated.TrainingGroup = strings.TrimSpace(req.TrainingGroup)
	updated.WeightKg = req.WeightKg
	updated.HeightCm = req.HeightCm
	updated.Active = req.Active
	updated.UpdatedAt = s.clock.Now()

	changes := diffMembers(*current, updated)
	if len(changes) == 0 {
		return *current, nil
	}

	if err := s.repo.Update(ctx, s.db, &updated); err != nil {
		return domain.Member{}, err
	}

	s.audit.RecordChanges(ctx, updated.ID.String(), "member.update", actorcontext.ActorFromContext(ctx), changes)
	return updated, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (domain.Member, error) {
	memberID, err := s.parseID(id)
	if err != nil {
		return domain.Member{}, err
	}

	member, err := s.repo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return domain.Member{}, err
	}
	if member == nil {
		return domain.Member{}, domain.ErrNotFound
	}
	if !member.Active {
		return *member, nil
	}

	updated := *member
	updated.Active = false
	updated.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &updated); err != nil {
		return domain.Member{}, err
	}

	s.audit.RecordChanges(ctx, updated.ID.String(), "member.deactivate", actorcontext.ActorFromContext(ctx), []auditdomain.FieldChange{
		{Field: "active", Old: "true", New: "false"},
	})
	return updated, nil
}

func (s *Service) UpdatePlan(ctx context.Context, id string, plan string) error {
	memberID, err := s.parseID(id)
	if err != nil {
		return err
	}
	plan = strings.TrimSpace(plan)
	if plan == "" {
		return domain.ErrInvalidName
	}

	err = s.repo.UpdatePlan(ctx, s.db, memberID, plan)
	if err == gorm.ErrRecordNotFound {
		return domain.ErrNotFound
	}
	return err
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func memberCode(firstName, lastName string, id snowflake.ID) string {
	base := slug.Make(firstName + " " + lastName)
	raw := id.String()
	if len(raw) > 4 {
		raw = raw[len(raw)-4:]
	}
	return base + "-" + raw
}

func diffMembers(old, updated domain.Member) []auditdomain.FieldChange {
	changes := []auditdomain.FieldChange{}
	add := func(field, oldValue, newValue string) {
		if oldValue != newValue {
			changes = append(changes, auditdomain.FieldChange{Field: field, Old: oldValue, New: newValue})
		}
	}

	add("first_name", old.FirstName, updated.FirstName)
	add("last_name", old.LastName, updated.LastName)
	add("document_id", old.DocumentID, updated.DocumentID)
	add("birth_date", formatDate(old.BirthDate), formatDate(updated.BirthDate))
	add("guardian", old.Guardian, updated.Guardian)
	add("whatsapp", old.WhatsApp, updated.WhatsApp)
	add("email", old.Email, updated.Email)
	add("site", old.Site, updated.Site)
	add("plan", old.Plan, updated.Plan)
	add("notes", old.Notes, updated.Notes)
	add("shirt_size", old.ShirtSize, updated.ShirtSize)
	add("training_group", old.TrainingGroup, updated.TrainingGroup)
	add("weight_kg", formatFloat(old.WeightKg), formatFloat(updated.WeightKg))
	add("height_cm", formatFloat(old.HeightCm), formatFloat(updated.HeightCm))
	add("active", strconv.FormatBool(old.Active), strconv.FormatBool(updated.Active))

	return changes
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
