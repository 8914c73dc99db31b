package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	actorcontext "github.com/clubarqueros/clubops/internal/actorcontext"
	"github.com/clubarqueros/clubops/internal/attendance/domain"
	"github.com/clubarqueros/clubops/internal/clock"
	memberdomain "github.com/clubarqueros/clubops/internal/member/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Members memberdomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	members memberdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("attendance.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		members: p.Members,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordAttendanceRequest) (domain.Attendance, error) {
	site := strings.TrimSpace(req.Site)
	if site == "" {
		return domain.Attendance{}, domain.ErrInvalidSite
	}

	member, err := s.members.GetByID(ctx, req.MemberID)
	if err != nil {
		if err == memberdomain.ErrNotFound || err == memberdomain.ErrInvalidID {
			return domain.Attendance{}, domain.ErrInvalidID
		}
		return domain.Attendance{}, err
	}
	if !member.Active {
		return domain.Attendance{}, domain.ErrMemberInactive
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = s.clock.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return domain.Attendance{}, domain.ErrInvalidDate
	}

	attendance := domain.Attendance{
		ID:         s.genID.Generate(),
		MemberID:   member.ID,
		MemberName: member.DisplayName(),
		Date:       date,
		Site:       site,
		Shift:      strings.TrimSpace(req.Shift),
		RecordedBy: actorcontext.ActorFromContext(ctx),
		CreatedAt:  s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &attendance); err != nil {
		return domain.Attendance{}, err
	}
	return attendance, nil
}

func (s *Service) List(ctx context.Context, req domain.ListAttendanceRequest) (domain.ListAttendanceResponse, error) {
	filter := domain.ListFilter{
		Date:  strings.TrimSpace(req.Date),
		Site:  strings.TrimSpace(req.Site),
		Limit: req.Limit,
	}

	var total int64
	if memberID := strings.TrimSpace(req.MemberID); memberID != "" {
		id, err := snowflake.ParseString(memberID)
		if err != nil || id == 0 {
			return domain.ListAttendanceResponse{}, domain.ErrInvalidID
		}
		filter.MemberID = id

		total, err = s.repo.CountForMember(ctx, s.db, id)
		if err != nil {
			s.log.Warn("attendance count failed", zap.Error(err))
			total = 0
		}
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		s.log.Warn("attendance list failed, returning empty view", zap.Error(err))
		return domain.ListAttendanceResponse{Attendances: []domain.Attendance{}}, nil
	}

	attendances := make([]domain.Attendance, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		attendances = append(attendances, *item)
	}
	if filter.MemberID == 0 {
		total = int64(len(attendances))
	}

	return domain.ListAttendanceResponse{Attendances: attendances, Total: total}, nil
}

func (s *Service) Today(ctx context.Context) (domain.DailySummary, error) {
	date := s.clock.Now().Format(dateLayout)

	groups, err := s.repo.CountByGroup(ctx, s.db, date)
	if err != nil {
		s.log.Warn("attendance summary failed, returning empty view", zap.Error(err))
		return domain.DailySummary{Date: date, Groups: []domain.GroupCount{}}, nil
	}

	summary := domain.DailySummary{Date: date, Groups: groups}
	for _, group := range groups {
		summary.Present += group.Count
	}
	return summary, nil
}
