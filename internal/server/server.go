package server

import (
	"context"
	"net/http"
	"time"

	"github.com/clubarqueros/clubops/internal/attendance"
	attendancedomain "github.com/clubarqueros/clubops/internal/attendance/domain"
	"github.com/clubarqueros/clubops/internal/audit"
	auditdomain "github.com/clubarqueros/clubops/internal/audit/domain"
	"github.com/clubarqueros/clubops/internal/billingperiod"
	"github.com/clubarqueros/clubops/internal/config"
	"github.com/clubarqueros/clubops/internal/debtrun"
	"github.com/clubarqueros/clubops/internal/ledger"
	ledgerdomain "github.com/clubarqueros/clubops/internal/ledger/domain"
	"github.com/clubarqueros/clubops/internal/member"
	memberdomain "github.com/clubarqueros/clubops/internal/member/domain"
	"github.com/clubarqueros/clubops/internal/observability"
	obslogger "github.com/clubarqueros/clubops/internal/observability/logger"
	obstracing "github.com/clubarqueros/clubops/internal/observability/tracing"
	"github.com/clubarqueros/clubops/internal/providers/pdf"
	"github.com/clubarqueros/clubops/internal/reconcile"
	reconciledomain "github.com/clubarqueros/clubops/internal/reconcile/domain"
	"github.com/clubarqueros/clubops/internal/setting"
	settingdomain "github.com/clubarqueros/clubops/internal/setting/domain"
	"github.com/clubarqueros/clubops/internal/tariff"
	tariffdomain "github.com/clubarqueros/clubops/internal/tariff/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	audit.Module,
	setting.Module,
	billingperiod.Module,
	member.Module,
	tariff.Module,
	ledger.Module,
	debtrun.Module,
	reconcile.Module,
	attendance.Module,
	pdf.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	memberSvc     memberdomain.Service
	tariffSvc     tariffdomain.Service
	ledgerSvc     ledgerdomain.Service
	reconcileSvc  reconciledomain.Service
	attendanceSvc attendancedomain.Service
	auditSvc      auditdomain.Service
	settingSvc    settingdomain.Service
	resolver      *billingperiod.Resolver
	generator     *debtrun.Generator
	pdfProvider   pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	MemberSvc     memberdomain.Service
	TariffSvc     tariffdomain.Service
	LedgerSvc     ledgerdomain.Service
	ReconcileSvc  reconciledomain.Service
	AttendanceSvc attendancedomain.Service
	AuditSvc      auditdomain.Service
	SettingSvc    settingdomain.Service
	Resolver      *billingperiod.Resolver
	Generator     *debtrun.Generator
	PDFProvider   pdf.Provider
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:        p.Gin,
		memberSvc:     p.MemberSvc,
		tariffSvc:     p.TariffSvc,
		ledgerSvc:     p.LedgerSvc,
		reconcileSvc:  p.ReconcileSvc,
		attendanceSvc: p.AttendanceSvc,
		auditSvc:      p.AuditSvc,
		settingSvc:    p.SettingSvc,
		resolver:      p.Resolver,
		generator:     p.Generator,
		pdfProvider:   p.PDFProvider,
	}
	s.RegisterAPIRoutes()
	return s
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/members", s.CreateMember)
	api.GET("/members", s.ListMembers)
	api.GET("/members/:id", s.GetMemberByID)
	api.PUT("/members/:id", s.UpdateMember)
	api.POST("/members/:id/deactivate", s.DeactivateMember)

	api.GET("/tariffs", s.ListTariffs)
	api.PUT("/tariffs", s.UpsertTariff)
	api.POST("/tariffs/bulk", s.ReplaceTariffs)

	api.GET("/settings/cutoff-day", s.GetCutoffDay)
	api.PUT("/settings/cutoff-day", s.SetCutoffDay)

	api.GET("/billing/period", s.GetCurrentPeriod)
	api.POST("/billing/generate-debts", s.GenerateDebts)

	api.POST("/charges", s.CreateCharge)
	api.GET("/charges", s.ListCharges)
	api.GET("/charges/summary", s.ChargeSummary)
	api.GET("/charges/:id", s.GetChargeByID)
	api.POST("/charges/:id/settle", s.SettleCharge)
	api.GET("/charges/:id/receipt.pdf", s.DownloadReceipt)

	api.POST("/attendance", s.RecordAttendance)
	api.GET("/attendance", s.ListAttendance)
	api.GET("/attendance/today", s.TodayAttendance)

	api.GET("/audit-logs", s.ListAuditLogs)
}
