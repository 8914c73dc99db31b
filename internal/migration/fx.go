package migration

import (
	attendancedomain "github.com/clubarqueros/clubops/internal/attendance/domain"
	auditdomain "github.com/clubarqueros/clubops/internal/audit/domain"
	"github.com/clubarqueros/clubops/internal/config"
	ledgerdomain "github.com/clubarqueros/clubops/internal/ledger/domain"
	memberdomain "github.com/clubarqueros/clubops/internal/member/domain"
	"github.com/clubarqueros/clubops/internal/seed"
	settingdomain "github.com/clubarqueros/clubops/internal/setting/domain"
	tariffdomain "github.com/clubarqueros/clubops/internal/tariff/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, billing *config.BillingConfigHolder) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite/mysql dev mode: let GORM own the schema.
			if err := conn.AutoMigrate(
				&memberdomain.Member{},
				&tariffdomain.Tariff{},
				&ledgerdomain.PaymentRecord{},
				&auditdomain.AuditLog{},
				&attendancedomain.Attendance{},
				&settingdomain.Setting{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaults(conn, billing.Get())
	}),
)
