package migration

import (
	"github.com/veriscan/casedesk/internal/config"
	"github.com/veriscan/casedesk/internal/escalation/domain"
	orgdomain "github.com/veriscan/casedesk/internal/organization/domain"
	"github.com/veriscan/casedesk/internal/seed"
	submissiondomain "github.com/veriscan/casedesk/internal/submission/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite installs lean on gorm's schema sync.
			if err := conn.AutoMigrate(
				&orgdomain.Organization{},
				&submissiondomain.Submission{},
				&submissiondomain.CaseReview{},
				&submissiondomain.CaseAction{},
				&domain.AlertLog{},
			); err != nil {
				return err
			}
		}

		if cfg.DefaultOrgID != 0 {
			return seed.EnsureMainOrgWithID(conn, cfg.DefaultOrgID)
		}
		return seed.EnsureMainOrg(conn)
	}),
)
