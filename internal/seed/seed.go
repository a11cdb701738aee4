package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	organizationdomain "github.com/veriscan/casedesk/internal/organization/domain"
	organizationrepository "github.com/veriscan/casedesk/internal/organization/repository"
	"gorm.io/gorm"
)

const defaultOrgName = "Main"

// EnsureMainOrg seeds the default organization for startup bootstrap.
func EnsureMainOrg(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	orgs := organizationrepository.Provide()
	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := orgs.Count(ctx, tx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		org := organizationdomain.Organization{
			ID:        node.Generate(),
			Name:      defaultOrgName,
			CreatedAt: time.Now().UTC(),
		}
		return orgs.Insert(ctx, tx, &org)
	})
}

// EnsureMainOrgWithID seeds the default organization under a fixed id so
// deployments can pin DEFAULT_ORG across environments.
func EnsureMainOrgWithID(db *gorm.DB, id int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	orgs := organizationrepository.Provide()
	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org, err := orgs.FindByID(ctx, tx, snowflake.ID(id))
		if err != nil {
			return err
		}
		if org != nil {
			return nil
		}
		return orgs.Insert(ctx, tx, &organizationdomain.Organization{
			ID:        snowflake.ID(id),
			Name:      defaultOrgName,
			CreatedAt: time.Now().UTC(),
		})
	})
}
