package seed

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	organizationdomain "github.com/veriscan/casedesk/internal/organization/domain"
	dbpkg "github.com/veriscan/casedesk/pkg/db"
	"gorm.io/gorm"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dbpkg.NewTest()
	if err != nil {
		t.Fatalf("test db: %v", err)
	}
	if err := db.AutoMigrate(&organizationdomain.Organization{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func countOrgs(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&organizationdomain.Organization{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestEnsureMainOrgSeedsOnce(t *testing.T) {
	db := newSeedDB(t)

	if err := EnsureMainOrg(db); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := EnsureMainOrg(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if got := countOrgs(t, db); got != 1 {
		t.Fatalf("expected 1 organization, got %d", got)
	}
}

func TestEnsureMainOrgWithIDPinsID(t *testing.T) {
	db := newSeedDB(t)
	const pinned = int64(424242)

	if err := EnsureMainOrgWithID(db, pinned); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := EnsureMainOrgWithID(db, pinned); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var org organizationdomain.Organization
	if err := db.Where("id = ?", pinned).Take(&org).Error; err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if org.ID != snowflake.ID(pinned) || org.Name != "Main" {
		t.Fatalf("unexpected org: %+v", org)
	}
	if got := countOrgs(t, db); got != 1 {
		t.Fatalf("expected 1 organization, got %d", got)
	}
}
