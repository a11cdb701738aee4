package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Organization is the tenant record. Membership and access policy live
// upstream; submissions, reviews, actions, and alerts all carry its id.
type Organization struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, org *Organization) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Organization, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
