package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// AlertLog is the dedup ledger for SLA alerts. The composite unique index
// is the only concurrency control: the first invocation to insert a row for
// a (case, threshold) pair wins, every later attempt sees a duplicate-key
// error and skips. That makes overlapping runs idempotent.
type AlertLog struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"not null;index" json:"organization_id"`
	EntityType string       `gorm:"not null;uniqueIndex:idx_alert_entity_event" json:"entity_type"`
	EntityID   snowflake.ID `gorm:"not null;uniqueIndex:idx_alert_entity_event" json:"entity_id"`
	EventType  string       `gorm:"not null;uniqueIndex:idx_alert_entity_event" json:"event_type"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
}

const EntityTypeSubmission = "submission"

// Threshold is one rung of the SLA ladder.
type Threshold struct {
	Minutes   int
	EventType string
}

// Thresholds returns the ladder in ascending order. A submission that aged
// past several rungs since the last run fires one alert per rung.
func Thresholds() []Threshold {
	minutes := []int{30, 60, 120, 180, 240}
	out := make([]Threshold, 0, len(minutes))
	for _, m := range minutes {
		out = append(out, Threshold{Minutes: m, EventType: fmt.Sprintf("sla_%dm", m)})
	}
	return out
}

// RunReport aggregates one escalation pass.
type RunReport struct {
	Checked int `json:"checked"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}
