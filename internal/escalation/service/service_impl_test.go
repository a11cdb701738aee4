package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/veriscan/casedesk/internal/clock"
	"github.com/veriscan/casedesk/internal/escalation/domain"
	"github.com/veriscan/casedesk/internal/escalation/repository"
	orgdomain "github.com/veriscan/casedesk/internal/organization/domain"
	orgrepository "github.com/veriscan/casedesk/internal/organization/repository"
	submissiondomain "github.com/veriscan/casedesk/internal/submission/domain"
	dbpkg "github.com/veriscan/casedesk/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	messages []string
	fail     error
}

func (n *recordingNotifier) SendMessage(_ context.Context, _ string, text string) error {
	if n.fail != nil {
		return n.fail
	}
	n.messages = append(n.messages, text)
	return nil
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return node
}

func setupService(t *testing.T, node *snowflake.Node, fake *clock.FakeClock, notifier *recordingNotifier) (*Service, *gorm.DB) {
	t.Helper()
	db, err := dbpkg.NewTest()
	if err != nil {
		t.Fatalf("test db: %v", err)
	}
	if err := db.AutoMigrate(&submissiondomain.Submission{}, &domain.AlertLog{}, &orgdomain.Organization{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := &Service{
		db:       db,
		log:      zap.NewNop(),
		genID:    node,
		repo:     repository.Provide(),
		orgs:     orgrepository.Provide(),
		notifier: notifier,
		clock:    fake,
		chatID:   "-100200300",
	}
	return svc, db
}

func insertSubmission(t *testing.T, db *gorm.DB, node *snowflake.Node, orgID snowflake.ID, status submissiondomain.Status, createdAt time.Time) submissiondomain.Submission {
	t.Helper()
	submission := submissiondomain.Submission{
		ID:           node.Generate(),
		OrgID:        orgID,
		ReporterName: "Jane Doe",
		Message:      "Suspicious crypto investment link",
		Channel:      "web",
		Status:       status,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if err := db.Create(&submission).Error; err != nil {
		t.Fatalf("insert submission: %v", err)
	}
	return submission
}

func countAlerts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&domain.AlertLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count alerts: %v", err)
	}
	return count
}

func TestRunFiresFirstThresholdOnce(t *testing.T) {
	node := mustNode(t)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	fake := clock.NewFakeClock(start)
	notifier := &recordingNotifier{}
	svc, db := setupService(t, node, fake, notifier)
	orgID := node.Generate()
	insertSubmission(t, db, node, orgID, submissiondomain.StatusNew, start)

	fake.Advance(35 * time.Minute)
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Checked != 1 || report.Sent != 1 || report.Skipped != 0 || report.Errors != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(notifier.messages) != 1 || !strings.Contains(notifier.messages[0], "30 minutes") {
		t.Fatalf("unexpected messages: %v", notifier.messages)
	}

	// Same pass again: the ledger row already exists, nothing re-fires.
	report, err = svc.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.Checked != 1 || report.Sent != 0 || report.Skipped != 1 || report.Errors != 0 {
		t.Fatalf("second run not idempotent: %+v", report)
	}
	if got := countAlerts(t, db); got != 1 {
		t.Fatalf("expected 1 ledger row, got %d", got)
	}
}

func TestRunCatchesUpCrossedThresholds(t *testing.T) {
	node := mustNode(t)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	fake := clock.NewFakeClock(start)
	notifier := &recordingNotifier{}
	svc, db := setupService(t, node, fake, notifier)
	orgID := node.Generate()
	submission := insertSubmission(t, db, node, orgID, submissiondomain.StatusNew, start)

	// 200 minutes old: 30, 60, 120 and 180 crossed, 240 not yet.
	fake.Advance(200 * time.Minute)
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Sent != 4 {
		t.Fatalf("expected 4 alerts, got report %+v", report)
	}

	var events []string
	if err := db.Model(&domain.AlertLog{}).
		Where("entity_id = ?", submission.ID).
		Order("event_type asc").
		Pluck("event_type", &events).Error; err != nil {
		t.Fatalf("pluck events: %v", err)
	}
	want := []string{"sla_120m", "sla_180m", "sla_30m", "sla_60m"}
	if len(events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, events)
		}
	}
}

func TestRunLeavesYoungSubmissionsAlone(t *testing.T) {
	node := mustNode(t)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	fake := clock.NewFakeClock(start)
	notifier := &recordingNotifier{}
	svc, db := setupService(t, node, fake, notifier)
	insertSubmission(t, db, node, node.Generate(), submissiondomain.StatusNew, start)

	fake.Advance(10 * time.Minute)
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Checked != 1 || report.Sent != 0 || report.Skipped != 0 || report.Errors != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if got := countAlerts(t, db); got != 0 {
		t.Fatalf("expected empty ledger, got %d rows", got)
	}
}

func TestRunSelectsOnlyNewSubmissions(t *testing.T) {
	node := mustNode(t)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	fake := clock.NewFakeClock(start)
	notifier := &recordingNotifier{}
	svc, db := setupService(t, node, fake, notifier)
	orgID := node.Generate()
	insertSubmission(t, db, node, orgID, submissiondomain.StatusInReview, start)
	insertSubmission(t, db, node, orgID, submissiondomain.StatusClosed, start)

	fake.Advance(5 * time.Hour)
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Checked != 0 || report.Sent != 0 {
		t.Fatalf("non-new submissions must not escalate: %+v", report)
	}
}

func TestRunTalliesNotifierFailure(t *testing.T) {
	node := mustNode(t)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	fake := clock.NewFakeClock(start)
	notifier := &recordingNotifier{fail: errors.New("telegram unreachable")}
	svc, db := setupService(t, node, fake, notifier)
	insertSubmission(t, db, node, node.Generate(), submissiondomain.StatusNew, start)

	fake.Advance(35 * time.Minute)
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Errors != 1 || report.Sent != 0 {
		t.Fatalf("expected one error tally: %+v", report)
	}

	// The ledger row landed before the send failed, so recovery runs skip it.
	if got := countAlerts(t, db); got != 1 {
		t.Fatalf("expected ledger row despite send failure, got %d", got)
	}
}

func TestAlertTextUsesOrganizationName(t *testing.T) {
	node := mustNode(t)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	fake := clock.NewFakeClock(start)
	notifier := &recordingNotifier{}
	svc, db := setupService(t, node, fake, notifier)

	org := orgdomain.Organization{ID: node.Generate(), Name: "VeriScan Main", CreatedAt: start}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("insert org: %v", err)
	}
	insertSubmission(t, db, node, org.ID, submissiondomain.StatusNew, start)

	fake.Advance(45 * time.Minute)
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(notifier.messages) != 1 || !strings.Contains(notifier.messages[0], "VeriScan Main") {
		t.Fatalf("expected org name in alert, got %v", notifier.messages)
	}
}
