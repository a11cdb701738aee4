package config

import "testing"

func TestIsReviewerRoleDefaults(t *testing.T) {
	cfg := Load()

	for _, role := range []string{"admin", "analyst", "reviewer", " Admin "} {
		if !cfg.IsReviewerRole(role) {
			t.Fatalf("expected %q to be a reviewer role", role)
		}
	}

	for _, role := range []string{"", "viewer", "support"} {
		if cfg.IsReviewerRole(role) {
			t.Fatalf("expected %q to be rejected", role)
		}
	}
}

func TestReviewerRolesFromEnv(t *testing.T) {
	t.Setenv("REVIEWER_ROLES", "Lead, Triage ,")

	cfg := Load()
	if !cfg.IsReviewerRole("lead") || !cfg.IsReviewerRole("triage") {
		t.Fatalf("expected env-provided roles, got %v", cfg.ReviewerRoles)
	}
	if cfg.IsReviewerRole("admin") {
		t.Fatalf("default roles should be replaced, got %v", cfg.ReviewerRoles)
	}
}

func TestSchedulerIntervalFallback(t *testing.T) {
	t.Setenv("SCHEDULER_INTERVAL", "not-a-duration")

	cfg := Load()
	if cfg.SchedulerInterval <= 0 {
		t.Fatalf("expected fallback interval, got %v", cfg.SchedulerInterval)
	}
}
