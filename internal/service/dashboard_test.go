package service

import (
	"team-tracker/internal/models"
	"testing"
	"time"
)

func TestDashboardService_Summary(t *testing.T) {
	env := setupTestEnv(t, PolicyOverwrite, day(2026, time.July, 1))

	onLeave := env.mustCreatePerson(t, "أحمد")
	absent := env.mustCreatePerson(t, "بلال")
	env.mustCreatePerson(t, "كريم")
	if _, err := env.roster.Create(PersonInput{Name: "دحمان", Status: models.StatusInactive}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	archived := env.mustCreatePerson(t, "زياد")
	if err := env.roster.Archive(archived.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	var leaveIDs []string
	for i := 0; i < 6; i++ {
		leave := env.mustCreateLeave(t, onLeave.ID, models.LeaveTypeLeave, day(2026, time.July, 1), day(2026, time.July, 2+i))
		leaveIDs = append(leaveIDs, leave.ID)
	}
	last := env.mustCreateLeave(t, absent.ID, models.LeaveTypeAbsence, day(2026, time.July, 1), day(2026, time.July, 1))

	summary := env.dashboard.Summary()

	if summary.Total != 4 {
		t.Errorf("Total = %d, want 4", summary.Total)
	}
	if summary.Active != 1 || summary.OnLeave != 1 || summary.Absent != 1 || summary.Inactive != 1 {
		t.Errorf("counts = %+v, want one of each", summary)
	}
	if len(summary.Recent) != RecentActivityLimit {
		t.Fatalf("Recent size = %d, want %d", len(summary.Recent), RecentActivityLimit)
	}
	if summary.Recent[0].ID != last.ID || summary.Recent[1].ID != leaveIDs[5] {
		t.Errorf("Recent should list newest first, got %s, %s", summary.Recent[0].ID, summary.Recent[1].ID)
	}
}

func TestDashboardService_Summary_Empty(t *testing.T) {
	env := setupTestEnv(t, PolicyOverwrite, day(2026, time.July, 1))

	summary := env.dashboard.Summary()
	if summary.Total != 0 || len(summary.Recent) != 0 {
		t.Errorf("summary = %+v, want empty", summary)
	}
}
