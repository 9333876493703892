package app

import (
	"os"
	"path/filepath"
	"team-tracker/internal/config"
	"team-tracker/internal/models"
	"team-tracker/internal/service"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StorageBackend:  config.BackendSQLite,
		DatabaseURL:     filepath.Join(t.TempDir(), "tracker.db"),
		StatusPolicy:    config.PolicyOverwrite,
		Location:        time.UTC,
		MetricsTextfile: filepath.Join(t.TempDir(), "tracker.prom"),
		LogLevel:        logrus.WarnLevel,
	}
}

func TestApp_SQLiteLifecycle(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := first.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	person, err := first.Roster.Create(service.PersonInput{Name: "سالم"})
	if err != nil {
		t.Fatalf("Create person: %v", err)
	}
	today := first.Store.Engine.Today()
	if _, err := first.Ledger.Create(service.LeaveInput{
		PersonID:  person.ID,
		Type:      models.LeaveTypeLeave,
		StartDate: today,
		EndDate:   today.AddDays(2),
	}); err != nil {
		t.Fatalf("Create leave: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := New(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if err := second.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	summary := second.Dashboard.Summary()
	if summary.Total != 1 || summary.OnLeave != 1 || len(summary.Recent) != 1 {
		t.Errorf("summary after reopen = %+v", summary)
	}
}

func TestApp_NewWithSlots_UsesPolicy(t *testing.T) {
	cfg := testConfig(t)
	cfg.StatusPolicy = config.PolicyRederive

	slots, err := OpenSlots(cfg)
	if err != nil {
		t.Fatalf("OpenSlots: %v", err)
	}
	a := NewWithSlots(cfg, slots, func() time.Time { return time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC) })
	defer a.Close()

	if a.Store.Engine.Policy() != service.PolicyRederive {
		t.Errorf("Policy() = %s, want rederive", a.Store.Engine.Policy())
	}
	if got := a.Store.Engine.Today(); !got.Equal(models.NewDate(2026, time.March, 1)) {
		t.Errorf("Today() = %s", got)
	}
}

func TestOpenSlots_ReadOnlyDatabaseFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readonly.db")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := testConfig(t)
	cfg.DatabaseURL = "file:" + path + "?mode=ro"

	slots, err := OpenSlots(cfg)
	if err == nil {
		slots.Close()
		t.Fatal("OpenSlots on a read-only database should fail to migrate")
	}
	if slots != nil {
		t.Errorf("OpenSlots returned %T with an error", slots)
	}
}
