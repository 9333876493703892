package repository

import (
	"errors"
	"path/filepath"
	"team-tracker/internal/models"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestSlots(t *testing.T) *GormSlotRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "slots.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	slots, err := NewGormSlotRepository(db)
	if err != nil {
		t.Fatalf("NewGormSlotRepository: %v", err)
	}
	t.Cleanup(func() { slots.Close() })
	return slots
}

func TestGormSlotRepository_GetPut(t *testing.T) {
	slots := newTestSlots(t)

	if _, found, err := slots.Get("missing"); err != nil || found {
		t.Fatalf("Get(missing) = found %v, err %v", found, err)
	}

	if err := slots.Put("k", []byte(`[1]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := slots.Put("k", []byte(`[1,2]`)); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	value, found, err := slots.Get("k")
	if err != nil || !found {
		t.Fatalf("Get(k) = found %v, err %v", found, err)
	}
	if string(value) != `[1,2]` {
		t.Errorf("Get(k) = %s, want the last write", value)
	}
}

func TestSlotPersonRepository_SaveLoad(t *testing.T) {
	slots := newTestSlots(t)
	repo := NewSlotPersonRepository(slots)

	repo.Create(&models.Person{ID: "p1", Name: "سالم", Status: models.StatusActive, JoinDate: models.NewDate(2024, time.January, 5)})
	repo.Create(&models.Person{ID: "p2", Name: "كريم", Status: models.StatusAbsent, Archived: true})
	if err := repo.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := NewSlotPersonRepository(slots)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := loaded.Snapshot()
	if len(got) != 2 {
		t.Fatalf("loaded %d persons, want 2", len(got))
	}
	if got[0].ID != "p1" || got[1].ID != "p2" {
		t.Errorf("order = %s, %s; want p1, p2", got[0].ID, got[1].ID)
	}
	if !got[0].JoinDate.Equal(models.NewDate(2024, time.January, 5)) {
		t.Errorf("JoinDate = %s", got[0].JoinDate)
	}
	if !got[1].Archived {
		t.Error("archived flag should survive a round trip")
	}
}

func TestSlotPersonRepository_MutationsAndNotFound(t *testing.T) {
	repo := NewSlotPersonRepository(newTestSlots(t))
	repo.Create(&models.Person{ID: "p1", Name: "سالم"})

	if err := repo.Update(&models.Person{ID: "p1", Name: "سالم علي"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	person, err := repo.GetByID("p1")
	if err != nil || person.Name != "سالم علي" {
		t.Errorf("GetByID = %+v, %v", person, err)
	}

	if err := repo.Update(&models.Person{ID: "nope"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Update(nope) = %v, want ErrNotFound", err)
	}
	if err := repo.Delete("nope"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Delete(nope) = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByID("nope"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetByID(nope) = %v, want ErrNotFound", err)
	}

	if err := repo.Delete("p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := len(repo.GetAll()); got != 0 {
		t.Errorf("size after delete = %d, want 0", got)
	}
}

func TestSlotPersonRepository_SnapshotIsDetached(t *testing.T) {
	repo := NewSlotPersonRepository(newTestSlots(t))
	repo.Create(&models.Person{ID: "p1", Name: "سالم"})

	snapshot := repo.Snapshot()
	snapshot[0].Name = "changed"

	person, _ := repo.GetByID("p1")
	if person.Name != "سالم" {
		t.Error("editing a snapshot should not touch the repository")
	}
}

func TestSlotLeaveRepository_LoadMissingAndMalformed(t *testing.T) {
	slots := newTestSlots(t)
	repo := NewSlotLeaveRepository(slots)

	if err := repo.Load(); err != nil {
		t.Fatalf("Load of a missing slot: %v", err)
	}
	if got := len(repo.GetAll()); got != 0 {
		t.Errorf("size = %d, want 0", got)
	}

	repo.Create(&models.Leave{ID: "stale"})
	if err := slots.Put(models.SlotLeaves, []byte(`{"broken":`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	err := repo.Load()
	if !models.IsParse(err) {
		t.Errorf("Load of a malformed slot = %v, want ParseError", err)
	}
	if got := len(repo.GetAll()); got != 0 {
		t.Errorf("size after malformed load = %d, want 0", got)
	}
}

func TestSlotLeaveRepository_NullEntriesDropped(t *testing.T) {
	slots := newTestSlots(t)
	if err := slots.Put(models.SlotLeaves, []byte(`[null,{"id":"l1","personId":"p1","type":"leave","startDate":"2026-01-01","endDate":"2026-01-02"}]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	repo := NewSlotLeaveRepository(slots)
	if err := repo.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(repo.GetAll()); got != 1 {
		t.Fatalf("size = %d, want 1", got)
	}
	if got := len(repo.GetByPersonID("p1")); got != 1 {
		t.Errorf("GetByPersonID size = %d, want 1", got)
	}
	if got := len(repo.GetByPersonID("p2")); got != 0 {
		t.Errorf("GetByPersonID(p2) size = %d, want 0", got)
	}
}

func TestSlotLeaveRepository_ReplaceAll(t *testing.T) {
	slots := newTestSlots(t)
	repo := NewSlotLeaveRepository(slots)
	repo.Create(&models.Leave{ID: "old"})

	repo.ReplaceAll([]models.Leave{{ID: "a"}, {ID: "b"}})
	if err := repo.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	snapshot := repo.Snapshot()
	if len(snapshot) != 2 || snapshot[0].ID != "a" || snapshot[1].ID != "b" {
		t.Errorf("Snapshot() = %v", snapshot)
	}
	if _, err := repo.GetByID("old"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("old record should be gone, got %v", err)
	}

	repo.ReplaceAll(nil)
	if err := repo.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	value, _, _ := slots.Get(models.SlotLeaves)
	if string(value) != "[]" {
		t.Errorf("persisted = %s, want []", value)
	}
}
