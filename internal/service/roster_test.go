package service

import (
	"errors"
	"team-tracker/internal/models"
	"testing"
	"time"
)

func TestRosterService_Create_Defaults(t *testing.T) {
	env := setupTestEnv(t, PolicyOverwrite, day(2026, time.May, 4))

	person, err := env.roster.Create(PersonInput{Name: "  سالم  ", Phone: "٠٥٥١٢٣"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if person.Name != "سالم" {
		t.Errorf("Name = %q, want trimmed", person.Name)
	}
	if person.Status != models.StatusActive {
		t.Errorf("Status = %s, want active", person.Status)
	}
	if !person.JoinDate.Equal(day(2026, time.May, 4)) {
		t.Errorf("JoinDate = %s, want today", person.JoinDate)
	}
	if env.slots.puts[models.SlotPersonnel] == 0 {
		t.Error("create should persist the roster")
	}
}

func TestRosterService_Create_Validation(t *testing.T) {
	env := setupTestEnv(t, PolicyOverwrite, day(2026, time.May, 4))

	tests := []struct {
		name  string
		input PersonInput
	}{
		{"empty name", PersonInput{Name: "   "}},
		{"unknown status", PersonInput{Name: "سالم", Status: "retired"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.roster.Create(tt.input); !models.IsValidation(err) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}
	if got := len(env.roster.List(ListOptions{})); got != 0 {
		t.Errorf("roster size = %d, want 0", got)
	}
}

func TestRosterService_Update_KeepsUnsetFields(t *testing.T) {
	env := setupTestEnv(t, PolicyOverwrite, day(2026, time.May, 4))
	person, _ := env.roster.Create(PersonInput{Name: "سالم", JoinDate: day(2020, time.January, 1)})
	env.mustCreateLeave(t, person.ID, models.LeaveTypeLeave, day(2026, time.May, 4), day(2026, time.May, 6))

	updated, err := env.roster.Update(person.ID, PersonInput{Name: "سالم علي", Title: "رقيب"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Status != models.StatusOnLeave {
		t.Errorf("Status = %s, want the stored on-leave", updated.Status)
	}
	if !updated.JoinDate.Equal(day(2020, time.January, 1)) {
		t.Errorf("JoinDate = %s, want stored value", updated.JoinDate)
	}
	if updated.Title != "رقيب" {
		t.Errorf("Title = %q", updated.Title)
	}
}

func TestRosterService_Update_NotFound(t *testing.T) {
	env := setupTestEnv(t, PolicyOverwrite, day(2026, time.May, 4))

	_, err := env.roster.Update("missing", PersonInput{Name: "سالم"})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRosterService_ArchiveRestore(t *testing.T) {
	env := setupTestEnv(t, PolicyOverwrite, day(2026, time.May, 4))
	kept := env.mustCreatePerson(t, "أحمد")
	archived := env.mustCreatePerson(t, "بلال")
	env.mustCreateLeave(t, archived.ID, models.LeaveTypeLeave, day(2026, time.May, 1), day(2026, time.May, 2))

	if err := env.roster.Archive(archived.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	list := env.roster.List(ListOptions{})
	if len(list) != 1 || list[0].ID != kept.ID {
		t.Errorf("List() = %v, want only the working set", list)
	}
	if got := env.roster.Archived(); len(got) != 1 || got[0].ID != archived.ID {
		t.Errorf("Archived() = %v", got)
	}
	if got := len(env.ledger.ListByPerson(archived.ID)); got != 1 {
		t.Errorf("archived person's leaves = %d, want 1", got)
	}
	if summary := env.dashboard.Summary(); summary.Total != 1 {
		t.Errorf("dashboard total = %d, want 1", summary.Total)
	}

	if err := env.roster.Restore(archived.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := len(env.roster.List(ListOptions{})); got != 2 {
		t.Errorf("List() size after restore = %d, want 2", got)
	}
}

func TestRosterService_Delete(t *testing.T) {
	env := setupTestEnv(t, PolicyOverwrite, day(2026, time.May, 4))
	person := env.mustCreatePerson(t, "سالم")
	env.mustCreateLeave(t, person.ID, models.LeaveTypeLeave, day(2026, time.May, 1), day(2026, time.May, 2))

	if err := env.roster.Delete(person.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := env.roster.Get(person.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Get after delete error = %v, want ErrNotFound", err)
	}
	if got := len(env.ledger.List()); got != 1 {
		t.Errorf("leaves should be kept as orphans, got %d", got)
	}
	if err := env.roster.Delete(person.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestRosterService_List_SearchFilterSort(t *testing.T) {
	env := setupTestEnv(t, PolicyOverwrite, day(2026, time.May, 4))

	inputs := []PersonInput{
		{Name: "كريم", Phone: "0551112233", Title: "عريف", JoinDate: day(2022, time.March, 1)},
		{Name: "أحمد", Phone: "0669998877", Title: "رقيب", JoinDate: day(2024, time.June, 1)},
		{Name: "بلال", Phone: "0770001122", Title: "رقيب", JoinDate: day(2021, time.January, 1), Status: models.StatusInactive},
	}
	for _, input := range inputs {
		if _, err := env.roster.Create(input); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"insertion order", ListOptions{}, []string{"كريم", "أحمد", "بلال"}},
		{"sort by name", ListOptions{SortBy: SortByName}, []string{"أحمد", "بلال", "كريم"}},
		{"sort by join date newest first", ListOptions{SortBy: SortByDate}, []string{"أحمد", "كريم", "بلال"}},
		{"status filter", ListOptions{Status: models.StatusInactive}, []string{"بلال"}},
		{"all filter", ListOptions{Status: StatusFilterAll}, []string{"كريم", "أحمد", "بلال"}},
		{"search title", ListOptions{Search: "رقيب", SortBy: SortByName}, []string{"أحمد", "بلال"}},
		{"search Arabic-Indic phone digits", ListOptions{Search: "٠٦٦٩"}, []string{"أحمد"}},
		{"search without match", ListOptions{Search: "زياد"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := env.roster.List(tt.opts)
			if len(got) != len(tt.want) {
				t.Fatalf("List() returned %d persons, want %d", len(got), len(tt.want))
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("List()[%d] = %s, want %s", i, got[i].Name, name)
				}
			}
		})
	}
}
