package service

import (
	"errors"
	"team-tracker/internal/models"
	"team-tracker/internal/repository"
	"testing"
	"time"
)

// ── Mock SlotRepository ──

type mockSlots struct {
	values map[string][]byte
	puts   map[string]int
	putErr error
}

func newMockSlots() *mockSlots {
	return &mockSlots{
		values: make(map[string][]byte),
		puts:   make(map[string]int),
	}
}

func (m *mockSlots) Get(key string) ([]byte, bool, error) {
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *mockSlots) Put(key string, value []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts[key]++
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *mockSlots) Close() error {
	return nil
}

var errDiskFull = errors.New("disk full")

// ── Test helpers ──

type testEnv struct {
	slots     *mockSlots
	store     *Store
	roster    *RosterService
	ledger    *LedgerService
	dashboard *DashboardService
	backup    *BackupService
	reports   *ReportService
	clock     *testClock
}

// testClock reports a fixed time of day on a date tests can move.
type testClock struct {
	today models.Date
}

func (c *testClock) Now() time.Time {
	return time.Date(c.today.Year(), c.today.Month(), c.today.Day(), 10, 30, 0, 0, time.UTC)
}

func setupTestEnv(t *testing.T, policy StatusPolicy, today models.Date) *testEnv {
	t.Helper()
	return setupTestEnvWithSlots(t, newMockSlots(), policy, today)
}

func setupTestEnvWithSlots(t *testing.T, slots *mockSlots, policy StatusPolicy, today models.Date) *testEnv {
	t.Helper()

	clock := &testClock{today: today}
	engine := NewStatusEngine(policy, time.UTC, clock.Now)
	store := NewStore(
		repository.NewSlotPersonRepository(slots),
		repository.NewSlotLeaveRepository(slots),
		engine,
		nil,
	)
	ledger := NewLedgerService(store)

	return &testEnv{
		slots:     slots,
		store:     store,
		roster:    NewRosterService(store),
		ledger:    ledger,
		dashboard: NewDashboardService(store, ledger),
		backup:    NewBackupService(store),
		reports:   NewReportService(store, clock.Now),
		clock:     clock,
	}
}

func (e *testEnv) mustCreatePerson(t *testing.T, name string) *models.Person {
	t.Helper()
	person, err := e.roster.Create(PersonInput{Name: name, Phone: "0550000000"})
	if err != nil {
		t.Fatalf("Create person %s: %v", name, err)
	}
	return person
}

func (e *testEnv) mustCreateLeave(t *testing.T, personID string, leaveType models.LeaveType, start, end models.Date) *models.Leave {
	t.Helper()
	leave, err := e.ledger.Create(LeaveInput{
		PersonID:  personID,
		Type:      leaveType,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("Create leave: %v", err)
	}
	return leave
}

func (e *testEnv) statusOf(t *testing.T, id string) models.PersonStatus {
	t.Helper()
	person, err := e.roster.Get(id)
	if err != nil {
		t.Fatalf("Get person %s: %v", id, err)
	}
	return person.Status
}

func day(y int, m time.Month, d int) models.Date {
	return models.NewDate(y, m, d)
}
