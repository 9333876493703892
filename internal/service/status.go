package service

import (
	"team-tracker/internal/models"
	"time"

	"github.com/sirupsen/logrus"
)

// StatusPolicy selects how leave mutations update a person's status.
type StatusPolicy string

const (
	// PolicyOverwrite applies the single record that changed: save sets the
	// leave effect, delete sets active, whatever else the ledger holds.
	PolicyOverwrite StatusPolicy = "overwrite"
	// PolicyRederive recomputes the status from every record covering today.
	PolicyRederive StatusPolicy = "rederive"
)

// StatusEngine keeps Person.Status consistent with the leave ledger.
type StatusEngine struct {
	policy StatusPolicy
	loc    *time.Location
	now    func() time.Time
	logger *logrus.Logger
}

func NewStatusEngine(policy StatusPolicy, loc *time.Location, now func() time.Time) *StatusEngine {
	if policy == "" {
		policy = PolicyOverwrite
	}
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.GetLevel())

	return &StatusEngine{
		policy: policy,
		loc:    loc,
		now:    now,
		logger: logger,
	}
}

func (e *StatusEngine) SetLogLevel(level logrus.Level) {
	e.logger.SetLevel(level)
}

func (e *StatusEngine) Policy() StatusPolicy {
	return e.policy
}

// Today is the current calendar date in the configured time zone.
func (e *StatusEngine) Today() models.Date {
	return models.DateOf(e.now().In(e.loc))
}

// DeriveStatus computes the status the ledger implies for person on today.
// Inactive is a manual override and is returned unchanged. When several
// records cover today, the one recorded last wins.
func DeriveStatus(person *models.Person, ledger []*models.Leave, today models.Date) models.PersonStatus {
	if person.Status == models.StatusInactive {
		return models.StatusInactive
	}

	status := models.StatusActive
	for _, leave := range ledger {
		if leave.PersonID == person.ID && leave.Covers(today) {
			status = leave.EffectStatus()
		}
	}
	return status
}

// LeaveSaved updates person after leave was created or edited. ledger must
// already contain the saved record.
func (e *StatusEngine) LeaveSaved(person *models.Person, leave *models.Leave, ledger []*models.Leave) {
	if e.policy == PolicyRederive {
		person.Status = DeriveStatus(person, ledger, e.Today())
		return
	}
	person.ApplyLeaveEffect(leave)
}

// LeaveRemoved updates person after one of its records left the ledger, by
// deletion or by an edit that moved it to someone else. Under the overwrite
// policy only deletion restores the status; a moved record leaves the
// previous person untouched.
func (e *StatusEngine) LeaveRemoved(person *models.Person, ledger []*models.Leave, deleted bool) {
	switch {
	case e.policy == PolicyRederive:
		person.Status = DeriveStatus(person, ledger, e.Today())
	case deleted:
		person.RestoreActive()
	}
}

// SweepExpired returns persons to active when a record that ended before today
// still drives their status. Leaves are never modified and records pointing at
// deleted persons are skipped. It returns the ids of changed persons and is
// idempotent.
func (e *StatusEngine) SweepExpired(today models.Date, ledger []*models.Leave, personnel []*models.Person) []string {
	byID := make(map[string]*models.Person, len(personnel))
	for _, person := range personnel {
		byID[person.ID] = person
	}

	var changed []string
	seen := make(map[string]bool)

	for _, leave := range ledger {
		if !leave.ExpiredBy(today) {
			continue
		}

		person, ok := byID[leave.PersonID]
		if !ok || !person.Status.IsLeaveDriven() {
			continue
		}

		next := models.StatusActive
		if e.policy == PolicyRederive {
			next = DeriveStatus(person, ledger, today)
		}
		if next == person.Status {
			continue
		}

		e.logger.WithFields(logrus.Fields{
			"person_id": person.ID,
			"leave_id":  leave.ID,
			"from":      person.Status,
			"to":        next,
		}).Debug("Expired leave status reset")

		person.Status = next
		if !seen[person.ID] {
			seen[person.ID] = true
			changed = append(changed, person.ID)
		}
	}

	return changed
}
