package service

import (
	"team-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LeaveInput carries the editable fields of a leave record.
type LeaveInput struct {
	PersonID  string
	Type      models.LeaveType
	StartDate models.Date
	EndDate   models.Date
	Reason    string
	Justified bool
}

type LedgerService struct {
	store *Store
}

func NewLedgerService(store *Store) *LedgerService {
	return &LedgerService{store: store}
}

func errNoPersonSelected() error {
	return &models.ValidationError{Field: "personId", Message: "no person selected"}
}

// Create records a leave for a working-set person and applies its effect to
// the person's status.
func (s *LedgerService) Create(input LeaveInput) (*models.Leave, error) {
	person, ok := s.store.workingPerson(input.PersonID)
	if !ok {
		return nil, errNoPersonSelected()
	}

	leave := newLeave(uuid.NewString(), person, input)

	s.store.Leaves.Create(leave)
	s.store.Engine.LeaveSaved(person, leave, s.store.Leaves.GetAll())
	s.store.Persist("leave.create")

	s.store.logger.WithFields(logrus.Fields{
		"leave_id":  leave.ID,
		"person_id": person.ID,
		"type":      leave.Type,
		"status":    person.Status,
	}).Info("Leave created")

	created := *leave
	return &created, nil
}

// Update replaces the record with id and re-applies its effect. If the record
// moves to another person, the previous person is only re-evaluated under the
// rederive policy.
func (s *LedgerService) Update(id string, input LeaveInput) (*models.Leave, error) {
	person, ok := s.store.workingPerson(input.PersonID)
	if !ok {
		return nil, errNoPersonSelected()
	}

	existing, err := s.store.Leaves.GetByID(id)
	if err != nil {
		return nil, err
	}
	previousPersonID := existing.PersonID

	updated := newLeave(id, person, input)
	if err := s.store.Leaves.Update(updated); err != nil {
		return nil, err
	}

	ledger := s.store.Leaves.GetAll()
	s.store.Engine.LeaveSaved(person, updated, ledger)
	if previousPersonID != person.ID {
		if previous, err := s.store.People.GetByID(previousPersonID); err == nil {
			s.store.Engine.LeaveRemoved(previous, ledger, false)
		}
	}
	s.store.Persist("leave.update")

	s.store.logger.WithFields(logrus.Fields{
		"leave_id":  id,
		"person_id": person.ID,
		"status":    person.Status,
	}).Info("Leave updated")

	result := *updated
	return &result, nil
}

// Delete removes the record and restores the referenced person, if it still
// exists.
func (s *LedgerService) Delete(id string) error {
	leave, err := s.store.Leaves.GetByID(id)
	if err != nil {
		return err
	}
	personID := leave.PersonID

	if err := s.store.Leaves.Delete(id); err != nil {
		return err
	}
	if person, err := s.store.People.GetByID(personID); err == nil {
		s.store.Engine.LeaveRemoved(person, s.store.Leaves.GetAll(), true)
	}
	s.store.Persist("leave.delete")

	s.store.logger.WithFields(logrus.Fields{
		"leave_id":  id,
		"person_id": personID,
	}).Info("Leave deleted")
	return nil
}

func (s *LedgerService) Get(id string) (*models.Leave, error) {
	leave, err := s.store.Leaves.GetByID(id)
	if err != nil {
		return nil, err
	}
	result := *leave
	return &result, nil
}

// List returns the whole ledger in insertion order.
func (s *LedgerService) List() []models.Leave {
	return s.store.Leaves.Snapshot()
}

func (s *LedgerService) ListByPerson(personID string) []models.Leave {
	var result []models.Leave
	for _, leave := range s.store.Leaves.GetByPersonID(personID) {
		result = append(result, *leave)
	}
	return result
}

// Recent returns the last n records, newest first.
func (s *LedgerService) Recent(n int) []models.Leave {
	all := s.store.Leaves.GetAll()
	if n > len(all) {
		n = len(all)
	}
	if n < 0 {
		n = 0
	}

	result := make([]models.Leave, 0, n)
	for i := len(all) - 1; i >= len(all)-n; i-- {
		result = append(result, *all[i])
	}
	return result
}

func newLeave(id string, person *models.Person, input LeaveInput) *models.Leave {
	return &models.Leave{
		ID:         id,
		PersonID:   person.ID,
		PersonName: person.Name,
		Type:       input.Type,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Reason:     input.Reason,
		Justified:  input.Justified,
	}
}
