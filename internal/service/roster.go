package service

import (
	"fmt"
	"sort"
	"strings"
	"team-tracker/internal/models"
	"team-tracker/pkg/numerals"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	SortByName = "name"
	SortByDate = "date"

	StatusFilterAll = "all"
)

// PersonInput carries the editable fields of a person.
type PersonInput struct {
	Name     string
	Title    string
	Phone    string
	Status   models.PersonStatus
	JoinDate models.Date
	Notes    string
}

// ListOptions narrows and orders a roster listing.
type ListOptions struct {
	Search string
	// Status is a status value, or "" / "all" for every status.
	Status models.PersonStatus
	// SortBy is SortByName, SortByDate, or "" for insertion order.
	SortBy string
}

type RosterService struct {
	store *Store
}

func NewRosterService(store *Store) *RosterService {
	return &RosterService{store: store}
}

// Create adds a person. Status defaults to active and the join date to today.
func (s *RosterService) Create(input PersonInput) (*models.Person, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &models.ValidationError{Field: "name", Message: "name is required"}
	}
	if input.Status != "" && !input.Status.IsValid() {
		return nil, &models.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", input.Status)}
	}

	person := &models.Person{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(input.Name),
		Title:    input.Title,
		Phone:    input.Phone,
		Status:   input.Status,
		JoinDate: input.JoinDate,
		Notes:    input.Notes,
	}
	if person.Status == "" {
		person.Status = models.StatusActive
	}
	if person.JoinDate.IsZero() {
		person.JoinDate = s.store.Engine.Today()
	}

	s.store.People.Create(person)
	s.store.Persist("person.create")

	s.store.logger.WithFields(logrus.Fields{
		"person_id": person.ID,
		"status":    person.Status,
	}).Info("Person created")

	created := *person
	return &created, nil
}

// Update replaces the editable fields of a person. An empty status or a zero
// join date keeps the stored value. Leaves keep their name snapshot.
func (s *RosterService) Update(id string, input PersonInput) (*models.Person, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &models.ValidationError{Field: "name", Message: "name is required"}
	}
	if input.Status != "" && !input.Status.IsValid() {
		return nil, &models.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", input.Status)}
	}

	existing, err := s.store.People.GetByID(id)
	if err != nil {
		return nil, err
	}

	updated := &models.Person{
		ID:       existing.ID,
		Name:     strings.TrimSpace(input.Name),
		Title:    input.Title,
		Phone:    input.Phone,
		Status:   input.Status,
		JoinDate: input.JoinDate,
		Notes:    input.Notes,
		Archived: existing.Archived,
	}
	if updated.Status == "" {
		updated.Status = existing.Status
	}
	if updated.JoinDate.IsZero() {
		updated.JoinDate = existing.JoinDate
	}

	if err := s.store.People.Update(updated); err != nil {
		return nil, err
	}
	s.store.Persist("person.update")

	s.store.logger.WithField("person_id", id).Info("Person updated")

	result := *updated
	return &result, nil
}

// Archive hides a person from the working set. The record and its leaves stay.
func (s *RosterService) Archive(id string) error {
	return s.setArchived(id, true)
}

// Restore returns an archived person to the working set.
func (s *RosterService) Restore(id string) error {
	return s.setArchived(id, false)
}

func (s *RosterService) setArchived(id string, archived bool) error {
	person, err := s.store.People.GetByID(id)
	if err != nil {
		return err
	}
	if person.Archived == archived {
		return nil
	}

	person.Archived = archived
	op := "person.restore"
	if archived {
		op = "person.archive"
	}
	s.store.Persist(op)

	s.store.logger.WithFields(logrus.Fields{
		"person_id": id,
		"archived":  archived,
	}).Info("Person archive flag changed")
	return nil
}

// Delete removes a person for good. Leaves referencing it are kept as orphans.
func (s *RosterService) Delete(id string) error {
	if err := s.store.People.Delete(id); err != nil {
		return err
	}
	s.store.Persist("person.delete")

	s.store.logger.WithField("person_id", id).Info("Person deleted")
	return nil
}

// Get returns a copy of the person with id, archived or not.
func (s *RosterService) Get(id string) (*models.Person, error) {
	person, err := s.store.People.GetByID(id)
	if err != nil {
		return nil, err
	}
	result := *person
	return &result, nil
}

// List returns the working set filtered and sorted by opts.
func (s *RosterService) List(opts ListOptions) []models.Person {
	search := strings.ToLower(numerals.ToWestern(strings.TrimSpace(opts.Search)))

	var result []models.Person
	for _, person := range s.store.People.GetAll() {
		if person.Archived {
			continue
		}
		if opts.Status != "" && opts.Status != StatusFilterAll && person.Status != opts.Status {
			continue
		}
		if search != "" && !matchesSearch(person, search) {
			continue
		}
		result = append(result, *person)
	}

	switch opts.SortBy {
	case SortByName:
		collator := collate.New(language.Arabic, collate.IgnoreCase)
		sort.SliceStable(result, func(i, j int) bool {
			return collator.CompareString(result[i].Name, result[j].Name) < 0
		})
	case SortByDate:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].JoinDate.After(result[j].JoinDate)
		})
	}

	return result
}

// Archived lists archived persons in insertion order.
func (s *RosterService) Archived() []models.Person {
	var result []models.Person
	for _, person := range s.store.People.GetAll() {
		if person.Archived {
			result = append(result, *person)
		}
	}
	return result
}

func matchesSearch(person *models.Person, term string) bool {
	return strings.Contains(strings.ToLower(person.Name), term) ||
		strings.Contains(numerals.ToWestern(person.Phone), term) ||
		strings.Contains(strings.ToLower(person.Title), term)
}
