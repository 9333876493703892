package repository

import (
	"team-tracker/internal/models"
)

// PersonRepository owns the roster. Mutations only touch memory; call Save to
// persist the whole roster slot.
type PersonRepository interface {
	Load() error
	Save() error
	Create(person *models.Person)
	Update(person *models.Person) error
	Delete(id string) error
	GetByID(id string) (*models.Person, error)
	// GetAll returns the live records in insertion order.
	GetAll() []*models.Person
	// Snapshot returns detached copies in insertion order.
	Snapshot() []models.Person
	ReplaceAll(people []models.Person)
}

type SlotPersonRepository struct {
	people *slotCollection[models.Person]
}

func NewSlotPersonRepository(slots SlotRepository) *SlotPersonRepository {
	return &SlotPersonRepository{
		people: newSlotCollection(slots, models.SlotPersonnel, func(p *models.Person) string { return p.ID }),
	}
}

func (r *SlotPersonRepository) Load() error {
	return r.people.load()
}

func (r *SlotPersonRepository) Save() error {
	return r.people.save()
}

func (r *SlotPersonRepository) Create(person *models.Person) {
	r.people.items = append(r.people.items, person)
}

func (r *SlotPersonRepository) Update(person *models.Person) error {
	return r.people.replace(person)
}

func (r *SlotPersonRepository) Delete(id string) error {
	return r.people.remove(id)
}

func (r *SlotPersonRepository) GetByID(id string) (*models.Person, error) {
	return r.people.get(id)
}

func (r *SlotPersonRepository) GetAll() []*models.Person {
	return r.people.items
}

func (r *SlotPersonRepository) Snapshot() []models.Person {
	return r.people.snapshot()
}

func (r *SlotPersonRepository) ReplaceAll(people []models.Person) {
	r.people.reset(people)
}
