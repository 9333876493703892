package repository

import (
	"team-tracker/internal/models"
)

// LeaveRepository owns the ledger. Like PersonRepository, mutations stay in
// memory until Save.
type LeaveRepository interface {
	Load() error
	Save() error
	Create(leave *models.Leave)
	Update(leave *models.Leave) error
	Delete(id string) error
	GetByID(id string) (*models.Leave, error)
	GetAll() []*models.Leave
	GetByPersonID(personID string) []*models.Leave
	Snapshot() []models.Leave
	ReplaceAll(leaves []models.Leave)
}

type SlotLeaveRepository struct {
	leaves *slotCollection[models.Leave]
}

func NewSlotLeaveRepository(slots SlotRepository) *SlotLeaveRepository {
	return &SlotLeaveRepository{
		leaves: newSlotCollection(slots, models.SlotLeaves, func(l *models.Leave) string { return l.ID }),
	}
}

func (r *SlotLeaveRepository) Load() error {
	return r.leaves.load()
}

func (r *SlotLeaveRepository) Save() error {
	return r.leaves.save()
}

func (r *SlotLeaveRepository) Create(leave *models.Leave) {
	r.leaves.items = append(r.leaves.items, leave)
}

func (r *SlotLeaveRepository) Update(leave *models.Leave) error {
	return r.leaves.replace(leave)
}

func (r *SlotLeaveRepository) Delete(id string) error {
	return r.leaves.remove(id)
}

func (r *SlotLeaveRepository) GetByID(id string) (*models.Leave, error) {
	return r.leaves.get(id)
}

func (r *SlotLeaveRepository) GetAll() []*models.Leave {
	return r.leaves.items
}

func (r *SlotLeaveRepository) GetByPersonID(personID string) []*models.Leave {
	var result []*models.Leave
	for _, leave := range r.leaves.items {
		if leave.PersonID == personID {
			result = append(result, leave)
		}
	}
	return result
}

func (r *SlotLeaveRepository) Snapshot() []models.Leave {
	return r.leaves.snapshot()
}

func (r *SlotLeaveRepository) ReplaceAll(leaves []models.Leave) {
	r.leaves.reset(leaves)
}
