package models

import "time"

// Snapshot is the export document.
type Snapshot struct {
	Personnel []Person `json:"personnel"`
	Leaves    []Leave  `json:"leaves"`
}

// ImportDocument mirrors Snapshot but tells absent keys apart from empty ones.
type ImportDocument struct {
	Personnel *[]Person `json:"personnel"`
	Leaves    *[]Leave  `json:"leaves"`
}

// Slot is one named value of the local key/value store.
type Slot struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Slot) TableName() string {
	return "kv_slots"
}

const (
	SlotPersonnel = "personnel"
	SlotLeaves    = "leaves"
)
