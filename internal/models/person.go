package models

type PersonStatus string

const (
	StatusActive   PersonStatus = "active"
	StatusOnLeave  PersonStatus = "on-leave"
	StatusAbsent   PersonStatus = "absent"
	StatusInactive PersonStatus = "inactive"
)

// Statuses lists every person status in display order.
var Statuses = []PersonStatus{StatusActive, StatusOnLeave, StatusAbsent, StatusInactive}

// IsValid reports whether s is a known status.
func (s PersonStatus) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsLeaveDriven reports whether the status was set by a leave record.
func (s PersonStatus) IsLeaveDriven() bool {
	return s == StatusOnLeave || s == StatusAbsent
}

type Person struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Title    string       `json:"title,omitempty"`
	Phone    string       `json:"phone"`
	Status   PersonStatus `json:"status"`
	JoinDate Date         `json:"joinDate"`
	Notes    string       `json:"notes,omitempty"`
	Archived bool         `json:"archived,omitempty"`
}

// ApplyLeaveEffect overwrites the status with the effect of leave.
func (p *Person) ApplyLeaveEffect(leave *Leave) {
	p.Status = leave.EffectStatus()
}

// RestoreActive puts the person back in service.
func (p *Person) RestoreActive() {
	p.Status = StatusActive
}
