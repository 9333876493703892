package models

type LeaveType string

const (
	LeaveTypeLeave   LeaveType = "leave"
	LeaveTypeAbsence LeaveType = "absence"
)

// Leave is one leave or absence event. PersonName is a snapshot taken when the
// record is saved; later edits of the person do not refresh it.
type Leave struct {
	ID         string    `json:"id"`
	PersonID   string    `json:"personId"`
	PersonName string    `json:"personName"`
	Type       LeaveType `json:"type"`
	StartDate  Date      `json:"startDate"`
	EndDate    Date      `json:"endDate"`
	Reason     string    `json:"reason"`
	Justified  bool      `json:"justified"`
}

// EffectStatus is the person status this record implies while it is in effect.
func (l *Leave) EffectStatus() PersonStatus {
	if l.Type == LeaveTypeLeave {
		return StatusOnLeave
	}
	return StatusAbsent
}

// Covers reports whether day falls inside the inclusive date range.
func (l *Leave) Covers(day Date) bool {
	return !day.Before(l.StartDate) && !day.After(l.EndDate)
}

// ExpiredBy reports whether the record ended strictly before today.
func (l *Leave) ExpiredBy(today Date) bool {
	return l.EndDate.Before(today)
}

// Duration is the inclusive number of days; a one-day record lasts 1.
func (l *Leave) Duration() int {
	return l.StartDate.DaysUntil(l.EndDate)
}
