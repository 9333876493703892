package service

import "team-tracker/internal/models"

var statusLabels = map[models.PersonStatus]string{
	models.StatusActive:   "🟢 في الخدمة",
	models.StatusOnLeave:  "🟡 في إجازة",
	models.StatusAbsent:   "🟠 غياب",
	models.StatusInactive: "🔴 خارج الخدمة",
}

// StatusLabel is the display text of a status; unknown values render as is.
func StatusLabel(status models.PersonStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// LeaveTypeLabel is the display text of a leave type.
func LeaveTypeLabel(t models.LeaveType) string {
	if t == models.LeaveTypeLeave {
		return "إجازة"
	}
	return "غياب"
}

// JustifiedLabel renders the justified flag.
func JustifiedLabel(justified bool) string {
	if justified {
		return "✅ نعم"
	}
	return "❌ لا"
}
