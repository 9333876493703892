package service

import "team-tracker/internal/models"

// RecentActivityLimit is how many records the dashboard shows.
const RecentActivityLimit = 5

type Summary struct {
	Total    int
	Active   int
	OnLeave  int
	Absent   int
	Inactive int
	Recent   []models.Leave
}

type DashboardService struct {
	store  *Store
	ledger *LedgerService
}

func NewDashboardService(store *Store, ledger *LedgerService) *DashboardService {
	return &DashboardService{store: store, ledger: ledger}
}

// Summary counts the working set by status and lists the latest records.
func (s *DashboardService) Summary() Summary {
	var summary Summary
	for _, person := range s.store.People.GetAll() {
		if person.Archived {
			continue
		}
		summary.Total++
		switch person.Status {
		case models.StatusActive:
			summary.Active++
		case models.StatusOnLeave:
			summary.OnLeave++
		case models.StatusAbsent:
			summary.Absent++
		case models.StatusInactive:
			summary.Inactive++
		}
	}
	summary.Recent = s.ledger.Recent(RecentActivityLimit)
	return summary
}
