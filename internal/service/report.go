package service

import (
	"bytes"
	"errors"
	"fmt"
	"team-tracker/internal/models"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var ErrReportGenerate = errors.New("failed to generate report")

const (
	sheetPersonnel = "الأفراد"
	sheetLeaves    = "الإجازات"
)

// ReportService renders the roster and the ledger for use outside the app.
type ReportService struct {
	store *Store
	now   func() time.Time
}

func NewReportService(store *Store, now func() time.Time) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{store: store, now: now}
}

// ExportXLSX builds a workbook with one sheet for the working set and one for
// the ledger, both right-to-left.
func (s *ReportService) ExportXLSX() (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetPersonnel); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrReportGenerate, err)
	}
	if _, err := f.NewSheet(sheetLeaves); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrReportGenerate, err)
	}

	rtl := true
	for _, sheet := range []string{sheetPersonnel, sheetLeaves} {
		if err := f.SetSheetView(sheet, -1, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrReportGenerate, err)
		}
	}

	personnelRows := [][]interface{}{
		{"الاسم", "الصفة", "الهاتف", "الحالة", "تاريخ الانضمام", "ملاحظات"},
	}
	for _, person := range s.store.People.Snapshot() {
		if person.Archived {
			continue
		}
		personnelRows = append(personnelRows, []interface{}{
			person.Name, person.Title, person.Phone, StatusLabel(person.Status), person.JoinDate.String(), person.Notes,
		})
	}

	leaveRows := [][]interface{}{
		{"الفرد", "النوع", "من", "إلى", "المدة", "السبب", "مبرر"},
	}
	for _, leave := range s.store.Leaves.Snapshot() {
		leaveRows = append(leaveRows, []interface{}{
			leave.PersonName, LeaveTypeLabel(leave.Type), leave.StartDate.String(), leave.EndDate.String(),
			leave.Duration(), leave.Reason, JustifiedLabel(leave.Justified),
		})
	}

	if err := writeRows(f, sheetPersonnel, personnelRows); err != nil {
		return nil, "", err
	}
	if err := writeRows(f, sheetLeaves, leaveRows); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.store.logger.WithError(err).Error("Failed to write workbook")
		return nil, "", fmt.Errorf("%w: %v", ErrReportGenerate, err)
	}

	filename := fmt.Sprintf("team-report-%s.xlsx", s.now().Format("20060102"))
	s.store.logger.WithFields(logrus.Fields{
		"personnel": len(personnelRows) - 1,
		"leaves":    len(leaveRows) - 1,
	}).Info("Workbook exported")

	return buf, filename, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReportGenerate, err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("%w: %v", ErrReportGenerate, err)
		}
	}
	return nil
}

// ExportICS renders every leave record as an all-day event.
func (s *ReportService) ExportICS() ([]byte, string, error) {
	now := s.now()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//team-tracker//leaves//AR")

	for _, leave := range s.store.Leaves.Snapshot() {
		if leave.StartDate.IsZero() || leave.EndDate.IsZero() {
			continue
		}

		event := cal.AddEvent(leave.ID + "@team-tracker")
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(leave.StartDate.Time)
		// DTEND of an all-day event is exclusive.
		event.SetAllDayEndAt(leave.EndDate.AddDays(1).Time)
		event.SetSummary(fmt.Sprintf("%s - %s", leave.PersonName, LeaveTypeLabel(leave.Type)))

		description := leave.Reason
		if leave.Type != models.LeaveTypeLeave {
			description = fmt.Sprintf("%s\nمبرر: %s", leave.Reason, JustifiedLabel(leave.Justified))
		}
		event.SetDescription(description)
	}

	filename := fmt.Sprintf("team-leaves-%s.ics", now.Format("20060102"))
	return []byte(cal.Serialize()), filename, nil
}
