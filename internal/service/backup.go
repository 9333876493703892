package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"team-tracker/internal/models"
	"time"

	"github.com/sirupsen/logrus"
)

// ImportResult reports which collections an import replaced.
type ImportResult struct {
	PersonnelReplaced bool
	LeavesReplaced    bool
	Personnel         int
	Leaves            int
}

type BackupService struct {
	store *Store
}

func NewBackupService(store *Store) *BackupService {
	return &BackupService{store: store}
}

// Export renders both collections as an indented JSON document.
func (s *BackupService) Export() ([]byte, error) {
	snapshot := models.Snapshot{
		Personnel: s.store.People.Snapshot(),
		Leaves:    s.store.Leaves.Snapshot(),
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// ExportFileName is the suggested download name for an export made at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("team-data-%d.json", now.UnixMilli())
}

// Import replaces each collection present in data. Absent or null keys leave
// the collection untouched. Malformed JSON, or a document that is not an
// object, returns a ParseError and changes nothing. Leaves pointing at unknown
// persons are accepted.
func (s *BackupService) Import(data []byte) (ImportResult, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return ImportResult{}, &models.ParseError{Source: "import", Err: errors.New("document must be a JSON object")}
	}

	var doc models.ImportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ImportResult{}, &models.ParseError{Source: "import", Err: err}
	}

	var result ImportResult
	if doc.Personnel != nil {
		s.store.People.ReplaceAll(*doc.Personnel)
		result.PersonnelReplaced = true
		result.Personnel = len(*doc.Personnel)
	}
	if doc.Leaves != nil {
		s.store.Leaves.ReplaceAll(*doc.Leaves)
		result.LeavesReplaced = true
		result.Leaves = len(*doc.Leaves)
	}
	if !result.PersonnelReplaced && !result.LeavesReplaced {
		return result, nil
	}
	s.store.Persist("import")

	s.store.logger.WithFields(logrus.Fields{
		"personnel_replaced": result.PersonnelReplaced,
		"leaves_replaced":    result.LeavesReplaced,
		"personnel":          result.Personnel,
		"leaves":             result.Leaves,
	}).Info("Data imported")

	return result, nil
}

// Clear wipes both collections. Confirmation is up to the caller.
func (s *BackupService) Clear() {
	s.store.People.ReplaceAll(nil)
	s.store.Leaves.ReplaceAll(nil)
	s.store.Persist("clear")

	s.store.logger.Warn("All data cleared")
}
