package service

import (
	"team-tracker/internal/metrics"
	"team-tracker/internal/models"
	"team-tracker/internal/repository"

	"github.com/sirupsen/logrus"
)

// Store groups the two owned collections with the engine that keeps them
// consistent. Services share one Store.
type Store struct {
	People  repository.PersonRepository
	Leaves  repository.LeaveRepository
	Engine  *StatusEngine
	Metrics *metrics.Recorder
	logger  *logrus.Logger
}

func NewStore(
	people repository.PersonRepository,
	leaves repository.LeaveRepository,
	engine *StatusEngine,
	recorder *metrics.Recorder,
) *Store {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.GetLevel())

	return &Store{
		People:  people,
		Leaves:  leaves,
		Engine:  engine,
		Metrics: recorder,
		logger:  logger,
	}
}

// SetLogLevel applies level to the store and its engine.
func (s *Store) SetLogLevel(level logrus.Level) {
	s.logger.SetLevel(level)
	if s.Engine != nil {
		s.Engine.SetLogLevel(level)
	}
}

// Load reads both slots and runs the expiry sweep. A malformed slot loads as
// empty and is reported through the returned ParseError list; read failures
// of the backend are returned as err.
func (s *Store) Load() (parseErrs []error, err error) {
	for _, load := range []func() error{s.People.Load, s.Leaves.Load} {
		if loadErr := load(); loadErr != nil {
			if !models.IsParse(loadErr) {
				return nil, loadErr
			}
			s.logger.WithError(loadErr).Warn("Persisted data is corrupted, starting with an empty collection")
			parseErrs = append(parseErrs, loadErr)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"personnel": len(s.People.GetAll()),
		"leaves":    len(s.Leaves.GetAll()),
	}).Info("Data loaded")

	s.Sweep()
	return parseErrs, nil
}

// Sweep expires stale leave-driven statuses as of today. It persists only when
// a status changed, so a corrupted slot is not overwritten at startup.
func (s *Store) Sweep() []string {
	changed := s.Engine.SweepExpired(s.Engine.Today(), s.Leaves.GetAll(), s.People.GetAll())
	if len(changed) == 0 {
		s.refreshMetrics()
		return nil
	}

	s.logger.WithField("count", len(changed)).Info("Expired leaves returned persons to active")
	s.Metrics.AddSweepExpired(len(changed))
	s.Persist("sweep")

	return changed
}

// Persist writes both slots. A failed write is logged and counted but does not
// fail the operation: the in-memory state stays authoritative until the next
// successful write.
func (s *Store) Persist(op string) {
	if err := s.People.Save(); err != nil {
		s.logger.WithError(err).WithField("slot", models.SlotPersonnel).Warn("Failed to persist personnel")
		s.Metrics.IncPersistFailure(models.SlotPersonnel)
	}
	if err := s.Leaves.Save(); err != nil {
		s.logger.WithError(err).WithField("slot", models.SlotLeaves).Warn("Failed to persist leaves")
		s.Metrics.IncPersistFailure(models.SlotLeaves)
	}

	s.Metrics.IncMutation(op)
	s.refreshMetrics()
}

func (s *Store) refreshMetrics() {
	if s.Metrics == nil {
		return
	}

	counts := make(map[models.PersonStatus]int, len(models.Statuses))
	for _, person := range s.People.GetAll() {
		if !person.Archived {
			counts[person.Status]++
		}
	}
	for _, status := range models.Statuses {
		s.Metrics.SetPersonnel(string(status), counts[status])
	}
	s.Metrics.SetLeaves(len(s.Leaves.GetAll()))

	_ = s.Metrics.Flush()
}

// workingPerson resolves id to a non-archived person.
func (s *Store) workingPerson(id string) (*models.Person, bool) {
	if id == "" {
		return nil, false
	}
	person, err := s.People.GetByID(id)
	if err != nil || person.Archived {
		return nil, false
	}
	return person, true
}
