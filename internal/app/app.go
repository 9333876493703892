// Package app wires storage, repositories and services from a Config.
package app

import (
	"fmt"
	"team-tracker/internal/config"
	"team-tracker/internal/metrics"
	"team-tracker/internal/repository"
	"team-tracker/internal/service"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type App struct {
	Slots     repository.SlotRepository
	Store     *service.Store
	Roster    *service.RosterService
	Ledger    *service.LedgerService
	Dashboard *service.DashboardService
	Backup    *service.BackupService
	Reports   *service.ReportService
}

// New opens the configured slot backend and builds the services. Call Start
// before serving any front end.
func New(cfg *config.Config) (*App, error) {
	slots, err := OpenSlots(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithSlots(cfg, slots, time.Now), nil
}

// NewWithSlots builds the services over an already opened slot store.
func NewWithSlots(cfg *config.Config, slots repository.SlotRepository, now func() time.Time) *App {
	engine := service.NewStatusEngine(service.StatusPolicy(cfg.StatusPolicy), cfg.Location, now)
	recorder := metrics.NewRecorder(cfg.MetricsTextfile)

	store := service.NewStore(
		repository.NewSlotPersonRepository(slots),
		repository.NewSlotLeaveRepository(slots),
		engine,
		recorder,
	)
	store.SetLogLevel(cfg.LogLevel)
	ledger := service.NewLedgerService(store)

	return &App{
		Slots:     slots,
		Store:     store,
		Roster:    service.NewRosterService(store),
		Ledger:    ledger,
		Dashboard: service.NewDashboardService(store, ledger),
		Backup:    service.NewBackupService(store),
		Reports:   service.NewReportService(store, now),
	}
}

// Start loads both collections and runs the one-time expiry sweep.
func (a *App) Start() error {
	parseErrs, err := a.Store.Load()
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	for _, parseErr := range parseErrs {
		logrus.WithError(parseErr).Warn("Ignored corrupted persisted data")
	}
	return nil
}

func (a *App) Close() error {
	return a.Slots.Close()
}

// OpenSlots opens the slot backend named by cfg.StorageBackend.
func OpenSlots(cfg *config.Config) (repository.SlotRepository, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		breaker := config.NewCircuitBreaker("Redis-Slots", 30*time.Second)
		slots, err := repository.NewRedisSlotRepository(rdb, cfg.RedisKeyPrefix, breaker)
		if err != nil {
			rdb.Close()
			return nil, err
		}
		slots.SetLogLevel(cfg.LogLevel)
		return slots, nil
	default:
		db, err := OpenSQLite(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		slots, err := repository.NewGormSlotRepository(db)
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
			return nil, err
		}
		slots.SetLogLevel(cfg.LogLevel)
		return slots, nil
	}
}

// OpenSQLite opens a SQLite database with gorm, quiet unless something fails.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	return db, nil
}
