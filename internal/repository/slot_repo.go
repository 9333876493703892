package repository

import (
	"errors"
	"team-tracker/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotRepository is the local key/value store. Each slot holds one JSON document.
type SlotRepository interface {
	// Get returns the slot value; found is false when the slot was never written.
	Get(key string) (value []byte, found bool, err error)
	Put(key string, value []byte) error
	Close() error
}

type GormSlotRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormSlotRepository(db *gorm.DB) (*GormSlotRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.GetLevel())

	if err := db.AutoMigrate(&models.Slot{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate kv_slots table")
		return nil, err
	}

	logger.Debug("Slot repository initialized")

	return &GormSlotRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormSlotRepository) SetLogLevel(level logrus.Level) {
	r.logger.SetLevel(level)
}

func (r *GormSlotRepository) Get(key string) ([]byte, bool, error) {
	var slot models.Slot
	result := r.db.Where("key = ?", key).First(&slot)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("key", key).Debug("Slot not found")
		return nil, false, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("key", key).Error("Failed to read slot")
		return nil, false, result.Error
	}

	return []byte(slot.Value), true, nil
}

func (r *GormSlotRepository) Put(key string, value []byte) error {
	slot := models.Slot{Key: key, Value: string(value)}

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot)

	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("key", key).Error("Failed to write slot")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"key":   key,
		"bytes": len(value),
	}).Debug("Slot written")

	return nil
}

func (r *GormSlotRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
