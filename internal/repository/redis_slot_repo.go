package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const redisCallTimeout = 5 * time.Second

// RedisSlotRepository keeps slots under "<prefix><key>". Every call goes
// through the circuit breaker.
type RedisSlotRepository struct {
	rdb     *goredis.Client
	prefix  string
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

type redisGetResult struct {
	value []byte
	found bool
}

func NewRedisSlotRepository(rdb *goredis.Client, prefix string, breaker *gobreaker.CircuitBreaker) (*RedisSlotRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.GetLevel())

	ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.WithField("addr", rdb.Options().Addr).Info("Redis slot repository initialized")

	return &RedisSlotRepository{
		rdb:     rdb,
		prefix:  prefix,
		breaker: breaker,
		logger:  logger,
	}, nil
}

func (r *RedisSlotRepository) SetLogLevel(level logrus.Level) {
	r.logger.SetLevel(level)
}

func (r *RedisSlotRepository) Get(key string) ([]byte, bool, error) {
	res, err := r.breaker.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
		defer cancel()

		value, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return redisGetResult{}, nil
		}
		if err != nil {
			return nil, err
		}
		return redisGetResult{value: value, found: true}, nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Error("Failed to read slot")
		return nil, false, err
	}

	got := res.(redisGetResult)
	return got.value, got.found, nil
}

func (r *RedisSlotRepository) Put(key string, value []byte) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
		defer cancel()
		return nil, r.rdb.Set(ctx, r.prefix+key, value, 0).Err()
	})
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Error("Failed to write slot")
	}
	return err
}

func (r *RedisSlotRepository) Close() error {
	return r.rdb.Close()
}
