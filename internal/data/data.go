package data

import (
	"context"

	"randkit/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewReportSink,
	NewRunIDGenerator,
)

// Data 可选的存储连接，未配置或连接失败时对应字段为 nil
type Data struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewData .
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(log.With(logger, "module", "data"))
	d := &Data{}

	if src := c.GetDatabase().GetSource(); src != "" {
		db, err := gorm.Open(postgres.Open(src), &gorm.Config{})
		if err != nil {
			helper.Warnf("failed to open database: %v, postgres sink disabled", err)
		} else {
			d.db = db
			helper.Info("database connection established")
		}
	}

	if addr := c.GetRedis().GetAddr(); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     c.GetRedis().GetPassword(),
			DB:           int(c.GetRedis().GetDb()),
			ReadTimeout:  c.GetRedis().GetReadTimeout().AsDuration(),
			WriteTimeout: c.GetRedis().GetWriteTimeout().AsDuration(),
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			helper.Warnf("failed to connect to redis: %v, redis sink disabled", err)
			rdb.Close()
		} else {
			d.redis = rdb
			helper.Info("redis client initialized")
		}
	}

	cleanup := func() {
		if d.db != nil {
			sqlDB, err := d.db.DB()
			if err != nil {
				helper.Errorf("failed to obtain sql.DB from gorm: %v", err)
			} else if err := sqlDB.Close(); err != nil {
				helper.Errorf("failed to close database: %v", err)
			} else {
				helper.Info("database connection closed")
			}
		}
		if d.redis != nil {
			if err := d.redis.Close(); err != nil {
				helper.Errorf("failed to close redis: %v", err)
				return
			}
			helper.Info("redis connection closed")
		}
	}

	return d, cleanup, nil
}
