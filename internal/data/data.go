package data

import (
	"context"
	"time"

	"shortlink/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(NewData, NewRedisLinkStore)

// Data holds the shared backing-store handles.
type Data struct {
	rdb *redis.Client
}

// NewData connects to Redis and verifies the connection.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	rdb := redis.NewClient(&redis.Options{
		Addr:         c.Redis.Addr,
		Password:     c.Redis.Password,
		DB:           c.Redis.DB,
		DialTimeout:  c.Redis.DialTimeout.AsDuration(),
		ReadTimeout:  c.Redis.ReadTimeout.AsDuration(),
		WriteTimeout: c.Redis.WriteTimeout.AsDuration(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	d := &Data{
		rdb: rdb,
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		if err := d.rdb.Close(); err != nil {
			helper.Error(err)
		}
	}

	return d, cleanup, nil
}

// Redis returns the underlying Redis client.
func (d *Data) Redis() *redis.Client {
	return d.rdb
}
