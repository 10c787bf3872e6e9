package redis

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/medibook/medibook-api/logger"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	if _, err := Client.Ping(Ctx).Result(); err != nil {
		logger.Log.Fatal("failed to connect to redis", zap.Error(err))
	}
	logger.Log.Info("connected to redis")
}
