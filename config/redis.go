package config

import (
	"github.com/go-redis/redis"
	"go.uber.org/zap"

	"virtualta/global"
)

func initRedis() {
	addr := AppConfig.Redis.Addr
	if addr == "" {
		global.Logger.Info("redis addr empty, answer cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       AppConfig.Redis.DB,
		Password: AppConfig.Redis.Password,
	})

	if _, err := client.Ping().Result(); err != nil {
		global.Logger.Fatal("Failed to connect to Redis", zap.String("addr", addr), zap.Error(err))
	}

	global.RedisDB = client
	global.Logger.Info("Redis initialized", zap.String("addr", addr))
}
