package global

import (
	"github.com/go-redis/redis"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Process-wide infrastructure handles, populated once by config.InitConfig.
// Logger starts as a production logger so early startup failures are still
// reported. RedisDB and the Rabbit handles stay nil when their address is not configured.
var (
	Logger        = zap.Must(zap.NewProduction())
	RedisDB       *redis.Client
	RabbitConn    *amqp.Connection
	RabbitChannel *amqp.Channel
)
