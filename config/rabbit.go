package config

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"virtualta/global"
)

func initRabbit() {
	url := AppConfig.RabbitMQ.Url
	if url == "" {
		global.Logger.Info("rabbitmq url empty, question events disabled")
		return
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		global.Logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}

	ch, err := conn.Channel()
	if err != nil {
		global.Logger.Fatal("Failed to open RabbitMQ channel", zap.Error(err))
	}

	qname := AppConfig.RabbitMQ.Queue
	if qname == "" {
		qname = "question.asked"
		AppConfig.RabbitMQ.Queue = qname
	}
	if _, err := ch.QueueDeclare(qname, true, false, false, false, nil); err != nil {
		global.Logger.Fatal("Failed to declare RabbitMQ queue", zap.String("queue", qname), zap.Error(err))
	}

	global.RabbitConn = conn
	global.RabbitChannel = ch
	global.Logger.Info("RabbitMQ initialized", zap.String("queue", qname))
}

// CloseRabbit releases the channel and connection opened by initRabbit.
func CloseRabbit() {
	if global.RabbitChannel != nil {
		_ = global.RabbitChannel.Close()
	}
	if global.RabbitConn != nil {
		_ = global.RabbitConn.Close()
	}
}
