package infra

import (
	"fmt"
	"log"

	"github.com/haneulab/thumbsmith-api/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQClient struct {
	Connection *amqp.Connection
	Channel    *amqp.Channel
}

// InitRabbitMQClient returns nil when RabbitMQ is not configured; event
// publishing is skipped in that case.
func InitRabbitMQClient(cfg *config.EnvConfig) *RabbitMQClient {
	if cfg.RabbitMQ.Host == "" {
		log.Println("RabbitMQ not configured, thumbnail events disabled")
		return nil
	}

	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQ.Username,
		cfg.RabbitMQ.Password,
		cfg.RabbitMQ.Host,
		cfg.RabbitMQ.Port,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("RabbitMQ connection failed, continuing without events: %v", err)
		return nil
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		log.Printf("RabbitMQ channel failed, continuing without events: %v", err)
		return nil
	}

	log.Println("Connected to RabbitMQ:", cfg.RabbitMQ.Host+":"+cfg.RabbitMQ.Port)

	return &RabbitMQClient{
		Connection: conn,
		Channel:    channel,
	}
}

func (r *RabbitMQClient) Close() {
	if r.Channel != nil {
		_ = r.Channel.Close()
	}
	if r.Connection != nil {
		_ = r.Connection.Close()
	}
}
