package produce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ThumbnailExchange            = "thumbnail.exchange"
	ThumbnailGeneratedQueue      = "thumbnail.generated"
	ThumbnailGeneratedRoutingKey = "thumbnail.generated"
)

// ThumbnailGeneratedMessage is published after a generation request fully
// succeeds (object stored and metadata row inserted).
type ThumbnailGeneratedMessage struct {
	ThumbnailID string `json:"thumbnail_id"`
	UserID      string `json:"user_id"`
	Bucket      string `json:"bucket"`
	StoragePath string `json:"storage_path"`
	MimeType    string `json:"mime_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Model       string `json:"model"`
	Timestamp   int64  `json:"timestamp"`
}

type ThumbnailProduceService struct {
	channel *amqp.Channel
}

func InitThumbnailProduceService(channel *amqp.Channel) *ThumbnailProduceService {
	service := &ThumbnailProduceService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		ThumbnailExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Thumbnail exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		ThumbnailGeneratedQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare Thumbnail generated queue: " + err.Error())
	}

	err = channel.QueueBind(
		ThumbnailGeneratedQueue,
		ThumbnailGeneratedRoutingKey,
		ThumbnailExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Thumbnail generated queue: " + err.Error())
	}

	return service
}

func (s *ThumbnailProduceService) PublishThumbnailGenerated(ctx context.Context, msg ThumbnailGeneratedMessage) error {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().Unix()
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal thumbnail message: %w", err)
	}

	err = s.channel.PublishWithContext(ctx,
		ThumbnailExchange,
		ThumbnailGeneratedRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish thumbnail message: %w", err)
	}

	return nil
}
