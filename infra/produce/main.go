package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	ThumbnailService *ThumbnailProduceService
}

var produceInstance *Produce

// InitProduce returns nil when no channel is available; publishing is then a
// no-op from the caller's point of view.
func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}
	if channel == nil {
		return nil
	}

	thumbnailService := InitThumbnailProduceService(channel)
	if thumbnailService == nil {
		panic("Failed to initialize Thumbnail produce service")
	}

	produceInstance = &Produce{
		ThumbnailService: thumbnailService,
	}

	return produceInstance
}
