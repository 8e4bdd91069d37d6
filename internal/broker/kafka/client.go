package kafka

import (
	"context"
	"errors"

	"photo-watermarker/internal/config"

	"github.com/segmentio/kafka-go"
	"github.com/wb-go/wbf/retry"
)

// KafkaClient is the worker side of the transport: it consumes the jobs topic
// and publishes to the results topic.
type KafkaClient struct {
	producerClient *ProducerClient
	consumerClient *ConsumerClient
}

func NewKafkaClient(cfg *config.Config) *KafkaClient {
	return &KafkaClient{
		producerClient: NewProducerClient(cfg.Kafka.Brokers, cfg.Kafka.ResultTopic),
		consumerClient: NewConsumerClient(cfg.Kafka.Brokers, cfg.Kafka.JobsTopic, cfg.Kafka.GroupID),
	}
}

// NewJobsProducer publishes to the jobs topic.
func NewJobsProducer(cfg *config.Config) *ProducerClient {
	return NewProducerClient(cfg.Kafka.Brokers, cfg.Kafka.JobsTopic)
}

func (k *KafkaClient) Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error {
	return k.producerClient.Send(ctx, strategy, key, value)
}

func (k *KafkaClient) Commit(ctx context.Context, msg kafka.Message) error {
	return k.consumerClient.Commit(ctx, msg)
}

func (k *KafkaClient) StartConsuming(ctx context.Context, out chan<- kafka.Message, strategy retry.Strategy) {
	k.consumerClient.StartConsuming(ctx, out, strategy)
}

func (k *KafkaClient) Close() error {
	var errs []error

	if k.producerClient != nil {
		if err := k.producerClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if k.consumerClient != nil {
		if err := k.consumerClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
