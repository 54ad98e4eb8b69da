package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSendsMessage(t *testing.T) {
	sync := mocks.NewSyncProducer(t, NewConfig("trio-test"))
	sync.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "booking.events.v1" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "bk-1" {
			return errors.New("unexpected key")
		}
		if len(msg.Headers) != 1 || string(msg.Headers[0].Key) != "content-type" {
			return errors.New("missing content-type header")
		}
		return nil
	})
	p := NewProducerFrom(sync)

	err := p.Publish(context.Background(), "booking.events.v1", "bk-1", []byte(`{}`), map[string]string{"content-type": "application/cloudevents+json"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublishReturnsBrokerError(t *testing.T) {
	sync := mocks.NewSyncProducer(t, NewConfig(""))
	sync.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)
	p := NewProducerFrom(sync)

	err := p.Publish(context.Background(), "t", "k", nil, nil)
	assert.ErrorIs(t, err, sarama.ErrNotLeaderForPartition)
	require.NoError(t, p.Close())
}

func TestPublishHonoursCancelledContext(t *testing.T) {
	sync := mocks.NewSyncProducer(t, NewConfig(""))
	p := NewProducerFrom(sync)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Publish(ctx, "t", "k", nil, nil), context.Canceled)
	require.NoError(t, p.Close())
}
