package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publisherFunc func(ctx context.Context, event EntityChanged) error

func (f publisherFunc) Publish(ctx context.Context, event EntityChanged) error {
	return f(ctx, event)
}

func TestNewEntityChanged(t *testing.T) {
	event := NewEntityChanged("sales rep", ActionCreated, 9)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "sales_rep.created", event.EventType)
	assert.Equal(t, int64(9), event.EntityID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestMultiAttemptsEveryPublisher(t *testing.T) {
	var seen []string
	failing := publisherFunc(func(context.Context, EntityChanged) error {
		seen = append(seen, "failing")
		return errors.New("broker down")
	})
	recording := publisherFunc(func(_ context.Context, e EntityChanged) error {
		seen = append(seen, e.EventType)
		return nil
	})

	err := Multi(failing, nil, recording).Publish(context.Background(), NewEntityChanged("store", ActionDeleted, 1))

	assert.EqualError(t, err, "broker down")
	assert.Equal(t, []string{"failing", "store.deleted"}, seen)
}

func TestKafkaPublisherSendsJSONEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var event EntityChanged
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.EventType != "customer.updated" || event.EntityID != 12 {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	publisher := newKafkaPublisher(producer, "")
	assert.Equal(t, DefaultTopic, publisher.topic)

	require.NoError(t, publisher.Publish(context.Background(), NewEntityChanged("customer", ActionUpdated, 12)))
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisherReportsSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := newKafkaPublisher(producer, "changes")
	err := publisher.Publish(context.Background(), NewEntityChanged("debt", ActionCreated, 3))

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestConsumerDispatchesDecodedEvent(t *testing.T) {
	var got []EntityChanged
	handler := &consumerGroupHandler{sink: publisherFunc(func(_ context.Context, e EntityChanged) error {
		got = append(got, e)
		return nil
	})}

	body, err := json.Marshal(NewEntityChanged("product", ActionUpdated, 4))
	require.NoError(t, err)

	err = handler.handleMessage(context.Background(), &sarama.ConsumerMessage{
		Topic: DefaultTopic,
		Value: body,
		Headers: []*sarama.RecordHeader{
			{Key: []byte("traceparent"), Value: []byte("00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")},
		},
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "product.updated", got[0].EventType)
	assert.Equal(t, int64(4), got[0].EntityID)
}

func TestConsumerSkipsMalformedMessage(t *testing.T) {
	called := false
	handler := &consumerGroupHandler{sink: publisherFunc(func(context.Context, EntityChanged) error {
		called = true
		return nil
	})}

	err := handler.handleMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte("{not json")})

	assert.Error(t, err)
	assert.False(t, called)
}
