package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/library-records/pkg/kafka"
)

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	fine := 5.0
	event := kafka.BorrowEvent{
		EventID:    "6f1c2b2e-1d9a-4a53-9a4e-3a4f0e1b7c11",
		EventType:  kafka.EventReturned,
		RecordID:   7,
		UserID:     1,
		BookID:     2,
		DueDate:    "2024-03-01",
		FineAmount: &fine,
		Timestamp:  time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC),
	}
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got kafka.BorrowEvent
		if err := jsoniter.Unmarshal(val, &got); err != nil {
			return err
		}
		require.Equal(t, event, got)
		return nil
	})

	p := kafka.NewPublisher(producer, "")
	require.NoError(t, p.Publish(context.Background(), event))
	require.NoError(t, p.Close())
}

func TestPublisher_PublishFailure(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := kafka.NewPublisher(producer, kafka.BorrowTopic)
	err := p.Publish(context.Background(), kafka.BorrowEvent{EventType: kafka.EventBorrowed, RecordID: 1})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestNopPublisher(t *testing.T) {
	t.Parallel()
	p := kafka.NewNopPublisher()
	require.NoError(t, p.Publish(context.Background(), kafka.BorrowEvent{}))
	require.NoError(t, p.Close())
}
