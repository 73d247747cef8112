// AngelaMos | 2026
// kafka_test.go

package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/gym-membership/internal/events"
)

func TestKafkaPublisherSendsJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got events.Event
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.Type != events.TypeCheckedIn || got.Key != "member-1" {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	pub := events.NewKafkaPublisherWithProducer(producer, "gym.")

	err := pub.Publish(context.Background(), events.TopicAttendance, events.Event{
		Type:       events.TypeCheckedIn,
		Key:        "member-1",
		OccurredAt: time.Now(),
		Data:       events.CheckedIn{AttendanceID: "a-1", MemberID: "member-1"},
	})
	require.NoError(t, err)
	require.NoError(t, pub.Close())
}

func TestKafkaPublisherReturnsSendError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := events.NewKafkaPublisherWithProducer(producer, "gym.")

	err := pub.Publish(context.Background(), events.TopicPayments, events.Event{
		Type: events.TypePaymentRecorded,
		Key:  "member-2",
	})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestEmitSwallowsErrors(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := events.NewKafkaPublisherWithProducer(producer, "")

	assert.NotPanics(t, func() {
		events.Emit(context.Background(), pub, events.TopicMembership, events.Event{
			Type: events.TypeMembershipExtended,
		})
		events.Emit(context.Background(), nil, events.TopicMembership, events.Event{})
	})
	require.NoError(t, pub.Close())
}

func TestNopPublisher(t *testing.T) {
	pub := events.Nop()
	assert.NoError(t, pub.Publish(context.Background(), events.TopicPayments, events.Event{}))
	assert.NoError(t, pub.Close())
}
