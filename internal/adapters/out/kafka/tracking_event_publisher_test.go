package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/tracking"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestTrackingEventPublisher_Publish(t *testing.T) {
	tid := kernel.AllocateTrackingID()
	at := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	first, err := tracking.NewEvent(kernel.NewUUID(), tid, "pending-pickup", tracking.DetailPaymentSuccessful, at)
	require.NoError(t, err)
	second, err := tracking.NewEvent(kernel.NewUUID(), tid, "delivery-assigned", tracking.DetailRiderAssigned, at.Add(time.Minute))
	require.NoError(t, err)

	t.Run("one keyed message per event", func(t *testing.T) {
		writer := &fakeWriter{}
		publisher := &TrackingEventPublisher{writer: writer}

		require.NoError(t, publisher.Publish(context.Background(), first, second))

		require.Len(t, writer.msgs, 2)
		assert.Equal(t, tid.String(), string(writer.msgs[0].Key))
		assert.Equal(t, at, writer.msgs[0].Time)

		var decoded TrackingEventMessage
		require.NoError(t, json.Unmarshal(writer.msgs[1].Value, &decoded))
		assert.Equal(t, second.ID().String(), decoded.ID)
		assert.Equal(t, "delivery-assigned", decoded.Status)
		assert.Equal(t, "Driver-assigned", decoded.Detail)
		assert.Equal(t, tid.String(), decoded.TrackingID)
	})

	t.Run("nothing to publish", func(t *testing.T) {
		writer := &fakeWriter{err: errors.New("must not be called")}
		publisher := &TrackingEventPublisher{writer: writer}

		require.NoError(t, publisher.Publish(context.Background()))
	})

	t.Run("writer error is returned", func(t *testing.T) {
		writer := &fakeWriter{err: errors.New("leader not available")}
		publisher := &TrackingEventPublisher{writer: writer}

		err := publisher.Publish(context.Background(), first)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "leader not available")
	})

	t.Run("close", func(t *testing.T) {
		writer := &fakeWriter{}
		require.NoError(t, (&TrackingEventPublisher{writer: writer}).Close())
		assert.True(t, writer.closed)
	})
}
