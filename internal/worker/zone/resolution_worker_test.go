package zone_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/pkg/errors"
	"github.com/delivery-zones/internal/worker/zone"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockOrderResolver is a mock of OrderResolver
type MockOrderResolver struct {
	mock.Mock
}

func (m *MockOrderResolver) ResolveOrder(ctx context.Context, event *domain.ZoneResolveEvent) (*domain.ZoneResolvedEvent, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ZoneResolvedEvent), args.Error(1)
}

const group = "zone-resolution-workers"

func message(t *testing.T, id string, event domain.ZoneResolveEvent) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

func TestResolutionWorker_Name(t *testing.T) {
	w := zone.NewResolutionWorker(&MockStreamRepository{}, &MockOrderResolver{}, group, 3, time.Second, zap.NewNop())
	assert.Equal(t, "zone-resolution", w.Name())
	assert.Equal(t, group, w.ConsumerGroup())
}

func TestResolutionWorker_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("empty queue", func(t *testing.T) {
		stream := &MockStreamRepository{}
		stream.On("ConsumeBatch", ctx, domain.StreamZoneResolve, group, mock.Anything, 20).Return(nil, nil)

		w := zone.NewResolutionWorker(stream, &MockOrderResolver{}, group, 3, time.Second, zap.NewNop())
		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, processed)
		stream.AssertNotCalled(t, "AckMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("resolves, publishes and acks", func(t *testing.T) {
		orderID := uuid.New()
		msg := message(t, "1-0", domain.ZoneResolveEvent{
			OrderID:   orderID,
			Latitude:  ptrFloat64(55.80),
			Longitude: ptrFloat64(49.13),
		})
		resolved := &domain.ZoneResolvedEvent{
			OrderID: orderID,
			Matched: true,
			Zone:    &domain.ResolvedZone{Name: "Центр", Priority: 1, MinOrder: 1000},
		}

		stream := &MockStreamRepository{}
		resolver := &MockOrderResolver{}
		stream.On("ConsumeBatch", ctx, domain.StreamZoneResolve, group, mock.Anything, 20).
			Return([]domain.StreamMessage{msg}, nil)
		resolver.On("ResolveOrder", mock.Anything, mock.MatchedBy(func(e *domain.ZoneResolveEvent) bool {
			return e.OrderID == orderID
		})).Return(resolved, nil)
		stream.On("PublishToStream", ctx, domain.StreamZoneResolved, resolved).Return(nil)
		stream.On("AckMessages", ctx, domain.StreamZoneResolve, group, []string{"1-0"}).Return(nil)

		w := zone.NewResolutionWorker(stream, resolver, group, 3, time.Second, zap.NewNop())
		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		stream.AssertExpectations(t)
		resolver.AssertExpectations(t)
	})

	t.Run("malformed messages are acked without resolving", func(t *testing.T) {
		stream := &MockStreamRepository{}
		resolver := &MockOrderResolver{}
		stream.On("ConsumeBatch", ctx, domain.StreamZoneResolve, group, mock.Anything, 20).
			Return([]domain.StreamMessage{
				{ID: "1-0", Data: "not json"},
				{ID: "2-0", Data: ""},
				message(t, "3-0", domain.ZoneResolveEvent{OrderID: uuid.New()}),
			}, nil)
		stream.On("AckMessages", ctx, domain.StreamZoneResolve, group, []string{"1-0", "2-0", "3-0"}).Return(nil)

		w := zone.NewResolutionWorker(stream, resolver, group, 3, time.Second, zap.NewNop())
		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 3, processed)
		resolver.AssertNotCalled(t, "ResolveOrder", mock.Anything, mock.Anything)
		stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("transient error is retried", func(t *testing.T) {
		orderID := uuid.New()
		msg := message(t, "1-0", domain.ZoneResolveEvent{OrderID: orderID, Address: ptrString("Баумана 10")})
		resolved := &domain.ZoneResolvedEvent{OrderID: orderID, Matched: true}

		stream := &MockStreamRepository{}
		resolver := &MockOrderResolver{}
		stream.On("ConsumeBatch", ctx, domain.StreamZoneResolve, group, mock.Anything, 20).
			Return([]domain.StreamMessage{msg}, nil)
		resolver.On("ResolveOrder", mock.Anything, mock.Anything).Return(nil, errors.ErrGeocoderUnavailable).Once()
		resolver.On("ResolveOrder", mock.Anything, mock.Anything).Return(resolved, nil).Once()
		stream.On("PublishToStream", ctx, domain.StreamZoneResolved, resolved).Return(nil)
		stream.On("AckMessages", ctx, domain.StreamZoneResolve, group, []string{"1-0"}).Return(nil)

		w := zone.NewResolutionWorker(stream, resolver, group, 2, time.Second, zap.NewNop())
		_, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		resolver.AssertNumberOfCalls(t, "ResolveOrder", 2)
		stream.AssertExpectations(t)
	})

	t.Run("exhausted retries publish error code", func(t *testing.T) {
		orderID := uuid.New()
		msg := message(t, "1-0", domain.ZoneResolveEvent{OrderID: orderID, Latitude: ptrFloat64(1), Longitude: ptrFloat64(1)})

		stream := &MockStreamRepository{}
		resolver := &MockOrderResolver{}
		stream.On("ConsumeBatch", ctx, domain.StreamZoneResolve, group, mock.Anything, 20).
			Return([]domain.StreamMessage{msg}, nil)
		resolver.On("ResolveOrder", mock.Anything, mock.Anything).Return(nil, errors.ErrCatalogNotLoaded)
		stream.On("PublishToStream", ctx, domain.StreamZoneResolved, mock.MatchedBy(func(e *domain.ZoneResolvedEvent) bool {
			return e.OrderID == orderID && e.Error == errors.ErrCatalogNotLoaded.Code && !e.Matched
		})).Return(nil)
		stream.On("AckMessages", ctx, domain.StreamZoneResolve, group, []string{"1-0"}).Return(nil)

		w := zone.NewResolutionWorker(stream, resolver, group, 1, time.Second, zap.NewNop())
		_, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		stream.AssertExpectations(t)
	})

	t.Run("publish failure leaves message pending", func(t *testing.T) {
		orderID := uuid.New()
		msg := message(t, "1-0", domain.ZoneResolveEvent{OrderID: orderID, Latitude: ptrFloat64(1), Longitude: ptrFloat64(1)})
		resolved := &domain.ZoneResolvedEvent{OrderID: orderID}

		stream := &MockStreamRepository{}
		resolver := &MockOrderResolver{}
		stream.On("ConsumeBatch", ctx, domain.StreamZoneResolve, group, mock.Anything, 20).
			Return([]domain.StreamMessage{msg}, nil)
		resolver.On("ResolveOrder", mock.Anything, mock.Anything).Return(resolved, nil)
		stream.On("PublishToStream", ctx, domain.StreamZoneResolved, resolved).Return(assert.AnError)
		stream.On("AckMessages", ctx, domain.StreamZoneResolve, group, []string{}).Return(nil)

		w := zone.NewResolutionWorker(stream, resolver, group, 1, time.Second, zap.NewNop())
		_, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		stream.AssertExpectations(t)
	})

	t.Run("consume error", func(t *testing.T) {
		stream := &MockStreamRepository{}
		stream.On("ConsumeBatch", ctx, domain.StreamZoneResolve, group, mock.Anything, 20).Return(nil, assert.AnError)

		w := zone.NewResolutionWorker(stream, &MockOrderResolver{}, group, 1, time.Second, zap.NewNop())
		_, err := w.ProcessBatch(ctx)

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestResolutionWorker_StartStop(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamZoneResolve, group).Return(nil)
	stream.On("ConsumeBatch", mock.Anything, domain.StreamZoneResolve, group, mock.Anything, 20).Return(nil, nil)

	w := zone.NewResolutionWorker(stream, &MockOrderResolver{}, group, 1, time.Second, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
