package zone

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/domain/repository"
	"github.com/delivery-zones/internal/pkg/errors"
	"github.com/delivery-zones/internal/worker"
)

const (
	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second            // пауза после ошибки чтения
	retryBackoff    = 200 * time.Millisecond // шаг паузы между повторами
)

// OrderResolver - определение зоны для заказа из стрима
type OrderResolver interface {
	ResolveOrder(ctx context.Context, event *domain.ZoneResolveEvent) (*domain.ZoneResolvedEvent, error)
}

// ResolutionWorker читает stream:zone:resolve и публикует результаты в stream:zone:resolved
type ResolutionWorker struct {
	*worker.BaseWorker
	streamRepo     repository.StreamRepository
	resolver       OrderResolver
	consumerName   string
	maxRetries     int
	processTimeout time.Duration
}

// NewResolutionWorker создает новый ResolutionWorker
func NewResolutionWorker(
	streamRepo repository.StreamRepository,
	resolver OrderResolver,
	consumerGroup string,
	maxRetries int,
	processTimeout time.Duration,
	logger *zap.Logger,
) *ResolutionWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &ResolutionWorker{
		BaseWorker:     worker.NewBaseWorker("zone-resolution", consumerGroup, logger),
		streamRepo:     streamRepo,
		resolver:       resolver,
		consumerName:   consumerName,
		maxRetries:     maxRetries,
		processTimeout: processTimeout,
	}
}

// Start запускает основной цикл чтения батчей
func (w *ResolutionWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting zone resolution worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamZoneResolve, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.ProcessBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.Pause(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.Pause(ctx, emptyQueueSleep)
			}
		}
	}
}

// ProcessBatch читает и обрабатывает один батч.
// Возвращает количество прочитанных сообщений.
func (w *ResolutionWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamZoneResolve,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	ackIDs := make([]string, 0, len(messages))
	failed := 0

	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		result := w.resolve(ctx, event)
		if result.Error != "" {
			failed++
		}

		if err := w.streamRepo.PublishToStream(ctx, domain.StreamZoneResolved, result); err != nil {
			// Без ACK сообщение останется в pending и будет видно в XPENDING
			logger.Error("Failed to publish resolved event",
				zap.String("order_id", event.OrderID.String()),
				zap.Error(err))
			continue
		}

		ackIDs = append(ackIDs, msg.ID)
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamZoneResolve, w.ConsumerGroup(), ackIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Info("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("acked", len(ackIDs)),
		zap.Int("failed", failed))

	return len(messages), nil
}

// resolve вызывает resolver с повторами на временных ошибках.
// После исчерпания попыток код ошибки уходит в событие.
func (w *ResolutionWorker) resolve(ctx context.Context, event *domain.ZoneResolveEvent) *domain.ZoneResolvedEvent {
	var lastErr error

	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		result, err := w.resolveOnce(ctx, event)
		if err == nil {
			return result
		}
		lastErr = err

		w.Logger().Warn("Zone resolution failed",
			zap.String("order_id", event.OrderID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < w.maxRetries && !w.Pause(ctx, time.Duration(attempt)*retryBackoff) {
			break
		}
	}

	return &domain.ZoneResolvedEvent{
		OrderID: event.OrderID,
		Error:   errorCode(lastErr),
	}
}

func (w *ResolutionWorker) resolveOnce(ctx context.Context, event *domain.ZoneResolveEvent) (*domain.ZoneResolvedEvent, error) {
	if w.processTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.processTimeout)
		defer cancel()
	}
	return w.resolver.ResolveOrder(ctx, event)
}

// parseMessage парсит сообщение из стрима в ZoneResolveEvent
func parseMessage(msg domain.StreamMessage) (*domain.ZoneResolveEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var event domain.ZoneResolveEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.OrderID == uuid.Nil {
		return nil, fmt.Errorf("order_id is required")
	}
	if !event.HasCoordinates() && !event.HasAddress() {
		return nil, fmt.Errorf("event has neither coordinates nor address")
	}

	return &event, nil
}

func errorCode(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return errors.ErrInternalServer.Code
}
