package worker

import (
	"context"
)

// Worker - фоновый обработчик, управляемый WorkerManager
type Worker interface {
	// Start блокирует до остановки воркера или отмены контекста
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру о завершении, повторный вызов безопасен
	Stop() error

	// Name возвращает имя воркера
	Name() string
}
