// Package ticket is the boundary to the ticket generation and
// delivery system (PDF rendering, email). The core only depends on
// the Dispatcher contract; a send failure degrades the operation, it
// never rolls it back.
package ticket

import (
	"context"

	"agcf-voyage/internal/data/entity"

	"go.uber.org/zap"
)

type Kind string

const (
	KindConfirmation Kind = "confirmation"
	KindModification Kind = "modification"
	KindDelay        Kind = "delay"
)

type Dispatcher interface {
	GenerateAndSend(ctx context.Context, res *entity.Reservation, kind Kind) error
}

// LogDispatcher records the dispatch instead of rendering and mailing
// a ticket. Stands in until the delivery pipeline is plugged.
type LogDispatcher struct {
	log *zap.Logger
}

func NewLogDispatcher(log *zap.Logger) *LogDispatcher {
	return &LogDispatcher{log: log.With(zap.String("dispatcher", "log"))}
}

func (d *LogDispatcher) GenerateAndSend(ctx context.Context, res *entity.Reservation, kind Kind) error {
	d.log.Info("Ticket dispatched",
		zap.String("kind", string(kind)),
		zap.String("code", res.Code),
		zap.String("email", res.UserEmail),
		zap.String("total", res.TotalPrice.StringFixed(2)),
	)
	return nil
}
