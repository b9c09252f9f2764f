// Package notify holds outbound notification adapters.
package notify

import (
	"context"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
)

// Noop discards notifications. Used when no broker is configured.
type Noop struct{}

var _ portssvc.Notifier = Noop{}

// Notify does nothing and always succeeds.
func (Noop) Notify(ctx context.Context, _ domain.Notification) error {
	return nil
}
