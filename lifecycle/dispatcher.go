package lifecycle

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// Event names a lifecycle hook as the host platform dispatches it.
type Event string

const (
	// EventActivate fires when the plugin is activated on the network.
	EventActivate Event = "activate"

	// EventInitialize fires on every request bootstrap.
	EventInitialize Event = "init"

	// EventSwitchSite fires when the host switches the active site.
	EventSwitchSite Event = "switch_site"

	// EventSiteDeleted fires when a site is permanently removed.
	EventSiteDeleted Event = "site_deleted"

	// EventAdminEntered fires on entry into the admin area.
	EventAdminEntered Event = "admin_entered"
)

// ErrUnknownEvent indicates a dispatch for an event name no hook handles.
var ErrUnknownEvent = errors.New("unknown lifecycle event")

// Dispatcher routes named host events to the Manager's hooks. Each
// dispatch is tagged with a generated correlation ID so a hook's log
// lines can be tied back to the event that caused them.
type Dispatcher struct {
	manager *Manager
	logger  *slog.Logger
}

// NewDispatcher creates a Dispatcher around the manager. A nil logger
// disables dispatch logging.
func NewDispatcher(manager *Manager, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{manager: manager, logger: logger}
}

// Dispatch invokes the hook for event. siteID is consumed by the
// site-scoped events and ignored by the rest.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event, siteID int64) error {
	logger := d.logger.With("event", string(event), "dispatch_id", uuid.NewString())
	logger.DebugContext(ctx, "dispatching lifecycle event")

	var err error
	switch event {
	case EventActivate:
		_, err = d.manager.OnActivate(ctx)
	case EventInitialize:
		d.manager.OnInitialize(ctx)
	case EventSwitchSite:
		err = d.manager.OnSwitchSite(ctx, siteID)
	case EventSiteDeleted:
		_, err = d.manager.OnSiteDeleted(ctx, siteID)
	case EventAdminEntered:
		_, err = d.manager.OnAdminEntered(ctx)
	default:
		return ErrUnknownEvent
	}

	if err != nil {
		logger.ErrorContext(ctx, "lifecycle event failed", "error", err)
		return err
	}
	return nil
}
