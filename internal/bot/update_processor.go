package bot

import (
	"context"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type (
	// UpdateProcessor passes every update through the enabled handlers in
	// order, stopping at the first handler that does not proceed.
	UpdateProcessor struct {
		updateHandlers []Handler
		maxAge         time.Duration
		now            func() time.Time
	}

	NamedHandler struct {
		Name    string
		Handler Handler
	}
)

// NewUpdateProcessor keeps the handlers named in enabled, in that order.
// Unknown names are logged and ignored. A positive maxAge drops older updates.
func NewUpdateProcessor(available []NamedHandler, enabled []string, maxAge time.Duration) *UpdateProcessor {
	byName := make(map[string]Handler, len(available))
	for _, nh := range available {
		byName[nh.Name] = nh.Handler
	}

	enabledHandlers := make([]Handler, 0, len(enabled))
	for _, handlerName := range enabled {
		handler, ok := byName[handlerName]
		if !ok || handler == nil {
			log.Warnf("no registered handler: %s", handlerName)
			continue
		}
		enabledHandlers = append(enabledHandlers, handler)
	}

	return &UpdateProcessor{
		updateHandlers: enabledHandlers,
		maxAge:         maxAge,
		now:            time.Now,
	}
}

func (up *UpdateProcessor) Process(ctx context.Context, u *api.Update) error {
	if u == nil {
		return errors.New("update is nil")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if up.maxAge > 0 {
		if updateTime, ok := updateTime(u); ok && up.now().Sub(updateTime) > up.maxAge {
			log.WithFields(log.Fields{
				"update_id":   u.UpdateID,
				"update_time": updateTime,
			}).Debug("skipping outdated update")
			return nil
		}
	}

	chat := u.FromChat()
	user := u.SentFrom()

	for _, handler := range up.updateHandlers {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		proceed, err := handler.Handle(ctx, u, chat, user)
		if err != nil {
			return errors.WithMessage(err, "handling error")
		}
		if !proceed {
			log.Trace("not proceeding")
			return nil
		}
	}
	return nil
}

func updateTime(u *api.Update) (time.Time, bool) {
	switch {
	case u.Message != nil:
		return time.Unix(int64(u.Message.Date), 0), true
	case u.EditedMessage != nil:
		return time.Unix(int64(u.EditedMessage.Date), 0), true
	default:
		return time.Time{}, false
	}
}

// PollUpdates long-polls the Bot API and publishes every new update to
// updates until ctx is done, then closes updates and returns ctx.Err(). A failed
// request is logged and repeated after retryDelay, the way a hosted polling
// loop keeps running through network hiccups.
func PollUpdates(ctx context.Context, client Client, config api.UpdateConfig, updates chan<- api.Update, retryDelay time.Duration) error {
	defer close(updates)
	entry := log.WithField("context", "polling")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch, err := client.GetUpdates(config)
		if err != nil {
			entry.WithError(err).Warn("cant get updates")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay):
			}
			continue
		}

		for _, update := range batch {
			if update.UpdateID < config.Offset {
				continue
			}
			config.Offset = update.UpdateID + 1
			select {
			case updates <- update:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
