package handlers

import (
	"context"
	"fmt"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/pborman/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/iamwavecut/wordguard/internal/bot"
	"github.com/iamwavecut/wordguard/internal/i18n"
	"github.com/iamwavecut/wordguard/internal/observability"
	"github.com/iamwavecut/wordguard/internal/patterns"
	"github.com/iamwavecut/wordguard/internal/policy/access"
)

const msgBanned = "🚫 @%s has been banned.\nReason: `%s`"

type snapshotter interface {
	Snapshot() *patterns.Set
}

// WordFilter bans group members whose message contains a banned word.
type WordFilter struct {
	client     bot.Client
	banService BanService
	store      snapshotter
	whitelist  access.Set
	language   string
}

func NewWordFilter(client bot.Client, banService BanService, store snapshotter, whitelist access.Set, language string) *WordFilter {
	return &WordFilter{
		client:     client,
		banService: banService,
		store:      store,
		whitelist:  whitelist,
		language:   language,
	}
}

func (w *WordFilter) Handle(ctx context.Context, u *api.Update, chat *api.Chat, user *api.User) (bool, error) {
	if u == nil || u.Message == nil || chat == nil || user == nil {
		return true, nil
	}
	if !bot.IsGroupChat(chat) {
		return true, nil
	}
	if w.whitelist.Has(user.ID) {
		return true, nil
	}

	text := bot.MessageText(u.Message)
	if text == "" {
		return true, nil
	}

	ctx, span := observability.Tracer().Start(ctx, "wordfilter.check")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("chat_id", chat.ID),
		attribute.Int64("user_id", user.ID),
	)

	observability.RecordMessageChecked()
	done := observability.StartMatch()
	matched := w.store.Snapshot().FirstMatch(text)
	done()
	if matched == nil {
		return true, nil
	}
	observability.RecordMatch()
	span.SetAttributes(attribute.String("pattern", matched.String()))

	w.enforce(ctx, u.Message, user, matched)
	return false, nil
}

// enforce bans the sender and tells the chat why. A failed ban is logged and
// nothing else is done for the message.
func (w *WordFilter) enforce(ctx context.Context, msg *api.Message, user *api.User, matched *patterns.Pattern) {
	entry := w.getLogEntry().WithFields(log.Fields{
		"incident": uuid.New(),
		"chat_id":  msg.Chat.ID,
		"user_id":  user.ID,
		"pattern":  matched.String(),
	})

	if err := w.banService.BanUser(ctx, msg.Chat.ID, user.ID); err != nil {
		observability.RecordBan("failed")
		entry.WithError(err).Errorf("cant ban user %d", user.ID)
		return
	}
	observability.RecordBan("ok")
	entry.Infof("banned %d for: %s", user.ID, matched.String())

	notice := fmt.Sprintf(
		i18n.Get(msgBanned, w.language),
		api.EscapeText(api.ModeMarkdown, bot.GetUN(user)),
		matched.String(),
	)
	if err := bot.Reply(ctx, w.client, msg, notice, api.ModeMarkdown); err != nil {
		entry.WithError(err).Warn("cant send ban notice")
	}
}

func (w *WordFilter) getLogEntry() *log.Entry {
	return log.WithField("context", "wordfilter")
}
