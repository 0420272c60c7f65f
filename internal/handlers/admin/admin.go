package handlers

import (
	"context"
	"fmt"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/iamwavecut/wordguard/internal/bot"
	"github.com/iamwavecut/wordguard/internal/i18n"
	"github.com/iamwavecut/wordguard/internal/observability"
	"github.com/iamwavecut/wordguard/internal/patterns"
	"github.com/iamwavecut/wordguard/internal/policy/access"
)

const (
	CommandStart   = "start"
	CommandBanword = "banword"

	msgStart     = "🛡️ Banned words watch is active.\nAdministrators can add words with /banword."
	msgNoRights  = "❌ You have no permission."
	msgUsage     = "📌 Example: /banword casino"
	msgWordAdded = "✅ Added: `%s`"
)

type wordStore interface {
	AddWord(word string) (*patterns.Set, error)
}

// Admin answers /start and lets administrators extend the banned words list
// with /banword.
type Admin struct {
	client   bot.Client
	botName  string
	store    wordStore
	admins   access.Set
	language string
}

func NewAdmin(client bot.Client, botName string, store wordStore, admins access.Set, language string) *Admin {
	a := &Admin{
		client:   client,
		botName:  botName,
		store:    store,
		admins:   admins,
		language: language,
	}
	a.getLogEntry().WithField("admins", admins.Len()).Debug("created new admin handler")
	return a
}

func (a *Admin) Handle(ctx context.Context, u *api.Update, chat *api.Chat, user *api.User) (proceed bool, err error) {
	if u == nil || u.Message == nil || !u.Message.IsCommand() {
		return true, nil
	}
	if a.addressedElsewhere(u.Message) {
		return true, nil
	}

	switch u.Message.Command() {
	case CommandStart:
		a.reply(ctx, u.Message, i18n.Get(msgStart, a.language))
		return false, nil
	case CommandBanword:
		return false, a.banword(ctx, u.Message, user)
	}
	return true, nil
}

// addressedElsewhere reports whether the command names another bot, as in
// /banword@OtherBot. Such messages are left to the word filter.
func (a *Admin) addressedElsewhere(msg *api.Message) bool {
	_, target, found := strings.Cut(msg.CommandWithAt(), "@")
	return found && !strings.EqualFold(target, a.botName)
}

func (a *Admin) banword(ctx context.Context, msg *api.Message, user *api.User) error {
	if user == nil || !a.admins.Has(user.ID) {
		a.reply(ctx, msg, i18n.Get(msgNoRights, a.language))
		return nil
	}

	args := bot.CommandArgs(msg)
	if len(args) == 0 {
		a.reply(ctx, msg, i18n.Get(msgUsage, a.language))
		return nil
	}

	word := strings.Join(args, " ")
	set, err := a.store.AddWord(word)
	if err != nil {
		return errors.WithMessagef(err, "cant add banned word %q", word)
	}
	observability.RecordWordAdded()

	a.replyMarkdown(ctx, msg, fmt.Sprintf(i18n.Get(msgWordAdded, a.language), word))
	a.getLogEntry().WithFields(log.Fields{
		"admin_id": user.ID,
		"word":     word,
		"patterns": set.Len(),
	}).Infof("admin %d added: %s", user.ID, word)
	return nil
}

func (a *Admin) reply(ctx context.Context, msg *api.Message, text string) {
	if err := bot.Reply(ctx, a.client, msg, text, ""); err != nil {
		a.getLogEntry().WithError(err).WithField("chat_id", msg.Chat.ID).Warn("cant send reply")
	}
}

func (a *Admin) replyMarkdown(ctx context.Context, msg *api.Message, text string) {
	if err := bot.Reply(ctx, a.client, msg, text, api.ModeMarkdown); err != nil {
		a.getLogEntry().WithError(err).WithField("chat_id", msg.Chat.ID).Warn("cant send reply")
	}
}

func (a *Admin) getLogEntry() *log.Entry {
	return log.WithField("context", "admin")
}
