package bot

import (
	"context"

	api "github.com/OvyFlash/telegram-bot-api"
)

// Client is the part of *api.BotAPI the bot relies on.
type Client interface {
	Send(c api.Chattable) (api.Message, error)
	Request(c api.Chattable) (*api.APIResponse, error)
	GetUpdates(config api.UpdateConfig) ([]api.Update, error)
}

// Handler processes an update. Returning proceed=false stops the chain.
type Handler interface {
	Handle(ctx context.Context, u *api.Update, chat *api.Chat, user *api.User) (proceed bool, err error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, u *api.Update, chat *api.Chat, user *api.User) (bool, error)

func (f HandlerFunc) Handle(ctx context.Context, u *api.Update, chat *api.Chat, user *api.User) (bool, error) {
	return f(ctx, u, chat, user)
}

var _ Client = (*api.BotAPI)(nil)
