package handlers

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/iamwavecut/wordguard/internal/bot"
)

const MsgNoPrivileges = "not enough rights"

var ErrNoPrivileges = errors.New("no privileges")

type BanService interface {
	BanUser(ctx context.Context, chatID, userID int64) error
}

type defaultBanService struct {
	client bot.Client
}

func NewBanService(client bot.Client) BanService {
	return &defaultBanService{client: client}
}

// BanUser makes a single attempt to ban the user from the chat.
func (s *defaultBanService) BanUser(ctx context.Context, chatID, userID int64) error {
	if err := bot.BanUserFromChat(ctx, s.client, userID, chatID); err != nil {
		return withPrivilegeError(err, "ban")
	}
	return nil
}

func withPrivilegeError(err error, operation string) error {
	if strings.Contains(err.Error(), MsgNoPrivileges) {
		return errors.WithMessage(ErrNoPrivileges, err.Error())
	}
	return errors.WithMessagef(err, "failed to %s user", operation)
}
