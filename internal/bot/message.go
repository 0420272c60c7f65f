package bot

import (
	"context"
	"strconv"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/iamwavecut/tool"
	"github.com/pkg/errors"
)

const (
	ChatTypeGroup      = "group"
	ChatTypeSupergroup = "supergroup"
)

// IsGroupChat reports whether messages of the chat are subject to moderation.
func IsGroupChat(chat *api.Chat) bool {
	if chat == nil {
		return false
	}
	return chat.Type == ChatTypeGroup || chat.Type == ChatTypeSupergroup
}

// MessageText returns the trimmed text of the message, falling back to its
// caption when there is no text.
func MessageText(msg *api.Message) string {
	if msg == nil {
		return ""
	}
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	return strings.TrimSpace(text)
}

// CommandArgs splits the command arguments on whitespace.
func CommandArgs(msg *api.Message) []string {
	if msg == nil {
		return nil
	}
	return strings.Fields(msg.CommandArguments())
}

// GetUN returns the username, or the numeric id when the user has none.
func GetUN(user *api.User) string {
	if user == nil {
		return ""
	}
	if user.UserName != "" {
		return user.UserName
	}
	return strconv.FormatInt(user.ID, 10)
}

// Reply sends text as a reply to msg in the same chat and topic.
func Reply(ctx context.Context, client Client, msg *api.Message, text, parseMode string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	reply := api.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = parseMode
	reply.ReplyParameters.MessageID = msg.MessageID
	reply.ReplyParameters.ChatID = msg.Chat.ID
	reply.ReplyParameters.AllowSendingWithoutReply = true
	if msg.Chat.IsForum {
		reply.MessageThreadID = msg.MessageThreadID
	}
	if err := tool.Err(client.Send(reply)); err != nil {
		return errors.WithMessage(err, "cant reply")
	}
	return nil
}

// BanUserFromChat bans the user from the chat until unbanned manually.
func BanUserFromChat(ctx context.Context, client Client, userID int64, chatID int64) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if _, err := client.Request(api.BanChatMemberConfig{
		ChatMemberConfig: api.ChatMemberConfig{
			ChatConfig: api.ChatConfig{
				ChatID: chatID,
			},
			UserID: userID,
		},
	}); err != nil {
		return errors.WithMessage(err, "cant ban")
	}
	return nil
}
