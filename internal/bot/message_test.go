package bot

import (
	"context"
	"testing"

	api "github.com/OvyFlash/telegram-bot-api"
)

func TestMessageText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  *api.Message
		want string
	}{
		{name: "nil-message", msg: nil, want: ""},
		{name: "text", msg: &api.Message{Text: "  join the casino  "}, want: "join the casino"},
		{name: "caption-fallback", msg: &api.Message{Caption: "casino pic"}, want: "casino pic"},
		{name: "text-wins-over-caption", msg: &api.Message{Text: "hi", Caption: "casino"}, want: "hi"},
		{name: "empty", msg: &api.Message{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := MessageText(tt.msg); got != tt.want {
				t.Fatalf("MessageText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsGroupChat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		chatType string
		want     bool
	}{
		{"group", true},
		{"supergroup", true},
		{"private", false},
		{"channel", false},
	}
	for _, tt := range tests {
		if got := IsGroupChat(&api.Chat{Type: tt.chatType}); got != tt.want {
			t.Fatalf("IsGroupChat(%q) = %v, want %v", tt.chatType, got, tt.want)
		}
	}
	if IsGroupChat(nil) {
		t.Fatalf("nil chat is not a group")
	}
}

func TestGetUN(t *testing.T) {
	t.Parallel()

	if got := GetUN(&api.User{ID: 42, UserName: "spammer"}); got != "spammer" {
		t.Fatalf("unexpected name: %q", got)
	}
	if got := GetUN(&api.User{ID: 42}); got != "42" {
		t.Fatalf("expected id fallback, got %q", got)
	}
}

type sendRecorder struct {
	pollingClient
	sent []api.Chattable
}

func (r *sendRecorder) Send(c api.Chattable) (api.Message, error) {
	r.sent = append(r.sent, c)
	return api.Message{}, nil
}

func (r *sendRecorder) Request(c api.Chattable) (*api.APIResponse, error) {
	r.sent = append(r.sent, c)
	return &api.APIResponse{Ok: true}, nil
}

func TestReplyTargetsOriginalMessage(t *testing.T) {
	t.Parallel()

	rec := &sendRecorder{}
	msg := &api.Message{MessageID: 5, MessageThreadID: 9, Chat: api.Chat{ID: -100, IsForum: true}}
	if err := Reply(context.Background(), rec, msg, "text", api.ModeMarkdown); err != nil {
		t.Fatalf("reply: %v", err)
	}
	if len(rec.sent) != 1 {
		t.Fatalf("expected one send, got %d", len(rec.sent))
	}
	reply, ok := rec.sent[0].(api.MessageConfig)
	if !ok {
		t.Fatalf("unexpected chattable %T", rec.sent[0])
	}
	if reply.ReplyParameters.MessageID != 5 || reply.MessageThreadID != 9 || reply.ParseMode != api.ModeMarkdown {
		t.Fatalf("unexpected reply config: %+v", reply)
	}
}

func TestBanUserFromChatIsPermanent(t *testing.T) {
	t.Parallel()

	rec := &sendRecorder{}
	if err := BanUserFromChat(context.Background(), rec, 7, -100); err != nil {
		t.Fatalf("ban: %v", err)
	}
	ban, ok := rec.sent[0].(api.BanChatMemberConfig)
	if !ok {
		t.Fatalf("unexpected chattable %T", rec.sent[0])
	}
	if ban.ChatID != -100 || ban.UserID != 7 || ban.UntilDate != 0 {
		t.Fatalf("unexpected ban config: %+v", ban)
	}
}
