package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestPostResolvesDisplayName(t *testing.T) {
	tests := []struct {
		name      string
		handle    string
		anonymous bool
		want      string
	}{
		{"named poster", "maya", false, "maya"},
		{"blank handle falls back to guest", "", false, GuestLabel},
		{"whitespace handle falls back to guest", "   ", false, GuestLabel},
		{"anonymous overrides handle", "maya", true, AnonymousLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewMessageLog()
			sparkID := uuid.New()
			log.Register(sparkID, true)

			msg, err := log.Post(sparkID, tt.handle, tt.anonymous, "hello")
			if err != nil {
				t.Fatalf("Post failed: %v", err)
			}
			if msg.DisplayName != tt.want {
				t.Errorf("DisplayName = %q, want %q", msg.DisplayName, tt.want)
			}
			if msg.Anonymous != tt.anonymous {
				t.Errorf("Anonymous = %v, want %v", msg.Anonymous, tt.anonymous)
			}
		})
	}
}

func TestPostTrimsText(t *testing.T) {
	log := NewMessageLog()
	sparkID := uuid.New()
	log.Register(sparkID, true)

	msg, err := log.Post(sparkID, "maya", false, "  hello  ")
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if msg.Text != "hello" {
		t.Errorf("Text = %q, want %q", msg.Text, "hello")
	}
}

func TestPostWhitespaceIsNoOp(t *testing.T) {
	log := NewMessageLog()
	sparkID := uuid.New()
	log.Register(sparkID, true)

	before := len(log.Messages(sparkID))

	msg, err := log.Post(sparkID, "maya", false, "   \t\n  ")
	if err != nil {
		t.Fatalf("whitespace post must not error, got %v", err)
	}
	if msg != nil {
		t.Error("whitespace post must not produce a message")
	}

	if after := len(log.Messages(sparkID)); after != before {
		t.Errorf("log length changed from %d to %d", before, after)
	}
}

func TestPostAnonymousRejectedByPolicy(t *testing.T) {
	log := NewMessageLog()
	sparkID := uuid.New()
	log.Register(sparkID, false)

	msg, err := log.Post(sparkID, "", true, "hi")
	if !errors.Is(err, ErrAnonymousNotAllowed) {
		t.Fatalf("err = %v, want ErrAnonymousNotAllowed", err)
	}
	if msg != nil {
		t.Error("rejected post must not produce a message")
	}

	if got := len(log.Messages(sparkID)); got != 0 {
		t.Errorf("rejected post must not mutate the log, got %d messages", got)
	}
}

func TestPostUnknownSpark(t *testing.T) {
	log := NewMessageLog()

	_, err := log.Post(uuid.New(), "maya", false, "hello")
	if !errors.Is(err, ErrSparkNotFound) {
		t.Fatalf("err = %v, want ErrSparkNotFound", err)
	}
}

func TestMessagesUnknownSparkIsEmpty(t *testing.T) {
	log := NewMessageLog()

	msgs := log.Messages(uuid.New())
	if msgs == nil || len(msgs) != 0 {
		t.Errorf("unknown spark must yield an empty slice, got %v", msgs)
	}
}

func TestMessagesKeepInsertionOrder(t *testing.T) {
	log := NewMessageLog()
	sparkID := uuid.New()
	log.Register(sparkID, true)

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if _, err := log.Post(sparkID, "maya", false, text); err != nil {
			t.Fatalf("post %q failed: %v", text, err)
		}
	}

	msgs := log.Messages(sparkID)
	if len(msgs) != len(texts) {
		t.Fatalf("got %d messages, want %d", len(msgs), len(texts))
	}
	for i, text := range texts {
		if msgs[i].Text != text {
			t.Errorf("position %d: got %q, want %q", i, msgs[i].Text, text)
		}
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	log := NewMessageLog()
	sparkID := uuid.New()
	log.Register(sparkID, true)

	log.Post(sparkID, "maya", false, "hello")

	msgs := log.Messages(sparkID)
	msgs[0].Text = "mutated"

	if got := log.Messages(sparkID)[0].Text; got != "hello" {
		t.Errorf("caller mutated the stored log: %q", got)
	}
}

func TestEvictIsIdempotent(t *testing.T) {
	log := NewMessageLog()
	sparkID := uuid.New()
	log.Register(sparkID, true)
	log.Post(sparkID, "maya", false, "hello")

	log.Evict(sparkID)
	log.Evict(sparkID)

	if got := len(log.Messages(sparkID)); got != 0 {
		t.Errorf("log must stay evicted, got %d messages", got)
	}
}
