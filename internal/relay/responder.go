package relay

import (
	"context"
	"log/slog"

	"github.com/crystaldolphin/chanrelay/internal/bus"
	"github.com/crystaldolphin/chanrelay/internal/chatset"
	"github.com/crystaldolphin/chanrelay/internal/config"
	"github.com/crystaldolphin/chanrelay/internal/schema"
)

// ReplyMode selects how inbound messages are answered.
type ReplyMode int

const (
	// ReplySingle sends one text reply, only in configured discussion chats.
	ReplySingle ReplyMode = iota
	// ReplySequence sends every configured chat message in order.
	ReplySequence
)

func (m ReplyMode) String() string {
	if m == ReplySequence {
		return "sequence"
	}
	return "single"
}

// ReplyPlan describes the replies sent for one inbound message.
type ReplyPlan struct {
	Mode     ReplyMode
	Text     string               // ReplySingle
	Messages []config.ChatMessage // ReplySequence

	// OnlyConfiguredChats gates ReplySequence on a discussion chat match.
	// ReplySingle is always gated.
	OnlyConfiguredChats bool
}

// SingleReply answers matched chats with text.
func SingleReply(text string) ReplyPlan {
	return ReplyPlan{Mode: ReplySingle, Text: text}
}

// SequenceReply answers with the chat messages from a messages config.
func SequenceReply(m *config.MessagesConfig) ReplyPlan {
	return ReplyPlan{
		Mode:                ReplySequence,
		Messages:            m.ChatMessages,
		OnlyConfiguredChats: m.OnlyConfiguredChats,
	}
}

// Responder answers inbound messages. It holds no per-message state.
type Responder struct {
	sets      *chatset.Set
	messenger schema.Messenger
	ledger    Ledger
	plan      ReplyPlan
	stats     *Stats
}

func NewResponder(sets *chatset.Set, m schema.Messenger, ledger Ledger, plan ReplyPlan, stats *Stats) *Responder {
	if stats == nil {
		stats = NewStats()
	}
	return &Responder{sets: sets, messenger: m, ledger: ledger, plan: plan, stats: stats}
}

// Plan returns the reply plan in use.
func (r *Responder) Plan() ReplyPlan { return r.plan }

// Run handles messages from in one at a time until ctx is cancelled.
func (r *Responder) Run(ctx context.Context, in <-chan bus.InboundMessage) error {
	slog.Info("relay: listening", "mode", r.plan.Mode.String(), "channels", r.sets.Len())
	for {
		select {
		case msg, ok := <-in:
			if !ok {
				return nil
			}
			r.Handle(ctx, msg)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Handle answers one inbound message and returns the number of replies sent.
// Every reply is threaded to the inbound message.
func (r *Responder) Handle(ctx context.Context, msg bus.InboundMessage) int {
	if !msg.Relayable() {
		return 0
	}
	r.stats.inboundSeen()

	entry, matched := r.sets.MatchWait(msg.ChatId())
	label := "unconfigured"
	if matched {
		label = entry.Name
	}
	log := slog.With("channel", label, "chat", msg.ChatId(), "message_id", msg.MessageId(), "text", msg.Preview())
	if matched {
		if announced, ok := r.ledger.Lookup(entry.WaitID); ok {
			log = log.With("announcement_id", announced)
		}
	}

	switch r.plan.Mode {
	case ReplySequence:
		if !matched && r.plan.OnlyConfiguredChats {
			log.Debug("relay: ignoring message outside configured chats")
			return 0
		}
		if matched {
			log.Info("relay: received message", "chat_name", entry.Label())
		} else {
			log.Info("relay: received message")
		}
		return r.replySequence(ctx, log, msg)

	default:
		if !matched {
			log.Debug("relay: ignoring message outside configured chats")
			return 0
		}
		log.Info("relay: received message", "chat_name", entry.Label())
		_, err := r.messenger.SendText(ctx, msg.ChatId(), r.plan.Text, msg.MessageId())
		r.stats.replyResult("text", err)
		if err != nil {
			log.Error("relay: reply failed", "err", err)
			return 0
		}
		log.Info("relay: replied")
		return 1
	}
}

func (r *Responder) replySequence(ctx context.Context, log *slog.Logger, msg bus.InboundMessage) int {
	sent := 0
	for i, m := range r.plan.Messages {
		if ctx.Err() != nil {
			log.Warn("relay: cancelled mid-sequence", "sent", sent, "remaining", len(r.plan.Messages)-i)
			break
		}

		var err error
		kind := "text"
		if m.HasImage() {
			kind = "photo"
			_, err = r.messenger.SendPhoto(ctx, msg.ChatId(), m.ReplyImagePath, m.ReplyText, msg.MessageId())
		} else {
			_, err = r.messenger.SendText(ctx, msg.ChatId(), m.ReplyText, msg.MessageId())
		}
		r.stats.replyResult(kind, err)
		if err != nil {
			log.Error("relay: reply failed", "index", i, "kind", kind, "err", err)
			continue
		}
		sent++
	}
	log.Info("relay: replied", "sent", sent, "total", len(r.plan.Messages))
	return sent
}
