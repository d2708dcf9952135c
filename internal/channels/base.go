// Package channels provides chat-platform channel implementations.
package channels

import (
	"context"
	"log/slog"
	"strings"

	"github.com/crystaldolphin/chanrelay/internal/bus"
)

// Base holds common state and helper methods shared by all channels.
type Base struct {
	channelName bus.ChannelType
	b           bus.Bus
}

// NewBase creates a Base with the given channel name and bus.
func NewBase(name bus.ChannelType, b bus.Bus) Base {
	return Base{channelName: name, b: b}
}

// HandleMessage pushes msg to the bus when the relay should answer it.
// Messages the relay ignores are dropped with a nil error.
func (b *Base) HandleMessage(ctx context.Context, msg bus.InboundMessage) error {
	if !msg.Relayable() {
		slog.Debug("channel: skipping message", "channel", b.channelName, "chat", msg.ChatId(), "command", msg.IsCommand())
		return nil
	}
	return b.b.PublishInbound(ctx, msg)
}

// splitMessage splits content into chunks that fit within maxLen,
// preferring newline breaks, then space breaks, then hard cut.
func splitMessage(content string, maxLen int) []string {
	if len(content) <= maxLen {
		return []string{content}
	}
	var chunks []string
	for len(content) > 0 {
		if len(content) <= maxLen {
			chunks = append(chunks, content)
			break
		}
		cut := content[:maxLen]
		pos := strings.LastIndex(cut, "\n")
		if pos <= 0 {
			pos = strings.LastIndex(cut, " ")
		}
		if pos <= 0 {
			pos = maxLen
		}
		chunks = append(chunks, content[:pos])
		content = strings.TrimLeft(content[pos:], " \t\n")
	}
	return chunks
}
