// Package bus carries inbound chat messages from the platform poller to the relay.
package bus

import (
	"time"

	"github.com/crystaldolphin/chanrelay/internal/shared/stringutils"
)

// InboundMessage is a message received in a monitored chat.
type InboundMessage struct {
	channel   ChannelType
	chatId    string // chat the message arrived in
	messageId int    // platform message ID, the reply target
	senderId  string
	text      string
	caption   string
	command   bool
	timestamp time.Time
}

// NewInboundMessage creates an InboundMessage with Timestamp set to now.
func NewInboundMessage(channel ChannelType, chatId string, messageId int, senderId string) InboundMessage {
	return InboundMessage{
		channel:   channel,
		chatId:    chatId,
		messageId: messageId,
		senderId:  senderId,
		timestamp: time.Now(),
	}
}

func (m InboundMessage) Channel() ChannelType { return m.channel }
func (m InboundMessage) ChatId() string       { return m.chatId }
func (m InboundMessage) MessageId() int       { return m.messageId }
func (m InboundMessage) SenderId() string     { return m.senderId }
func (m InboundMessage) Text() string         { return m.text }
func (m InboundMessage) Caption() string      { return m.caption }
func (m InboundMessage) IsCommand() bool      { return m.command }
func (m InboundMessage) Timestamp() time.Time { return m.timestamp }
func (m *InboundMessage) SetText(text string) { m.text = text }
func (m *InboundMessage) SetCaption(c string) { m.caption = c }
func (m *InboundMessage) SetCommand(cmd bool) { m.command = cmd }

// Content returns the caption when present, otherwise the text.
func (m InboundMessage) Content() string {
	if m.caption != "" {
		return m.caption
	}
	return m.text
}

// Relayable reports whether the relay should answer the message:
// it is not a bot command and carries text or a caption.
func (m InboundMessage) Relayable() bool {
	return !m.command && m.Content() != ""
}

// Preview returns a short snippet of the message content for logging.
func (m InboundMessage) Preview() string {
	return stringutils.Truncate(m.Content(), 80)
}
