package bus

import "context"

type ChannelType string

const (
	ChannelTelegram ChannelType = "telegram"
)

// Bus is the contract between the platform poller and the relay loop.
type Bus interface {
	// PublishInbound delivers a message from the poller to the relay.
	// It blocks while the queue is full and gives up when ctx is done.
	PublishInbound(ctx context.Context, msg InboundMessage) error
	// InboundChan returns a receive-only channel for the relay to consume.
	InboundChan() <-chan InboundMessage
}

// MessageBus is the default in-process Bus backed by a buffered Go channel.
//
// The poller pushes InboundMessages and a single relay loop consumes them,
// so one message is fully answered before the next is read.
type MessageBus struct {
	inbound chan InboundMessage
}

func NewMessageBus(bufSize int) *MessageBus {
	return &MessageBus{inbound: make(chan InboundMessage, bufSize)}
}

// PublishInbound queues an InboundMessage for the relay.
func (b *MessageBus) PublishInbound(ctx context.Context, msg InboundMessage) error {
	select {
	case b.inbound <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InboundChan returns a receive-only view of the inbound channel.
func (b *MessageBus) InboundChan() <-chan InboundMessage {
	return b.inbound
}

// InboundSize returns the number of queued messages.
func (b *MessageBus) InboundSize() int { return len(b.inbound) }
