package relay

import (
	"context"
	"errors"
	"sync"

	"github.com/crystaldolphin/chanrelay/internal/bus"
	"github.com/crystaldolphin/chanrelay/internal/chatset"
	"github.com/crystaldolphin/chanrelay/internal/config"
)

type sentMessage struct {
	kind    string // "text" or "photo"
	chatID  string
	text    string
	image   string
	replyTo int
}

// fakeMessenger records sends and fails for chat IDs listed in failChats.
type fakeMessenger struct {
	mu        sync.Mutex
	sent      []sentMessage
	failChats map[string]bool
	nextID    int
}

func newFakeMessenger(failChats ...string) *fakeMessenger {
	f := &fakeMessenger{failChats: make(map[string]bool), nextID: 1000}
	for _, c := range failChats {
		f.failChats[c] = true
	}
	return f
}

func (f *fakeMessenger) record(m sentMessage) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failChats[m.chatID] {
		return 0, errors.New("chat not found")
	}
	f.nextID++
	f.sent = append(f.sent, m)
	return f.nextID, nil
}

func (f *fakeMessenger) SendText(_ context.Context, chatID, text string, replyTo int) (int, error) {
	return f.record(sentMessage{kind: "text", chatID: chatID, text: text, replyTo: replyTo})
}

func (f *fakeMessenger) SendPhoto(_ context.Context, chatID, imagePath, caption string, replyTo int) (int, error) {
	return f.record(sentMessage{kind: "photo", chatID: chatID, text: caption, image: imagePath, replyTo: replyTo})
}

func (f *fakeMessenger) Sent() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

func scenarioSet() *chatset.Set {
	return chatset.Build(&config.ChannelsFile{Channels: []config.ChannelEntry{
		{Name: "A", ID: "111", Chat: &config.DiscussionChat{ChatID: "222", ChatName: "Disc-A"}},
	}})
}

func inbound(chatID string, messageID int, text string) bus.InboundMessage {
	msg := bus.NewInboundMessage(bus.ChannelTelegram, chatID, messageID, "42")
	msg.SetText(text)
	return msg
}
