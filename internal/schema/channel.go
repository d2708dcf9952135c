package schema

import "context"

// Messenger sends messages to the chat platform.
// chatID is the platform chat identifier in string form. replyTo threads the
// message as a reply to that message ID; 0 sends it unthreaded.
// Both methods return the platform ID of the delivered message.
type Messenger interface {
	SendText(ctx context.Context, chatID, text string, replyTo int) (int, error)
	SendPhoto(ctx context.Context, chatID, imagePath, caption string, replyTo int) (int, error)
}

// Channel is the interface a chat-platform adapter must implement.
type Channel interface {
	Messenger
	// Name returns the unique channel identifier (e.g. "telegram").
	Name() string
	// Start begins listening for incoming messages; it blocks until ctx is cancelled.
	Start(ctx context.Context) error
}
