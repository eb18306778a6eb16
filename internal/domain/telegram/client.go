package telegram

import "context"

// Client delivers plain-text messages to a chat.
// This keeps the poll loop independent of the specific bot library.
type Client interface {
	Deliver(ctx context.Context, chatID string, text string) error
}
