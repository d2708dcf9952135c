package channels

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/crystaldolphin/chanrelay/internal/bus"
)

const (
	// maxMessageLen stays under Telegram's 4096 character text limit.
	maxMessageLen = 4000
	pollTimeout   = 30
)

// TelegramConfig configures the Telegram channel.
type TelegramConfig struct {
	Token       string
	APIEndpoint string // Bot API URL template; defaults to tgbotapi.APIEndpoint
}

// TelegramChannel posts and receives messages through the Telegram Bot API
// using long polling.
type TelegramChannel struct {
	Base
	bot *tgbotapi.BotAPI
}

// NewTelegramChannel authenticates the bot and returns a ready channel.
func NewTelegramChannel(cfg TelegramConfig, b bus.Bus) (*TelegramChannel, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram: bot token not configured")
	}
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.Token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram: create bot: %w", err)
	}
	slog.Info("telegram: connected", "username", bot.Self.UserName)

	return &TelegramChannel{
		Base: NewBase(bus.ChannelTelegram, b),
		bot:  bot,
	}, nil
}

func (t *TelegramChannel) Name() string { return string(bus.ChannelTelegram) }

// Start polls for updates and publishes relayable messages until ctx is cancelled.
// Updates are handled in arrival order on this goroutine.
func (t *TelegramChannel) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := t.bot.GetUpdatesChan(u)
	slog.Info("telegram: polling started")

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := t.handleUpdate(ctx, update); err != nil {
				t.bot.StopReceivingUpdates()
				slog.Info("telegram: polling stopped", "err", err)
				return err
			}
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			slog.Info("telegram: polling stopped")
			return ctx.Err()
		}
	}
}

func (t *TelegramChannel) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return nil
	}

	senderID := ""
	if msg.From != nil {
		senderID = strconv.FormatInt(msg.From.ID, 10)
	}
	in := bus.NewInboundMessage(bus.ChannelTelegram, strconv.FormatInt(msg.Chat.ID, 10), msg.MessageID, senderID)
	in.SetText(msg.Text)
	in.SetCaption(msg.Caption)
	in.SetCommand(msg.IsCommand())

	return t.HandleMessage(ctx, in)
}

// SendText sends text to chatID, split into chunks when it exceeds the
// platform limit. It returns the ID of the first chunk.
func (t *TelegramChannel) SendText(ctx context.Context, chatID, text string, replyTo int) (int, error) {
	var firstID int
	for _, chunk := range splitMessage(text, maxMessageLen) {
		if err := ctx.Err(); err != nil {
			return firstID, err
		}
		target, err := chatTarget(chatID, replyTo)
		if err != nil {
			return 0, err
		}
		sent, err := t.bot.Send(tgbotapi.MessageConfig{BaseChat: target, Text: chunk})
		if err != nil {
			return firstID, fmt.Errorf("telegram: send message to %s: %w", chatID, err)
		}
		if firstID == 0 {
			firstID = sent.MessageID
		}
	}
	return firstID, nil
}

// SendPhoto uploads the image at imagePath to chatID with caption.
func (t *TelegramChannel) SendPhoto(ctx context.Context, chatID, imagePath, caption string, replyTo int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	target, err := chatTarget(chatID, replyTo)
	if err != nil {
		return 0, err
	}
	photo := tgbotapi.PhotoConfig{
		BaseFile: tgbotapi.BaseFile{BaseChat: target, File: tgbotapi.FilePath(imagePath)},
		Caption:  caption,
	}
	sent, err := t.bot.Send(photo)
	if err != nil {
		return 0, fmt.Errorf("telegram: send photo to %s: %w", chatID, err)
	}
	return sent.MessageID, nil
}

// chatTarget addresses a numeric chat ID or an @channel username.
func chatTarget(chatID string, replyTo int) (tgbotapi.BaseChat, error) {
	target := tgbotapi.BaseChat{ReplyToMessageID: replyTo}
	chatID = strings.TrimSpace(chatID)
	if strings.HasPrefix(chatID, "@") {
		target.ChannelUsername = chatID
		return target, nil
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return target, fmt.Errorf("telegram: invalid chat_id: %q", chatID)
	}
	target.ChatID = id
	return target, nil
}
