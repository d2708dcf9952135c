// Package container wires chanrelay services using go.uber.org/dig.
package container

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/dig"

	"github.com/crystaldolphin/chanrelay/internal/bus"
	"github.com/crystaldolphin/chanrelay/internal/channels"
	"github.com/crystaldolphin/chanrelay/internal/chatset"
	"github.com/crystaldolphin/chanrelay/internal/config"
	"github.com/crystaldolphin/chanrelay/internal/heartbeat"
	"github.com/crystaldolphin/chanrelay/internal/relay"
	"github.com/crystaldolphin/chanrelay/internal/schedule"
	"github.com/crystaldolphin/chanrelay/internal/schema"
	"github.com/crystaldolphin/chanrelay/internal/store"
)

var _ relay.Ledger = (*store.Ledger)(nil)

// Container holds the resolved service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	settings  config.Settings
	sets      *chatset.Set
	msgBus    *bus.MessageBus
	channel   schema.Channel
	ledger    relay.Ledger
	stats     *relay.Stats
	announcer *relay.Announcer
	responder *relay.Responder
	heartbeat *heartbeat.Service
	scheduler *schedule.Scheduler
}

func (c *Container) Settings() config.Settings     { return c.settings }
func (c *Container) ChatSets() *chatset.Set        { return c.sets }
func (c *Container) MessageBus() *bus.MessageBus   { return c.msgBus }
func (c *Container) Channel() schema.Channel       { return c.channel }
func (c *Container) Ledger() relay.Ledger          { return c.ledger }
func (c *Container) Stats() *relay.Stats           { return c.stats }
func (c *Container) Announcer() *relay.Announcer   { return c.announcer }
func (c *Container) Responder() *relay.Responder   { return c.responder }
func (c *Container) Heartbeat() *heartbeat.Service { return c.heartbeat }

// Scheduler is nil when no announce schedule is configured.
func (c *Container) Scheduler() *schedule.Scheduler { return c.scheduler }

// Close releases the ledger when it holds a file.
func (c *Container) Close() error {
	if closer, ok := c.ledger.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// messages wraps the optional messages config so dig can carry a nil value.
type messages struct{ *config.MessagesConfig }

// New builds and wires all services, connecting to Telegram.
func New(settings config.Settings) (*Container, error) {
	return build(settings, newTelegramChannel)
}

// NewWithChannel wires all services around an existing channel.
func NewWithChannel(settings config.Settings, ch schema.Channel) (*Container, error) {
	return build(settings, func() schema.Channel { return ch })
}

func build(settings config.Settings, channelCtor any) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() config.Settings { return settings }); err != nil {
		return nil, err
	}
	if err := d.Provide(newChatSet); err != nil {
		return nil, err
	}
	if err := d.Provide(newMessages); err != nil {
		return nil, err
	}
	if err := d.Provide(newMessageBus); err != nil {
		return nil, err
	}
	if err := d.Provide(channelCtor); err != nil {
		return nil, err
	}
	if err := d.Provide(newLedger); err != nil {
		return nil, err
	}
	if err := d.Provide(relay.NewStats); err != nil {
		return nil, err
	}
	if err := d.Provide(newAnnouncer); err != nil {
		return nil, err
	}
	if err := d.Provide(newResponder); err != nil {
		return nil, err
	}
	if err := d.Provide(newHeartbeat); err != nil {
		return nil, err
	}
	if err := d.Provide(newScheduler); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		sets *chatset.Set,
		msgBus *bus.MessageBus,
		ch schema.Channel,
		ledger relay.Ledger,
		stats *relay.Stats,
		announcer *relay.Announcer,
		responder *relay.Responder,
		hb *heartbeat.Service,
		sched *schedule.Scheduler,
	) {
		result = &Container{
			settings:  settings,
			sets:      sets,
			msgBus:    msgBus,
			channel:   ch,
			ledger:    ledger,
			stats:     stats,
			announcer: announcer,
			responder: responder,
			heartbeat: hb,
			scheduler: sched,
		}
	})
	if err != nil {
		return nil, fmt.Errorf("build container: %w", dig.RootCause(err))
	}
	return result, nil
}

func newChatSet(settings config.Settings) *chatset.Set {
	sets := chatset.Build(config.LoadChannelsOrEmpty(settings.ConfigPath))
	if sets.Len() == 0 {
		slog.Warn("container: no channels configured", "path", settings.ConfigPath)
	}
	return sets
}

func newMessages(settings config.Settings) messages {
	return messages{config.LoadMessagesOrEmpty(settings.MessagesPath)}
}

func newMessageBus() *bus.MessageBus {
	return bus.NewMessageBus(100)
}

func newTelegramChannel(settings config.Settings, b *bus.MessageBus) (schema.Channel, error) {
	return channels.NewTelegramChannel(channels.TelegramConfig{
		Token:       settings.Token,
		APIEndpoint: settings.APIEndpoint,
	}, b)
}

func newLedger(settings config.Settings) (relay.Ledger, error) {
	if settings.LedgerPath == "" {
		return relay.NewMemoryLedger(), nil
	}
	l, err := store.Open(settings.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", settings.LedgerPath, err)
	}
	return l, nil
}

func newAnnouncer(
	settings config.Settings,
	sets *chatset.Set,
	ch schema.Channel,
	ledger relay.Ledger,
	msgs messages,
	stats *relay.Stats,
) *relay.Announcer {
	post := relay.TextPost(settings.AnnounceTemplate)
	if msgs.MessagesConfig != nil {
		post = relay.MessagesPost(msgs.MessagesConfig)
	}
	return relay.NewAnnouncer(sets, ch, ledger, post, stats)
}

func newResponder(
	settings config.Settings,
	sets *chatset.Set,
	ch schema.Channel,
	ledger relay.Ledger,
	msgs messages,
	stats *relay.Stats,
) *relay.Responder {
	plan := relay.SingleReply(settings.ReplyText)
	if msgs.MessagesConfig != nil {
		plan = relay.SequenceReply(msgs.MessagesConfig)
	}
	return relay.NewResponder(sets, ch, ledger, plan, stats)
}

func newHeartbeat(settings config.Settings, stats *relay.Stats, ledger relay.Ledger, b *bus.MessageBus) *heartbeat.Service {
	return heartbeat.NewService(func(context.Context) error {
		snap := stats.Snapshot()
		slog.Info("heartbeat: alive",
			"announced", snap.Announced,
			"announce_failed", snap.AnnounceFailed,
			"inbound", snap.Inbound,
			"replied", snap.Replied,
			"reply_failed", snap.ReplyFailed,
			"ledger", ledger.Len(),
			"queued", b.InboundSize(),
		)
		return nil
	}, settings.HeartbeatInterval)
}

func newScheduler(settings config.Settings, announcer *relay.Announcer) (*schedule.Scheduler, error) {
	if settings.AnnounceSchedule == "" {
		return nil, nil
	}
	return schedule.New(settings.AnnounceSchedule, func(ctx context.Context) {
		announcer.Announce(ctx)
	})
}
