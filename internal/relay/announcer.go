// Package relay posts announcements into configured channels and answers
// messages that arrive in their discussion chats.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/crystaldolphin/chanrelay/internal/chatset"
	"github.com/crystaldolphin/chanrelay/internal/config"
	"github.com/crystaldolphin/chanrelay/internal/schema"
)

// Post is the announcement sent into every channel.
type Post struct {
	Text      string // "{name}" is replaced with the channel name
	ImagePath string // when set the post is a photo captioned with Text
}

// TextPost announces with a plain text message rendered from template.
func TextPost(template string) Post {
	return Post{Text: template}
}

// MessagesPost announces with the photo and caption from a messages config.
func MessagesPost(m *config.MessagesConfig) Post {
	return Post{Text: m.PostText, ImagePath: m.PostImagePath}
}

func (p Post) render(e chatset.Entry) string {
	return strings.ReplaceAll(p.Text, "{name}", e.Name)
}

// Report summarises one announcement round.
type Report struct {
	Sent    int
	Failed  int
	Skipped int // not attempted because the context was cancelled
}

// Err returns a non-nil error when any channel was not announced.
func (r Report) Err() error {
	if r.Failed == 0 && r.Skipped == 0 {
		return nil
	}
	return fmt.Errorf("announce: %d sent, %d failed, %d skipped", r.Sent, r.Failed, r.Skipped)
}

// Announcer posts one message into each configured channel.
type Announcer struct {
	sets      *chatset.Set
	messenger schema.Messenger
	ledger    Ledger
	post      Post
	stats     *Stats
}

func NewAnnouncer(sets *chatset.Set, m schema.Messenger, ledger Ledger, post Post, stats *Stats) *Announcer {
	if stats == nil {
		stats = NewStats()
	}
	return &Announcer{sets: sets, messenger: m, ledger: ledger, post: post, stats: stats}
}

// Announce sends the post to every channel in config order, one at a time.
// A failed send is logged and the remaining channels are still attempted.
func (a *Announcer) Announce(ctx context.Context) Report {
	var report Report
	entries := a.sets.Entries()

	for i, e := range entries {
		if ctx.Err() != nil {
			report.Skipped = len(entries) - i
			slog.Warn("announce: cancelled", "remaining", report.Skipped)
			break
		}

		msgID, err := a.send(ctx, e)
		a.stats.announceResult(err)
		if err != nil {
			report.Failed++
			slog.Error("announce: send failed", "channel", e.Name, "chat", e.SendID, "err", err)
			continue
		}
		report.Sent++

		if err := a.ledger.Record(e.WaitID, msgID); err != nil {
			slog.Warn("announce: ledger record failed", "channel", e.Name, "err", err)
		}
		slog.Info("announce: posted", "channel", e.Name, "chat", e.SendID, "message_id", msgID)
	}

	slog.Info("announce: done", "sent", report.Sent, "failed", report.Failed, "skipped", report.Skipped)
	return report
}

func (a *Announcer) send(ctx context.Context, e chatset.Entry) (int, error) {
	text := a.post.render(e)
	if a.post.ImagePath != "" {
		return a.messenger.SendPhoto(ctx, e.SendID, a.post.ImagePath, text, 0)
	}
	return a.messenger.SendText(ctx, e.SendID, text, 0)
}
