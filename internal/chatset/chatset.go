// Package chatset resolves the channel configuration into the set of
// announce/monitor chat pairs the relay works with.
package chatset

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/crystaldolphin/chanrelay/internal/config"
)

// Entry is one configured channel.
type Entry struct {
	Name        string // logical channel name from the config
	SendID      string // chat the announcement is posted to
	WaitID      string // discussion chat monitored for replies
	DisplayName string // discussion chat name, used in logs
}

// Label returns the display name, or the channel name when none is configured.
func (e Entry) Label() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.Name
}

// Set is an ordered, read-only mapping from channel name to Entry.
// Iteration follows config order.
type Set struct {
	entries []Entry
	index   map[string]int
}

// Build transforms a parsed channel file into a Set. A nil file yields an
// empty set. Entries missing a send or wait ID are skipped with a warning.
// A repeated name replaces the earlier entry in its original position.
func Build(file *config.ChannelsFile) *Set {
	s := &Set{index: make(map[string]int)}
	if file == nil {
		return s
	}

	for i, ch := range file.Channels {
		e := Entry{Name: ch.Name, SendID: normalizeID(ch.ID.String())}
		if ch.Chat != nil {
			e.WaitID = normalizeID(ch.Chat.ChatID.String())
			e.DisplayName = ch.Chat.ChatName
		}
		if e.SendID == "" || e.WaitID == "" {
			slog.Warn("chatset: skipping channel without send or wait id", "index", i, "name", ch.Name)
			continue
		}
		if pos, ok := s.index[e.Name]; ok {
			slog.Warn("chatset: duplicate channel name, last entry wins", "name", e.Name)
			s.entries[pos] = e
			continue
		}
		s.index[e.Name] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	return s
}

// Len returns the number of entries.
func (s *Set) Len() int { return len(s.entries) }

// Get returns the entry for a channel name.
func (s *Set) Get(name string) (Entry, bool) {
	pos, ok := s.index[name]
	if !ok {
		return Entry{}, false
	}
	return s.entries[pos], true
}

// Entries returns a copy of all entries in config order.
func (s *Set) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Each calls fn for every entry in config order until fn returns false.
func (s *Set) Each(fn func(Entry) bool) {
	for _, e := range s.entries {
		if !fn(e) {
			return
		}
	}
}

// MatchWait returns the first entry whose discussion chat is chatID.
func (s *Set) MatchWait(chatID string) (Entry, bool) {
	chatID = normalizeID(chatID)
	for _, e := range s.entries {
		if e.WaitID == chatID {
			return e, true
		}
	}
	return Entry{}, false
}

// normalizeID trims id and rewrites numeric IDs in canonical form so that
// " -100123" and "-100123" refer to the same chat. Other IDs, such as
// @usernames, are only trimmed.
func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return id
}
