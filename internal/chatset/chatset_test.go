package chatset

import (
	"reflect"
	"testing"

	"github.com/crystaldolphin/chanrelay/internal/config"
)

func channel(name string, send, wait config.ID, display string) config.ChannelEntry {
	return config.ChannelEntry{
		Name: name,
		ID:   send,
		Chat: &config.DiscussionChat{ChatID: wait, ChatName: display},
	}
}

func TestBuild_NilFile(t *testing.T) {
	s := Build(nil)
	if s.Len() != 0 {
		t.Fatalf("expected empty set, got %d entries", s.Len())
	}
	if _, ok := s.MatchWait("222"); ok {
		t.Error("expected no match on empty set")
	}
}

func TestBuild_NoChannels(t *testing.T) {
	if s := Build(&config.ChannelsFile{}); s.Len() != 0 {
		t.Fatalf("expected empty set, got %d entries", s.Len())
	}
}

func TestBuild_Scenario(t *testing.T) {
	s := Build(&config.ChannelsFile{Channels: []config.ChannelEntry{
		channel("A", "111", "222", "Disc-A"),
	}})

	got, ok := s.Get("A")
	if !ok {
		t.Fatal("expected entry A")
	}
	want := Entry{Name: "A", SendID: "111", WaitID: "222", DisplayName: "Disc-A"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestBuild_NEntriesInOrder(t *testing.T) {
	file := &config.ChannelsFile{Channels: []config.ChannelEntry{
		channel("c", "3", "30", ""),
		channel("a", "1", "10", ""),
		channel("b", "2", "20", ""),
	}}
	s := Build(file)
	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}
	var names []string
	for _, e := range s.Entries() {
		names = append(names, e.Name)
	}
	if !reflect.DeepEqual(names, []string{"c", "a", "b"}) {
		t.Errorf("expected config order, got %v", names)
	}
}

func TestBuild_DuplicateNameLastWins(t *testing.T) {
	s := Build(&config.ChannelsFile{Channels: []config.ChannelEntry{
		channel("A", "1", "10", ""),
		channel("B", "2", "20", ""),
		channel("A", "3", "30", ""),
	}})
	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
	entries := s.Entries()
	if entries[0].Name != "A" || entries[0].SendID != "3" {
		t.Errorf("expected A replaced in first position, got %+v", entries[0])
	}
}

func TestBuild_SkipsIncompleteEntries(t *testing.T) {
	s := Build(&config.ChannelsFile{Channels: []config.ChannelEntry{
		{Name: "no-chat", ID: "1"},
		channel("no-send", "", "20", ""),
		channel("no-wait", "3", "", ""),
		channel("ok", "4", "40", ""),
	}})
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}
	if _, ok := s.Get("ok"); !ok {
		t.Error("expected complete entry to survive")
	}
}

func TestBuild_Idempotent(t *testing.T) {
	file := &config.ChannelsFile{Channels: []config.ChannelEntry{
		channel("A", "111", "222", "Disc-A"),
		channel("B", "@news", "-100500", ""),
	}}
	first, second := Build(file), Build(file)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical sets, got %+v and %+v", first, second)
	}
}

func TestMatchWait(t *testing.T) {
	s := Build(&config.ChannelsFile{Channels: []config.ChannelEntry{
		channel("A", "111", "222", "Disc-A"),
		channel("B", "333", "444", ""),
	}})
	e, ok := s.MatchWait("444")
	if !ok || e.Name != "B" {
		t.Fatalf("expected match on B, got %+v %v", e, ok)
	}
	if e.Label() != "B" {
		t.Errorf("expected label to fall back to name, got %q", e.Label())
	}
	if _, ok := s.MatchWait("111"); ok {
		t.Error("send id must not match as a wait target")
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	s := Build(&config.ChannelsFile{Channels: []config.ChannelEntry{channel("A", "1", "2", "")}})
	entries := s.Entries()
	entries[0].SendID = "mutated"
	if got, _ := s.Get("A"); got.SendID != "1" {
		t.Errorf("set was mutated through Entries: %+v", got)
	}
}

func TestEach_StopsEarly(t *testing.T) {
	s := Build(&config.ChannelsFile{Channels: []config.ChannelEntry{
		channel("A", "1", "2", ""),
		channel("B", "3", "4", ""),
		channel("C", "5", "6", ""),
	}})
	var seen []string
	s.Each(func(e Entry) bool {
		seen = append(seen, e.Name)
		return e.Name != "B"
	})
	if !reflect.DeepEqual(seen, []string{"A", "B"}) {
		t.Errorf("expected [A B], got %v", seen)
	}
}

func TestBuild_NormalizesIDs(t *testing.T) {
	s := Build(&config.ChannelsFile{Channels: []config.ChannelEntry{
		channel("A", " -100111 ", " -100222", "Disc-A"),
		channel("B", "@news", "+0333", ""),
		channel("C", "1", "   ", ""),
	}})
	if s.Len() != 2 {
		t.Fatalf("expected blank wait id to be skipped, got %d entries", s.Len())
	}
	a, _ := s.Get("A")
	if a.SendID != "-100111" || a.WaitID != "-100222" {
		t.Errorf("unexpected ids %+v", a)
	}
	b, _ := s.Get("B")
	if b.SendID != "@news" || b.WaitID != "333" {
		t.Errorf("unexpected ids %+v", b)
	}

	if e, ok := s.MatchWait("-100222"); !ok || e.Name != "A" {
		t.Errorf("expected padded config id to match, got %+v %v", e, ok)
	}
	if e, ok := s.MatchWait("333"); !ok || e.Name != "B" {
		t.Errorf("expected numeric match, got %+v %v", e, ok)
	}
}
