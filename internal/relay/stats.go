package relay

import (
	"sync/atomic"

	"github.com/crystaldolphin/chanrelay/internal/metrics"
)

// Stats counts relay activity. Each increment is mirrored to Prometheus.
type Stats struct {
	announced      atomic.Int64
	announceFailed atomic.Int64
	inbound        atomic.Int64
	replied        atomic.Int64
	replyFailed    atomic.Int64
}

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	Announced      int64
	AnnounceFailed int64
	Inbound        int64
	Replied        int64
	ReplyFailed    int64
}

func NewStats() *Stats { return &Stats{} }

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Announced:      s.announced.Load(),
		AnnounceFailed: s.announceFailed.Load(),
		Inbound:        s.inbound.Load(),
		Replied:        s.replied.Load(),
		ReplyFailed:    s.replyFailed.Load(),
	}
}

func (s *Stats) announceResult(err error) {
	if err != nil {
		s.announceFailed.Add(1)
		metrics.IncAnnouncement("error")
		return
	}
	s.announced.Add(1)
	metrics.IncAnnouncement("ok")
}

func (s *Stats) inboundSeen() {
	s.inbound.Add(1)
	metrics.IncInbound()
}

func (s *Stats) replyResult(kind string, err error) {
	if err != nil {
		s.replyFailed.Add(1)
		metrics.IncReply(kind, "error")
		return
	}
	s.replied.Add(1)
	metrics.IncReply(kind, "ok")
}
