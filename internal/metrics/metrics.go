// Package metrics exposes relay counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	announcements = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chanrelay_announcements_total",
		Help: "Announcement sends by outcome",
	}, []string{"status"})
	inboundMsgs = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chanrelay_inbound_total",
		Help: "Inbound messages handled",
	})
	replies = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chanrelay_replies_total",
		Help: "Reply sends by kind and outcome",
	}, []string{"kind", "status"})
)

func init() {
	prometheus.MustRegister(announcements, inboundMsgs, replies)
}

// Serve runs a Prometheus handler on listen until ctx is cancelled.
// An empty listen address disables the server and returns immediately.
func Serve(ctx context.Context, listen string) error {
	if listen == "" {
		return nil
	}
	ln, err := net.Listen("tcp", listen)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Handler: mux}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	slog.Info("metrics: serving", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func IncAnnouncement(status string) { announcements.WithLabelValues(status).Inc() }

func IncInbound() { inboundMsgs.Inc() }

func IncReply(kind, status string) { replies.WithLabelValues(kind, status).Inc() }
