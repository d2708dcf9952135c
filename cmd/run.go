package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/crystaldolphin/chanrelay/internal/container"
	"github.com/crystaldolphin/chanrelay/internal/metrics"
)

var runDuration time.Duration

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Announce into every channel, then reply in discussion chats",
	RunE:  runRelay,
}

func init() {
	runCmd.Flags().DurationVarP(&runDuration, "duration", "d", 0, "Stop after this long (0 runs until interrupted)")
}

func runRelay(_ *cobra.Command, _ []string) error {
	if err := settings.ValidateToken(); err != nil {
		return err
	}

	c, err := container.New(settings)
	if err != nil {
		return err
	}
	defer c.Close()

	// Graceful shutdown context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if runDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runDuration)
		defer cancel()
	}

	fmt.Printf("%s Announcing to %d channel(s)...\n", logo, c.ChatSets().Len())
	report := c.Announcer().Announce(ctx)
	fmt.Printf("✓ Sent %d, failed %d, skipped %d\n", report.Sent, report.Failed, report.Skipped)
	if err := report.Err(); err != nil {
		slog.Warn("run: announcement incomplete", "err", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return c.Channel().Start(gctx) })
	g.Go(func() error { return c.Responder().Run(gctx, c.MessageBus().InboundChan()) })
	g.Go(func() error { return c.Heartbeat().Start(gctx) })
	g.Go(func() error { return metrics.Serve(gctx, settings.MetricsAddr) })
	if sched := c.Scheduler(); sched != nil {
		g.Go(func() error { return sched.Start(gctx) })
	}

	fmt.Printf("%s Relay running (%s replies). Press Ctrl+C to stop.\n", logo, c.Responder().Plan().Mode)

	if err := g.Wait(); err != nil && !isShutdown(err) {
		fmt.Fprintf(os.Stderr, "relay error: %v\n", err)
		return err
	}
	fmt.Println("\nShutdown complete.")
	return nil
}

func isShutdown(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
