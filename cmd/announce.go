package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/chanrelay/internal/container"
)

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Post the announcement into every channel once and exit",
	RunE:  runAnnounce,
}

func runAnnounce(_ *cobra.Command, _ []string) error {
	if err := settings.ValidateToken(); err != nil {
		return err
	}

	c, err := container.New(settings)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report := c.Announcer().Announce(ctx)
	fmt.Printf("%s Sent %d, failed %d, skipped %d\n", logo, report.Sent, report.Failed, report.Skipped)
	return report.Err()
}
