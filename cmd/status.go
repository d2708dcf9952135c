package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/chanrelay/internal/chatset"
	"github.com/crystaldolphin/chanrelay/internal/config"
	"github.com/crystaldolphin/chanrelay/internal/relay"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show chanrelay status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	fmt.Printf("%s chanrelay Status\n\n", logo)

	fmt.Printf("Token:     %s %s\n", settings.TokenHint(), yesNo(settings.ValidateToken() == nil))
	fmt.Printf("Channels:  %s %s\n", orUnset(settings.ConfigPath), fileMark(settings.ConfigPath))
	fmt.Printf("Messages:  %s %s\n", orUnset(settings.MessagesPath), fileMark(settings.MessagesPath))

	sets := chatset.Build(config.LoadChannelsOrEmpty(settings.ConfigPath))
	fmt.Printf("\nConfigured channels: %d\n", sets.Len())

	mode := relay.ReplySingle
	if msgs := config.LoadMessagesOrEmpty(settings.MessagesPath); msgs != nil {
		mode = relay.ReplySequence
		fmt.Printf("Post:      photo %s, caption %q\n", orUnset(msgs.PostImagePath), msgs.PostText)
		fmt.Printf("Replies:   %d per message (only configured chats: %s)\n",
			len(msgs.ChatMessages), yesNo(msgs.OnlyConfiguredChats))
	} else {
		fmt.Printf("Post:      %q\n", settings.AnnounceTemplate)
		fmt.Printf("Reply:     %q\n", settings.ReplyText)
	}
	fmt.Printf("Mode:      %s\n", mode)

	fmt.Println()
	fmt.Printf("Schedule:  %s\n", orUnset(settings.AnnounceSchedule))
	fmt.Printf("Ledger:    %s\n", orDefault(settings.LedgerPath, "in memory"))
	fmt.Printf("Metrics:   %s\n", orDefault(settings.MetricsAddr, "disabled"))
	fmt.Printf("Heartbeat: every %s\n", settings.HeartbeatInterval)
	return nil
}

func fileMark(path string) string {
	if path == "" {
		return ""
	}
	_, err := os.Stat(path)
	return yesNo(err == nil)
}

func orUnset(s string) string {
	return orDefault(s, "(not configured)")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
