package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/chanrelay/internal/chatset"
	"github.com/crystaldolphin/chanrelay/internal/config"
	"github.com/crystaldolphin/chanrelay/internal/shared/stringutils"
)

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List configured channels and their discussion chats",
	RunE: func(_ *cobra.Command, _ []string) error {
		sets := chatset.Build(config.LoadChannelsOrEmpty(settings.ConfigPath))
		if sets.Len() == 0 {
			fmt.Println("No channels configured.")
			return nil
		}

		fmt.Printf("%-20s %-16s %-16s %s\n", "Channel", "Send ID", "Discussion ID", "Discussion")
		fmt.Println(strings.Repeat("-", 72))
		sets.Each(func(e chatset.Entry) bool {
			fmt.Printf("%-20s %-16s %-16s %s\n",
				truncStr(e.Name, 20), truncStr(e.SendID, 16), truncStr(e.WaitID, 16), e.Label())
			return true
		})
		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}

// truncStr shortens s to at most max runes for table columns.
func truncStr(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return stringutils.Truncate(s, max-3)
}
