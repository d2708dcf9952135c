// Package cmd implements the chanrelay CLI using cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/chanrelay/internal/config"
)

const version = "0.1.0"
const logo = "📣"

var (
	configPath   string
	messagesPath string
	verbose      bool

	// settings is resolved once per invocation by the root pre-run hook.
	settings config.Settings
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "chanrelay",
	Short: logo + " chanrelay — Telegram channel announcement relay",
	Long: logo + " chanrelay posts an announcement into each configured Telegram channel\n" +
		"and replies to messages in the channels' discussion chats.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Channel config file (overrides CONFIG_FILE_PATH)")
	rootCmd.PersistentFlags().StringVarP(&messagesPath, "messages", "m", "", "Messages config file (overrides MESSAGES_FILE_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(announceCmd)
	rootCmd.AddCommand(channelsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func loadSettings(_ *cobra.Command, _ []string) error {
	s, err := config.LoadSettings(config.DotEnvFile)
	if err != nil {
		return err
	}
	if configPath != "" {
		s.ConfigPath = configPath
	}
	if messagesPath != "" {
		s.MessagesPath = messagesPath
	}
	settings = s

	level := s.Level()
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
