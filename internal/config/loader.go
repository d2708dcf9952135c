package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigNotFound is returned when the path is empty or the file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrConfigParse is returned when the file is not valid JSON or YAML.
	ErrConfigParse = errors.New("config file malformed")
)

// LoadChannels reads the channel configuration at path.
func LoadChannels(path string) (*ChannelsFile, error) {
	var f ChannelsFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadMessages reads the messages configuration at path.
func LoadMessages(path string) (*MessagesConfig, error) {
	var m MessagesConfig
	if err := decodeFile(path, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadChannelsOrEmpty is LoadChannels that logs a warning and returns nil
// instead of failing. A nil file builds an empty chat set.
func LoadChannelsOrEmpty(path string) *ChannelsFile {
	f, err := LoadChannels(path)
	if err != nil {
		slog.Warn("config: channel config unavailable", "path", path, "err", err)
		return nil
	}
	return f
}

// LoadMessagesOrEmpty is LoadMessages that logs a warning and returns nil.
// An empty path is not reported: the messages file is optional.
func LoadMessagesOrEmpty(path string) *MessagesConfig {
	if path == "" {
		return nil
	}
	m, err := LoadMessages(path)
	if err != nil {
		slog.Warn("config: messages config unavailable", "path", path, "err", err)
		return nil
	}
	return m
}

func decodeFile(path string, v any) error {
	if path == "" {
		return fmt.Errorf("%w: no path configured", ErrConfigNotFound)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, v)
	} else {
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
