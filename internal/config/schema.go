// Package config defines the configuration documents read by chanrelay.
//
// Two files are supported. The channel file lists the channels to announce
// into and the discussion chat linked to each:
//
//	{ "channels": [ { "name": "A", "id": 111,
//	    "chat": { "chat_id": 222, "chat_name": "Disc-A" } } ] }
//
// The optional messages file switches the relay to photo announcements and
// multi-message replies:
//
//	{ "post_text": "…", "post_image_path": "post.jpg",
//	  "chat_messages": [ { "reply_text": "…", "reply_image_path": "r.jpg" } ] }
//
// Both may also be written as YAML with the same keys.
package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ID is a platform chat identifier. The files may carry IDs as JSON numbers
// or strings; ID keeps the exact textual form either way.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or string, got %s", data)
	}
	*id = ID(n.String())
	return nil
}

func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*id = ""
		return nil
	}
	*id = ID(node.Value)
	return nil
}

// ChannelsFile is the parsed channel configuration.
type ChannelsFile struct {
	Channels []ChannelEntry `json:"channels" yaml:"channels"`
}

// ChannelEntry describes one announcement channel.
type ChannelEntry struct {
	Name string          `json:"name" yaml:"name"`
	ID   ID              `json:"id" yaml:"id"` // chat the announcement is posted to
	Chat *DiscussionChat `json:"chat" yaml:"chat"`
}

// DiscussionChat is the chat linked to a channel where replies land.
type DiscussionChat struct {
	ChatID   ID     `json:"chat_id" yaml:"chat_id"`
	ChatName string `json:"chat_name" yaml:"chat_name"`
}

// MessagesConfig holds the announcement and reply content used in photo mode.
type MessagesConfig struct {
	PostText      string        `json:"post_text" yaml:"post_text"`
	PostImagePath string        `json:"post_image_path" yaml:"post_image_path"`
	ChatMessages  []ChatMessage `json:"chat_messages" yaml:"chat_messages"`

	// OnlyConfiguredChats restricts replies to configured discussion chats.
	// When false every inbound message gets the full reply sequence.
	OnlyConfiguredChats bool `json:"only_configured_chats,omitempty" yaml:"only_configured_chats"`
}

// ChatMessage is one reply sent in response to an inbound message.
type ChatMessage struct {
	ReplyText      string `json:"reply_text" yaml:"reply_text"`
	ReplyImagePath string `json:"reply_image_path,omitempty" yaml:"reply_image_path"`
}

// HasImage reports whether the reply is sent as a photo.
func (m ChatMessage) HasImage() bool { return m.ReplyImagePath != "" }
