package bot

import "restobot/internal/keyboards"

// Inbound events, abstracted from the chat transport.

type UserIdentified struct {
	ChatID    int64
	FirstName string
	LastName  string
	Username  string
}

type ButtonAction struct {
	ChatID    int64
	FirstName string
	Type      string
	Params    []string
}

type TextMessage struct {
	ChatID    int64
	FirstName string
	Text      string
}

// Outbound effects, rendered by the transport.

type EffectKind string

const (
	// EffectReply is a full message with an optional keyboard.
	EffectReply EffectKind = "reply"
	// EffectNotify is a transient acknowledgment (toast-style).
	EffectNotify EffectKind = "notify"
)

type Effect struct {
	Kind     EffectKind         `json:"kind"`
	Text     string             `json:"text"`
	Keyboard keyboards.Keyboard `json:"keyboard,omitempty"`
}

func reply(text string, kb keyboards.Keyboard) Effect {
	return Effect{Kind: EffectReply, Text: text, Keyboard: kb}
}

func notify(text string) Effect {
	return Effect{Kind: EffectNotify, Text: text}
}
