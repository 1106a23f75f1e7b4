// Package discord mirrors the battle log into a Discord channel
package discord

//go:generate mockgen -destination=mock/mock_sender.go -package=mockdiscord -source=notifier.go

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-battlemap/internal/events"
)

const (
	// ListenerID identifies the notifier on the event bus
	ListenerID = "discord-notifier"

	queueSize = 32
	// Discord rejects messages longer than this
	maxMessageLength = 2000
)

// Sender is the part of a discordgo session the notifier needs
type Sender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Config holds the notifier dependencies
type Config struct {
	Sender    Sender // Required
	ChannelID string // Required
	Logger    *zap.Logger
}

// Notifier posts resolved and failed turns to a channel. Messages are
// queued so a slow Discord never holds up the session.
type Notifier struct {
	sender    Sender
	channelID string
	queue     chan string
	logger    *zap.Logger
}

// New creates a notifier
func New(cfg *Config) *Notifier {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if cfg.Sender == nil {
		panic("discord sender is required")
	}
	if cfg.ChannelID == "" {
		panic("channel id is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		sender:    cfg.Sender,
		channelID: cfg.ChannelID,
		queue:     make(chan string, queueSize),
		logger:    logger,
	}
}

// Subscribe registers the notifier for turn events
func (n *Notifier) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.ListenerFunc(ListenerID, 200, n.handle),
		events.EventTypeTurnResolved,
		events.EventTypeTurnFailed,
	)
}

func (n *Notifier) handle(e events.Event) error {
	content := Format(e)
	if content == "" {
		return nil
	}
	select {
	case n.queue <- content:
	default:
		n.logger.Warn("discord queue full, dropping message")
	}
	return nil
}

// Run sends queued messages until ctx is done
func (n *Notifier) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case content := <-n.queue:
			if _, err := n.sender.ChannelMessageSend(n.channelID, content); err != nil {
				n.logger.Warn("failed to post battle log to discord",
					zap.String("channel", n.channelID),
					zap.Error(err),
				)
			}
		}
	}
}

// Format renders an event as a channel message; empty for events that
// are not posted
func Format(e events.Event) string {
	var b strings.Builder
	switch ev := e.(type) {
	case *events.TurnResolvedEvent:
		b.WriteString("📜 ")
		b.WriteString(ev.Message)
		if ev.Current != "" {
			fmt.Fprintf(&b, "\n➡️ Next up: **%s**", ev.Current)
		}
	case *events.TurnFailedEvent:
		fmt.Fprintf(&b, "⚠️ Turn could not be resolved (%s): %s", ev.Code, ev.Reason)
	default:
		return ""
	}

	out := []rune(b.String())
	if len(out) > maxMessageLength {
		return string(out[:maxMessageLength-3]) + "..."
	}
	return string(out)
}
