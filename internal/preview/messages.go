package preview

import (
	"encoding/json"
	"fmt"

	"github.com/skylineapps/paywallkit/internal/viewmodel"
)

// Message types on the preview wire.
const (
	typeFrame  = "frame"
	typeEvent  = "event"
	typeTap    = "tap"
	typeScroll = "scroll"
	typePage   = "page"
	typeBack   = "back"
)

// frameMessage is one rendered pass pushed to every connected tool.
type frameMessage struct {
	Type      string        `json:"type"`
	Seq       uint64        `json:"seq"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Frame     string        `json:"frame"`
	Scroll    int           `json:"scroll"`
	MaxScroll int           `json:"max_scroll"`
	Loading   bool          `json:"loading"`
	Hotspots  []hotspotInfo `json:"hotspots,omitempty"`
}

// hotspotInfo describes one tappable region of the last frame. Index is the
// 1-based position a tap command refers to.
type hotspotInfo struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// eventMessage mirrors a paywall lifecycle event to connected tools.
type eventMessage struct {
	Type        string `json:"type"`
	Kind        string `json:"kind"`
	SessionID   string `json:"session_id"`
	PlacementID string `json:"placement_id"`
	ProductID   string `json:"product_id,omitempty"`
	GroupID     string `json:"group_id,omitempty"`
	TimerID     string `json:"timer_id,omitempty"`
	CustomID    string `json:"custom_id,omitempty"`
	URL         string `json:"url,omitempty"`
	Error       string `json:"error,omitempty"`
}

func encodeEvent(e viewmodel.Event) eventMessage {
	msg := eventMessage{
		Type:        typeEvent,
		Kind:        e.Kind.String(),
		SessionID:   e.SessionID,
		PlacementID: e.PlacementID,
		ProductID:   e.ProductID,
		GroupID:     e.GroupID,
		TimerID:     e.TimerID,
		CustomID:    e.CustomID,
		URL:         e.URL,
	}
	if e.Err != nil {
		msg.Error = e.Err.Error()
	}
	return msg
}

// command is an inbound control message from a design tool.
type command struct {
	Type string `json:"type"`
	// Hotspot is the 1-based hotspot position for tap commands.
	Hotspot int `json:"hotspot,omitempty"`
	// Delta is the row or page offset for scroll and page commands.
	Delta int `json:"delta,omitempty"`
}

func decodeCommand(data []byte) (command, error) {
	var cmd command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return command{}, fmt.Errorf("malformed command: %w", err)
	}
	switch cmd.Type {
	case typeTap, typeScroll, typePage, typeBack:
		return cmd, nil
	default:
		return command{}, fmt.Errorf("unknown command type %q", cmd.Type)
	}
}
