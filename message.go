// Package pushover is a client for the Pushover message API
// (https://api.pushover.net). It validates a message against the API's
// documented field constraints, serializes it into the url-encoded form
// the API accepts, and fans a single message out to one or more
// recipients concurrently, collecting one delivery receipt per recipient.
package pushover

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the Pushover message priority level. The zero value is
// PriorityNormal, so an unset priority sends a normal message.
type Priority int

const (
	// PriorityLowest delivers silently and does not generate a notification.
	PriorityLowest Priority = -2
	// PriorityLow delivers without sound or vibration.
	PriorityLow Priority = -1
	// PriorityNormal is the default delivery behavior.
	PriorityNormal Priority = 0
	// PriorityHigh bypasses the recipient's quiet hours.
	PriorityHigh Priority = 1
	// PriorityEmergency repeats until acknowledged and requires Emergency
	// options on the message.
	PriorityEmergency Priority = 2
)

func (p Priority) String() string {
	switch p {
	case PriorityLowest:
		return "lowest"
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityEmergency:
		return "emergency"
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

func (p Priority) IsValid() bool {
	return p >= PriorityLowest && p <= PriorityEmergency
}

// ParsePriorityFromString accepts the level names used by the API docs
// ("lowest" through "emergency") as well as the numeric forms -2..2.
func ParsePriorityFromString(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowest", "-2":
		return PriorityLowest, nil
	case "low", "-1":
		return PriorityLow, nil
	case "normal", "0", "":
		return PriorityNormal, nil
	case "high", "1":
		return PriorityHigh, nil
	case "emergency", "2":
		return PriorityEmergency, nil
	}
	return 0, fmt.Errorf("%w: invalid priority %q", ErrValidation, s)
}

// Emergency option bounds enforced by the API.
const (
	MinEmergencyRepeat = 30 * time.Second
	MaxEmergencyExpire = 10800 * time.Second
)

// Link attaches a supplementary URL to a message. Title is optional; when
// empty only the URL is sent.
type Link struct {
	URL   string `json:"url" validate:"required,url"`
	Title string `json:"title,omitempty"`
}

// Emergency carries the re-alerting parameters required by
// PriorityEmergency messages.
type Emergency struct {
	// Repeat is how often the notification is re-sent until acknowledged.
	// Must be at least MinEmergencyRepeat.
	Repeat time.Duration `json:"repeat" validate:"min=30s"`
	// Expire is how long re-alerting continues. Must be positive and at
	// most MaxEmergencyExpire.
	Expire time.Duration `json:"expire" validate:"gt=0,lte=10800s"`
	// Callback is an optional URL the service calls when the notification
	// is acknowledged.
	Callback string `json:"callback,omitempty" validate:"omitempty,url"`
	// Tags are optional labels attached to the emergency receipt.
	Tags []string `json:"tags,omitempty"`
}

// Message is a single logical notification. Message (the body) is the
// only required field.
type Message struct {
	Message   string        `json:"message" validate:"required,min=3"`
	Title     string        `json:"title,omitempty"`
	Link      *Link         `json:"link,omitempty"`
	Priority  Priority      `json:"priority,omitempty"`
	Emergency *Emergency    `json:"emergency,omitempty"`
	Sound     string        `json:"sound,omitempty"`
	Timestamp time.Time     `json:"timestamp,omitzero"`
	HTML      bool          `json:"html,omitempty"`
	Monospace bool          `json:"monospace,omitempty"`
	TTL       time.Duration `json:"ttl,omitempty"`
}
