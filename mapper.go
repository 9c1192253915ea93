package pushover

import (
	"strconv"
	"strings"
	"time"

	"github.com/kursadbilgin/pushover-client/internal/wire"
)

// encodeMessage flattens a validated message into the wire form for one
// recipient. Key emission follows the API field order, so the encoded
// body is stable for a given message.
func encodeMessage(token, user string, m Message, devices []string) *wire.Form {
	f := wire.NewForm()

	f.Set("token", token)
	f.Set("user", user)
	f.Set("message", m.Message)

	if m.Title != "" {
		f.Set("title", m.Title)
	}

	if m.Link != nil {
		f.Set("url", m.Link.URL)
		if m.Link.Title != "" {
			f.Set("url_title", m.Link.Title)
		}
	}

	if m.Priority != PriorityNormal {
		f.Set("priority", strconv.Itoa(int(m.Priority)))
	}
	if m.Priority == PriorityEmergency && m.Emergency != nil {
		f.Set("repeat", seconds(m.Emergency.Repeat))
		f.Set("expire", seconds(m.Emergency.Expire))
		if m.Emergency.Callback != "" {
			f.Set("callback", m.Emergency.Callback)
		}
		if len(m.Emergency.Tags) > 0 {
			f.Set("tags", strings.Join(m.Emergency.Tags, ","))
		}
	}

	if m.Sound != "" {
		f.Set("sound", m.Sound)
	}
	if !m.Timestamp.IsZero() {
		f.Set("timestamp", strconv.FormatInt(m.Timestamp.Unix(), 10))
	}
	if m.HTML {
		f.Set("html", "1")
	}
	if m.Monospace {
		f.Set("monospace", "1")
	}
	if m.TTL > 0 {
		f.Set("ttl", seconds(m.TTL))
	}

	if len(devices) > 0 {
		f.Set("device", strings.Join(devices, ","))
	}

	return f
}

func seconds(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Second), 10)
}
