package pushover

import (
	"errors"
	"testing"
	"time"
)

func validEmergency() *Emergency {
	return &Emergency{
		Repeat: MinEmergencyRepeat,
		Expire: MaxEmergencyExpire,
	}
}

func TestMessageValidate(t *testing.T) {
	t.Parallel()

	base := Message{Message: "backup finished"}

	tests := []struct {
		name     string
		mutate   func(*Message)
		wantPath string
	}{
		{
			name:   "minimal valid message",
			mutate: func(m *Message) {},
		},
		{
			name: "missing body",
			mutate: func(m *Message) {
				m.Message = ""
			},
			wantPath: "message",
		},
		{
			name: "body below minimum length",
			mutate: func(m *Message) {
				m.Message = "hi"
			},
			wantPath: "message",
		},
		{
			name: "priority out of range",
			mutate: func(m *Message) {
				m.Priority = Priority(3)
			},
			wantPath: "priority",
		},
		{
			name: "emergency without options",
			mutate: func(m *Message) {
				m.Priority = PriorityEmergency
			},
			wantPath: "emergency",
		},
		{
			name: "emergency options on normal priority",
			mutate: func(m *Message) {
				m.Emergency = validEmergency()
			},
			wantPath: "emergency",
		},
		{
			name: "emergency with boundary values",
			mutate: func(m *Message) {
				m.Priority = PriorityEmergency
				m.Emergency = validEmergency()
			},
		},
		{
			name: "repeat below minimum",
			mutate: func(m *Message) {
				m.Priority = PriorityEmergency
				m.Emergency = validEmergency()
				m.Emergency.Repeat = 29 * time.Second
			},
			wantPath: "emergency.repeat",
		},
		{
			name: "expire above maximum",
			mutate: func(m *Message) {
				m.Priority = PriorityEmergency
				m.Emergency = validEmergency()
				m.Emergency.Expire = 10801 * time.Second
			},
			wantPath: "emergency.expire",
		},
		{
			name: "expire unset",
			mutate: func(m *Message) {
				m.Priority = PriorityEmergency
				m.Emergency = validEmergency()
				m.Emergency.Expire = 0
			},
			wantPath: "emergency.expire",
		},
		{
			name: "invalid callback URL",
			mutate: func(m *Message) {
				m.Priority = PriorityEmergency
				m.Emergency = validEmergency()
				m.Emergency.Callback = "not a url"
			},
			wantPath: "emergency.callback",
		},
		{
			name: "valid callback URL",
			mutate: func(m *Message) {
				m.Priority = PriorityEmergency
				m.Emergency = validEmergency()
				m.Emergency.Callback = "https://example.com/ack"
			},
		},
		{
			name: "invalid link URL",
			mutate: func(m *Message) {
				m.Link = &Link{URL: "::not-a-url"}
			},
			wantPath: "link.url",
		},
		{
			name: "link without URL",
			mutate: func(m *Message) {
				m.Link = &Link{Title: "docs"}
			},
			wantPath: "link.url",
		},
		{
			name: "valid link with title",
			mutate: func(m *Message) {
				m.Link = &Link{URL: "https://x.test", Title: "X"}
			},
		},
		{
			name: "html and monospace together",
			mutate: func(m *Message) {
				m.HTML = true
				m.Monospace = true
			},
			wantPath: "html",
		},
		{
			name: "html alone",
			mutate: func(m *Message) {
				m.HTML = true
			},
		},
		{
			name: "monospace alone",
			mutate: func(m *Message) {
				m.Monospace = true
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			current := base
			tt.mutate(&current)

			err := current.Validate()
			if tt.wantPath == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}

			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Validate() error = %v, want ErrValidation", err)
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}

			found := false
			for _, v := range validationErr.Violations {
				if v.Path == tt.wantPath {
					found = true
					if v.Message == "" {
						t.Fatalf("violation %q has empty message", v.Path)
					}
				}
			}
			if !found {
				t.Fatalf("Violations = %v, want one at path %q", validationErr.Violations, tt.wantPath)
			}
		})
	}
}

func TestMessageValidateAccumulatesViolations(t *testing.T) {
	t.Parallel()

	msg := Message{
		Message:   "hi",
		Priority:  PriorityEmergency,
		Link:      &Link{URL: "::bad"},
		HTML:      true,
		Monospace: true,
	}

	err := msg.Validate()

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}

	wantPaths := []string{"message", "emergency", "link.url", "html"}
	for _, wantPath := range wantPaths {
		found := false
		for _, v := range validationErr.Violations {
			if v.Path == wantPath {
				found = true
			}
		}
		if !found {
			t.Fatalf("Violations = %v, missing path %q", validationErr.Violations, wantPath)
		}
	}

	if len(validationErr.Violations) < len(wantPaths) {
		t.Fatalf("violations = %d, want at least %d", len(validationErr.Violations), len(wantPaths))
	}
}
