package wire

import (
	"net/url"
	"reflect"
	"testing"
)

func TestFormEncodePreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	f := NewForm()
	f.Set("token", "app-token")
	f.Set("user", "user-key")
	f.Set("message", "hello world")

	want := "token=app-token&user=user-key&message=hello+world"
	if got := f.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestFormSetOverwriteKeepsPosition(t *testing.T) {
	t.Parallel()

	f := NewForm()
	f.Set("token", "first")
	f.Set("user", "user-key")
	f.Set("token", "second")

	if got := f.Get("token"); got != "second" {
		t.Fatalf("Get(token) = %q, want %q", got, "second")
	}

	wantKeys := []string{"token", "user"}
	if got := f.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Fatalf("Keys() = %v, want %v", got, wantKeys)
	}
}

func TestFormEncodeEscapesValues(t *testing.T) {
	t.Parallel()

	f := NewForm()
	f.Set("message", "50% done & counting")
	f.Set("url", "https://example.com/path?a=1&b=2")

	encoded := f.Encode()

	parsed, err := url.ParseQuery(encoded)
	if err != nil {
		t.Fatalf("ParseQuery() error = %v", err)
	}
	if got := parsed.Get("message"); got != "50% done & counting" {
		t.Fatalf("message round-trip = %q", got)
	}
	if got := parsed.Get("url"); got != "https://example.com/path?a=1&b=2" {
		t.Fatalf("url round-trip = %q", got)
	}
}

func TestFormHasAndGetMissingKey(t *testing.T) {
	t.Parallel()

	f := NewForm()
	f.Set("device", "")

	if !f.Has("device") {
		t.Fatal("Has(device) = false, want true")
	}
	if f.Has("sound") {
		t.Fatal("Has(sound) = true, want false")
	}
	if got := f.Get("sound"); got != "" {
		t.Fatalf("Get(sound) = %q, want empty", got)
	}
}
