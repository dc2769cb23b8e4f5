package config

import (
	"bytes"
	"testing"
	"time"
)

const testYAML = `
app:
  enabled: true
  name: "goverify"
  port: 8080
  ratio: 0.25
  timeout_seconds: 30
  ttl_minutes: 10
  retention_hours: 24
  secret_b64: "aGVsbG8="
  hosts: "a,b,c"
`

func newTestViper(t *testing.T) *Viper {
	t.Helper()

	cfg, err := NewViperFromBytes("yaml", []byte(testYAML))
	if err != nil {
		t.Fatalf("new viper: %v", err)
	}
	return cfg
}

func TestNewViperFromBytesRequiresType(t *testing.T) {
	if _, err := NewViperFromBytes("", []byte("a: 1")); err == nil {
		t.Fatal("expected error for empty config type")
	}
}

func TestViperGetters(t *testing.T) {
	cfg := newTestViper(t)

	if !cfg.GetBool("app.enabled") {
		t.Fatal("expected app.enabled to be true")
	}
	if got := cfg.GetString("app.name"); got != "goverify" {
		t.Fatalf("expected name %q, got %q", "goverify", got)
	}
	if got := cfg.GetInt("app.port"); got != 8080 {
		t.Fatalf("expected port 8080, got %d", got)
	}
	if got := cfg.GetInt32("app.port"); got != 8080 {
		t.Fatalf("expected port 8080, got %d", got)
	}
	if got := cfg.GetInt64("app.port"); got != 8080 {
		t.Fatalf("expected port 8080, got %d", got)
	}
	if got := cfg.GetFloat64("app.ratio"); got != 0.25 {
		t.Fatalf("expected ratio 0.25, got %v", got)
	}
}

func TestViperDurationGetters(t *testing.T) {
	cfg := newTestViper(t)

	if got := cfg.GetSecond("app.timeout_seconds"); got != 30*time.Second {
		t.Fatalf("expected 30s, got %v", got)
	}
	if got := cfg.GetMinute("app.ttl_minutes"); got != 10*time.Minute {
		t.Fatalf("expected 10m, got %v", got)
	}
	if got := cfg.GetHour("app.retention_hours"); got != 24*time.Hour {
		t.Fatalf("expected 24h, got %v", got)
	}
}

func TestViperGetBinary(t *testing.T) {
	cfg := newTestViper(t)

	if got := cfg.GetBinary("app.secret_b64"); !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("expected decoded %q, got %q", "hello", got)
	}
	if got := cfg.GetBinary("app.name"); got != nil {
		t.Fatalf("expected nil for invalid base64, got %q", got)
	}
}

func TestViperGetArray(t *testing.T) {
	cfg := newTestViper(t)

	got := cfg.GetArray("app.hosts")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
