package internal

import (
	"strings"
	"testing"
	"time"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFeedConfig_RequiresExactlyOneSource(t *testing.T) {
	cfg := FeedConfig{FirstDay: "2026-09-14"}
	if err := cfg.Validate(); err == nil {
		t.Error("neither path nor url should fail")
	}

	cfg = FeedConfig{Path: "./programme.ics", URL: "https://example.com/feed.ics", FirstDay: "2026-09-14"}
	if err := cfg.Validate(); err == nil {
		t.Error("both path and url should fail")
	}

	cfg = FeedConfig{URL: "https://example.com/feed.ics", FirstDay: "2026-09-14"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("url only should pass: %v", err)
	}
}

func TestFeedConfig_FirstDayMustBeMonday(t *testing.T) {
	cfg := FeedConfig{Path: "./programme.ics", FirstDay: "2026-09-15"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("a Tuesday first_day should fail")
	}
	if !strings.Contains(err.Error(), "not a Monday") {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.FirstDay = "not-a-date"
	if err := cfg.Validate(); err == nil {
		t.Error("unparseable first_day should fail")
	}
}

func TestFeedConfig_FirstDayDate(t *testing.T) {
	cfg := FeedConfig{Path: "./programme.ics", FirstDay: "2026-09-14"}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	got := cfg.FirstDayDate()
	if got.Year() != 2026 || got.Month() != time.September || got.Day() != 14 {
		t.Errorf("FirstDayDate() = %v", got)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}
