package config

import (
	"testing"
	"time"
)

func TestPasswordPolicyValidate(t *testing.T) {
	policy := PasswordPolicy{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumber:    true,
		RequireSpecial:   true,
	}

	if err := policy.Validate("short"); err == nil {
		t.Fatalf("expected error for short password")
	}
	if err := policy.Validate("lowercase1!"); err == nil {
		t.Fatalf("expected error for missing uppercase")
	}
	if err := policy.Validate("UPPERCASE1!"); err == nil {
		t.Fatalf("expected error for missing lowercase")
	}
	if err := policy.Validate("NoNumber!"); err == nil {
		t.Fatalf("expected error for missing number")
	}
	if err := policy.Validate("NoSpecial1"); err == nil {
		t.Fatalf("expected error for missing special")
	}
	if err := policy.Validate("GoodPass1!"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	if got := getEnv("TEST_STRING", "default"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
	if got := getEnv("MISSING_STRING", "default"); got != "default" {
		t.Fatalf("expected default, got %q", got)
	}

	t.Setenv("TEST_DURATION", "30")
	if got := getDurationEnv("TEST_DURATION", 5*time.Minute); got != 30*time.Minute {
		t.Fatalf("expected 30m, got %v", got)
	}
	t.Setenv("TEST_DURATION", "invalid")
	if got := getDurationEnv("TEST_DURATION", 5*time.Minute); got != 5*time.Minute {
		t.Fatalf("expected default duration, got %v", got)
	}

	t.Setenv("TEST_BOOL", "true")
	if got := getBoolEnv("TEST_BOOL", false); got != true {
		t.Fatalf("expected true, got %v", got)
	}
	if got := getBoolEnv("MISSING_BOOL", true); got != true {
		t.Fatalf("expected default true, got %v", got)
	}

	t.Setenv("TEST_INT", "12")
	if got := getIntEnv("TEST_INT", 4); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	t.Setenv("TEST_INT", "nope")
	if got := getIntEnv("TEST_INT", 4); got != 4 {
		t.Fatalf("expected default 4, got %d", got)
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")
	t.Setenv("MYSQL_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when ACCESS_TOKEN_SECRET is missing")
	}

	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when REFRESH_TOKEN_SECRET is missing")
	}

	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when MYSQL_DSN is missing")
	}

	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/commerce?parseTime=true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.AccessTokenSecret != "access-secret" {
		t.Fatalf("unexpected access secret %q", cfg.AccessTokenSecret)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("unexpected default access TTL %v", cfg.AccessTokenTTL)
	}
	if cfg.CustomerOrigin != "http://localhost:3000" {
		t.Fatalf("unexpected customer origin %q", cfg.CustomerOrigin)
	}
}
