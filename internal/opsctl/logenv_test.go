package opsctl

import "testing"

func TestEnvStr(t *testing.T) {
	t.Setenv("OPSCTL_TEST_STR", "hello")
	if got := envStr("OPSCTL_TEST_STR", "def"); got != "hello" {
		t.Fatalf("envStr set: got %q", got)
	}
	if got := envStr("OPSCTL_TEST_STR_MISSING", "def"); got != "def" {
		t.Fatalf("envStr default: got %q", got)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("OPSCTL_TEST_INT", "8443")
	if got := envInt("OPSCTL_TEST_INT", 1); got != 8443 {
		t.Fatalf("envInt set: got %d", got)
	}
	t.Setenv("OPSCTL_TEST_INT", "not-a-number")
	if got := envInt("OPSCTL_TEST_INT", 7); got != 7 {
		t.Fatalf("envInt garbage: got %d", got)
	}
	if got := envInt("OPSCTL_TEST_INT_MISSING", 9); got != 9 {
		t.Fatalf("envInt default: got %d", got)
	}
}

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel("info")
	SetLogLevel("debug")
	if currentLevel != levelDebug {
		t.Fatalf("debug: got %v", currentLevel)
	}
	SetLogLevel("warning")
	if currentLevel != levelWarn {
		t.Fatalf("warning alias: got %v", currentLevel)
	}
	SetLogLevel("bogus")
	if currentLevel != levelInfo {
		t.Fatalf("unknown level should fall back to info: got %v", currentLevel)
	}
}
