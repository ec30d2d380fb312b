package util

import "testing"

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Fatalf("short string changed: %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
	if got := Truncate("héllo", 2); got != "hé" {
		t.Fatalf("rune boundary broken: %q", got)
	}
	if got := Truncate("hello", 0); got != "hello" {
		t.Fatalf("n=0 should be a no-op, got %q", got)
	}
}

func TestNormalizeTicker(t *testing.T) {
	if got := NormalizeTicker("  aapl "); got != "AAPL" {
		t.Fatalf("expected AAPL, got %q", got)
	}
}

func TestContainsAnyFold(t *testing.T) {
	if !ContainsAnyFold("Chairman & Chief Executive Officer", "chief executive") {
		t.Fatalf("expected match")
	}
	if ContainsAnyFold("Analyst", "chief executive", "chairman") {
		t.Fatalf("unexpected match")
	}
}

func TestTailBytes(t *testing.T) {
	if got := TailBytes("abcdef", 3); got != "def" {
		t.Fatalf("expected def, got %q", got)
	}
	if got := TailBytes("abc", 10); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if got := TailBytes("abc", 0); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
