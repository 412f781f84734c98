package util

import "testing"

func TestETag(t *testing.T) {
	got := ETag([]byte("png-bytes"))
	if got != ETag([]byte("png-bytes")) {
		t.Fatalf("expected stable tag, got %s", got)
	}
	if got == ETag([]byte("other")) {
		t.Fatalf("expected different tags for different bodies")
	}
	if len(got) != 34 || got[0] != '"' || got[len(got)-1] != '"' {
		t.Fatalf("expected quoted 32 hex characters, got %s", got)
	}
	for _, ch := range got[1 : len(got)-1] {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("tag contains non-hex character: %c", ch)
		}
	}
}

func TestTruncateForLog(t *testing.T) {
	if got := TruncateForLog("  short  ", 10); got != "short" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := TruncateForLog("abcdefgh", 4); got != "abcd..." {
		t.Fatalf("unexpected: %q", got)
	}
	if got := TruncateForLog("aé", 2); got != "a..." {
		t.Fatalf("expected cut before multibyte rune, got %q", got)
	}
	if got := TruncateForLog("abc", 0); got != "abc" {
		t.Fatalf("zero max must not truncate, got %q", got)
	}
}
