package health

import "testing"

func TestStatus(t *testing.T) {
	got := NewService().Status()
	if len(got) != 1 || !got["ok"] {
		t.Fatalf("unexpected status: %v", got)
	}
}

func TestDetailed(t *testing.T) {
	got := NewService().Detailed()
	if got["status"] != "healthy" || got["service"] != "Broken Conductor Detection" {
		t.Fatalf("unexpected detailed status: %v", got)
	}
}
