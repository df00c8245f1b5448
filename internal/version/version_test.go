package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Commit
	t.Cleanup(func() { Commit = old })

	Commit = "0123456789abcdef"
	if got := String(); !strings.Contains(got, "commit: 0123456") || strings.Contains(got, "89abcdef") {
		t.Errorf("expected short commit in %q", got)
	}
	if got := UserAgent(); got != "shipdesk/0123456" {
		t.Errorf("unexpected user agent %q", got)
	}
}
