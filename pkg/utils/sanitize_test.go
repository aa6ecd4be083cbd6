package utils

import (
	"strings"
	"testing"
)

func TestSanitizeStripsMarkup(t *testing.T) {
	got := Sanitize(`<script>alert(1)</script><b onclick="x()">I feel anxious</b>`)
	if strings.Contains(got, "<") || strings.Contains(got, "onclick") {
		t.Fatalf("markup survived sanitization: %q", got)
	}
	if !strings.Contains(got, "I feel anxious") {
		t.Fatalf("text content lost: %q", got)
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"plain text",
		"Tom & Jerry's \"show\" <3",
		"<img src=x onerror=alert(1)>hello",
		"मुझे चिंता हो रही है",
		"&lt;b&gt;already escaped&lt;/b&gt;",
		"😀🎉",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Fatalf("Sanitize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSanitizeWhitespaceBecomesEmpty(t *testing.T) {
	if got := Sanitize(" \t\n "); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := Sanitize("<p>   </p>"); got != "" {
		t.Fatalf("expected empty string for empty markup, got %q", got)
	}
}
