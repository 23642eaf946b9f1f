package errorpage

import (
	"strings"
	"testing"
)

func TestPhraseKnownCodes(t *testing.T) {
	cases := map[int]string{
		200: "OK",
		404: "Not Found",
		403: "Forbidden",
		500: "Internal Server Error",
		505: "HTTP Version Not Supported",
	}
	for code, want := range cases {
		if got := Phrase(code); got != want {
			t.Errorf("Phrase(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestPhraseUnknownCode(t *testing.T) {
	if got := Phrase(999); got != "" {
		t.Errorf("Phrase(999) = %q, want empty", got)
	}
}

func TestBuild405SetsAllowHeader(t *testing.T) {
	resp := Build(405, "not allowed")
	if v, ok := resp.Headers.Get("Allow"); !ok || v != "GET, HEAD, POST" {
		t.Errorf("Allow = %q, %v; want \"GET, HEAD, POST\", true", v, ok)
	}
}

func TestBuildSetsConnectionClose(t *testing.T) {
	resp := Build(403, "blocked")
	if v, ok := resp.Headers.Get("Connection"); !ok || v != "close" {
		t.Errorf("Connection = %q, %v; want close, true", v, ok)
	}
}

func TestBuildBodyContainsDetail(t *testing.T) {
	resp := Build(500, "dial failed")
	if len(resp.Body) == 0 {
		t.Fatal("expected non-empty body")
	}
	if !strings.Contains(string(resp.Body), "dial failed") {
		t.Errorf("body = %q, want it to contain %q", resp.Body, "dial failed")
	}
}
