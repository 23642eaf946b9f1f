package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Lucretiel/NPproject2/pkg/httperrors"
	"github.com/Lucretiel/NPproject2/pkg/httpmsg"
	"github.com/Lucretiel/NPproject2/pkg/writer"
)

func TestReadRequestLineAbsoluteForm(t *testing.T) {
	r := NewReader(strings.NewReader("GET http://example.com/path HTTP/1.1\r\n"))
	var req httpmsg.Request
	if err := r.ReadRequestLine(&req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Method != httpmsg.Get || req.Domain != "example.com" || req.Path != "path" || req.MinorVersion != '1' {
		t.Errorf("got %+v", req)
	}
}

func TestReadRequestLineBadVersion(t *testing.T) {
	r := NewReader(strings.NewReader("GET / HTTP/2.0\r\n"))
	var req httpmsg.Request
	err := r.ReadRequestLine(&req)
	if err == nil || err.Kind != httperrors.BadVersion {
		t.Fatalf("expected BadVersion, got %v", err)
	}
}

func TestReadRequestLineBadMethod(t *testing.T) {
	r := NewReader(strings.NewReader("PUT / HTTP/1.1\r\n"))
	var req httpmsg.Request
	err := r.ReadRequestLine(&req)
	if err == nil || err.Kind != httperrors.BadMethod {
		t.Fatalf("expected BadMethod, got %v", err)
	}
}

func TestReadRequestLineTooLong(t *testing.T) {
	longPath := strings.Repeat("a", 2*1024*1024)
	r := NewReader(strings.NewReader("GET /" + longPath + " HTTP/1.1\r\n"))
	var req httpmsg.Request
	err := r.ReadRequestLine(&req)
	if err == nil || err.Kind != httperrors.LineTooLong {
		t.Fatalf("expected LineTooLong, got %v", err)
	}
}

func TestReadHeadersWithContinuation(t *testing.T) {
	input := "X-Test: first\r\n second\r\nHost: example.com\r\n\r\n"
	r := NewReader(strings.NewReader(input))
	var headers httpmsg.HeaderList
	if err := r.ReadHeaders(&headers); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := headers.Get("X-Test")
	if !ok || v != "first second" {
		t.Errorf("X-Test = %q, %v; want \"first second\", true", v, ok)
	}
}

func TestReadHeadersTooMany(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 1025; i++ {
		sb.WriteString("X-Header: v\r\n")
	}
	sb.WriteString("\r\n")
	r := NewReader(strings.NewReader(sb.String()))
	var headers httpmsg.HeaderList
	err := r.ReadHeaders(&headers)
	if err == nil || err.Kind != httperrors.TooManyHeaders {
		t.Fatalf("expected TooManyHeaders, got %v", err)
	}
}

func TestReadRequestBodyFixedLength(t *testing.T) {
	var req httpmsg.Request
	req.Headers.Add("Content-Length", "5")
	r := NewReader(strings.NewReader("hello"))
	if err := r.ReadRequestBody(&req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(req.Body) != "hello" {
		t.Errorf("body = %q", req.Body)
	}
}

func TestReadRequestBodyBadContentLength(t *testing.T) {
	var req httpmsg.Request
	req.Headers.Add("Content-Length", "not-a-number")
	r := NewReader(strings.NewReader("hello"))
	err := r.ReadRequestBody(&req)
	if err == nil || err.Kind != httperrors.BadContentLength {
		t.Fatalf("expected BadContentLength, got %v", err)
	}
}

func TestReadChunkedBody(t *testing.T) {
	input := "4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n"
	var req httpmsg.Request
	req.Headers.Add("Transfer-Encoding", "chunked")
	r := NewReader(strings.NewReader(input))
	if err := r.ReadRequestBody(&req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(req.Body) != "Wikipedia" {
		t.Errorf("body = %q, want Wikipedia", req.Body)
	}
}

func TestReadChunkedBodyWithExtensionAndTrailer(t *testing.T) {
	input := "3;foo=bar\r\nabc\r\n0\r\nX-Trailer: done\r\n\r\n"
	var req httpmsg.Request
	req.Headers.Add("Transfer-Encoding", "chunked")
	r := NewReader(strings.NewReader(input))
	if err := r.ReadRequestBody(&req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(req.Body) != "abc" {
		t.Errorf("body = %q, want abc", req.Body)
	}
	if v, ok := req.Headers.Get("X-Trailer"); !ok || v != "done" {
		t.Errorf("X-Trailer = %q, %v; want done, true", v, ok)
	}
}

func TestResponseHeadHasNoBody(t *testing.T) {
	var resp httpmsg.Response
	resp.Status = 200
	resp.Headers.Add("Content-Length", "5")
	r := NewReader(strings.NewReader("hello"))
	if err := r.ReadResponseBody(&resp, httpmsg.Head); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Body != nil {
		t.Errorf("HEAD response should have nil body, got %q", resp.Body)
	}
}

// TestRoundTrip verifies spec's round-trip law: parse, write, re-parse
// yields an equal message with header order preserved.
func TestRoundTrip(t *testing.T) {
	var req httpmsg.Request
	req.Method = httpmsg.Post
	req.Domain = "example.com"
	req.Path = "submit"
	req.MinorVersion = '1'
	req.Headers.Add("Host", "example.com")
	req.Headers.Add("Content-Length", "4")
	req.Body = []byte("data")

	var buf bytes.Buffer
	if err := writer.WriteRequest(&buf, &req); err != nil {
		t.Fatalf("write error: %v", err)
	}

	r := NewReader(&buf)
	var reparsed httpmsg.Request
	if err := r.ReadRequestLine(&reparsed); err != nil {
		t.Fatalf("reparse request line: %v", err)
	}
	if err := r.ReadHeaders(&reparsed.Headers); err != nil {
		t.Fatalf("reparse headers: %v", err)
	}
	if err := r.ReadRequestBody(&reparsed); err != nil {
		t.Fatalf("reparse body: %v", err)
	}

	if reparsed.Method != req.Method || reparsed.Domain != req.Domain || reparsed.Path != req.Path {
		t.Errorf("round trip mismatch: got %+v, want %+v", reparsed, req)
	}
	if len(reparsed.Headers) != len(req.Headers) {
		t.Fatalf("header count mismatch: got %d, want %d", len(reparsed.Headers), len(req.Headers))
	}
	for i := range req.Headers {
		if reparsed.Headers[i].Name != req.Headers[i].Name {
			t.Errorf("header[%d] order mismatch: got %q, want %q", i, reparsed.Headers[i].Name, req.Headers[i].Name)
		}
	}
	if string(reparsed.Body) != string(req.Body) {
		t.Errorf("body mismatch: got %q, want %q", reparsed.Body, req.Body)
	}
}
