package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Lucretiel/NPproject2/pkg/httpmsg"
)

func TestWriteRequestOriginForm(t *testing.T) {
	req := &httpmsg.Request{Method: httpmsg.Get, Path: "index.html", MinorVersion: '1'}
	req.Headers.Add("Host", "example.com")

	var buf bytes.Buffer
	if err := WriteRequest(&buf, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "GET /index.html HTTP/1.1\r\nHost: example.com\r\n\r\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteRequestAbsoluteForm(t *testing.T) {
	req := &httpmsg.Request{Method: httpmsg.Get, Domain: "example.com", Path: "a", MinorVersion: '1'}

	var buf bytes.Buffer
	if err := WriteRequest(&buf, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "GET http://example.com/a HTTP/1.1\r\n") {
		t.Errorf("got %q", buf.String())
	}
}

func TestWriteResponseWithBody(t *testing.T) {
	resp := &httpmsg.Response{MinorVersion: '1', Status: 200, Phrase: "OK", Body: []byte("hi")}
	resp.Headers.Add("Content-Length", "2")

	var buf bytes.Buffer
	if err := WriteResponse(&buf, resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nhi"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
