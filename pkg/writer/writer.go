// Package writer serializes httpmsg.Request/Response values back onto an
// io.Writer, the inverse of pkg/parser. Grounded on
// original_source/http_write.c's write_request_line/write_headers/
// write_common family.
package writer

import (
	"fmt"
	"io"

	"github.com/Lucretiel/NPproject2/pkg/httperrors"
	"github.com/Lucretiel/NPproject2/pkg/httpmsg"
)

const op = "write_message"

// WriteRequest writes req to w in wire format: request line, headers,
// blank line, body.
func WriteRequest(w io.Writer, req *httpmsg.Request) *httperrors.Error {
	var line string
	if req.Domain != "" {
		line = fmt.Sprintf("%s http://%s/%s HTTP/1.%c\r\n", req.Method, req.Domain, req.Path, req.MinorVersion)
	} else {
		line = fmt.Sprintf("%s /%s HTTP/1.%c\r\n", req.Method, req.Path, req.MinorVersion)
	}
	if _, err := io.WriteString(w, line); err != nil {
		return httperrors.New(httperrors.ConnectionError, op, err)
	}
	return writeCommon(w, req.Headers, req.Body)
}

// WriteResponse writes resp to w in wire format: status line, headers,
// blank line, body.
func WriteResponse(w io.Writer, resp *httpmsg.Response) *httperrors.Error {
	line := fmt.Sprintf("HTTP/1.%c %d %s\r\n", resp.MinorVersion, resp.Status, resp.Phrase)
	if _, err := io.WriteString(w, line); err != nil {
		return httperrors.New(httperrors.ConnectionError, op, err)
	}
	return writeCommon(w, resp.Headers, resp.Body)
}

func writeCommon(w io.Writer, headers httpmsg.HeaderList, body []byte) *httperrors.Error {
	for _, h := range headers {
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", h.Name, h.Value); err != nil {
			return httperrors.New(httperrors.ConnectionError, op, err)
		}
	}
	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return httperrors.New(httperrors.ConnectionError, op, err)
	}
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			return httperrors.New(httperrors.ConnectionError, op, err)
		}
	}
	return nil
}
