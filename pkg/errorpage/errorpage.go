// Package errorpage builds the canned HTML error response the worker sends
// back to the client when something goes wrong before an origin response is
// available. Grounded on original_source/http_worker_thread.c's
// handle_error (the HTML template and the 405 Allow header) and
// original_source/http_manip.c's response_phrase (the status -> phrase
// table, reproduced here in full per SPEC_FULL.md §6).
package errorpage

import (
	"fmt"

	"github.com/Lucretiel/NPproject2/pkg/httpmsg"
)

// Phrase returns the canonical reason phrase for an HTTP status code, or
// "" if the code is not in the table.
func Phrase(status int) string {
	switch status {
	case 100:
		return "Continue"
	case 101:
		return "Switching Protocols"
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 202:
		return "Accepted"
	case 203:
		return "Non-Authoritative Information"
	case 204:
		return "No Content"
	case 205:
		return "Reset Content"
	case 206:
		return "Partial Content"
	case 300:
		return "Multiple Choices"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 303:
		return "See Other"
	case 304:
		return "Not Modified"
	case 305:
		return "Use Proxy"
	case 307:
		return "Temporary Redirect"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 402:
		return "Payment Required"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 406:
		return "Not Acceptable"
	case 407:
		return "Proxy Authentication Required"
	case 408:
		return "Request Timeout"
	case 409:
		return "Conflict"
	case 410:
		return "Gone"
	case 411:
		return "Length Required"
	case 412:
		return "Precondition Failed"
	case 413:
		return "Request Entity Too Large"
	case 414:
		return "Request URI Too Long"
	case 415:
		return "Unsupported Media Type"
	case 416:
		return "Range Not Satisfiable"
	case 417:
		return "Expectation Failed"
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	case 505:
		return "HTTP Version Not Supported"
	default:
		return ""
	}
}

// Build constructs the canned HTML error response for status with the given
// explanatory text. It always sets Connection: close (this proxy never
// pipelines past an error, per spec.md §4.6) and Content-Type: text/html;
// for a 405 it also sets Allow, matching handle_error's special case.
func Build(status int, detail string) *httpmsg.Response {
	phrase := Phrase(status)
	body := fmt.Sprintf(
		"<html><head><title>%d %s</title></head><body><h1>%d %s</h1>%s</body></html>",
		status, phrase, status, phrase, detail)

	resp := &httpmsg.Response{
		MinorVersion: '1',
		Status:       status,
		Phrase:       phrase,
		Body:         []byte(body),
	}
	resp.Headers.Add("Connection", "close")
	resp.Headers.Add("Content-Type", "text/html")
	resp.Headers.Add("Content-Length", fmt.Sprint(len(body)))
	if status == 405 {
		resp.Headers.Add("Allow", "GET, HEAD, POST")
	}
	return resp
}
