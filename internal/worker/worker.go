// Package worker implements the per-connection state machine: accept,
// parse request, filter, dial origin, forward, relay response, close.
// Grounded line-for-line on original_source/http_worker_thread.c's main
// loop (read_request_line -> VALIDATE -> DIAL_ORIGIN -> write_request ->
// read response -> write_response -> success/error/filter).
package worker

import (
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/Lucretiel/NPproject2/pkg/caseless"
	"github.com/Lucretiel/NPproject2/pkg/errorpage"
	"github.com/Lucretiel/NPproject2/pkg/filter"
	"github.com/Lucretiel/NPproject2/pkg/httperrors"
	"github.com/Lucretiel/NPproject2/pkg/httpmsg"
	"github.com/Lucretiel/NPproject2/pkg/parser"
	"github.com/Lucretiel/NPproject2/pkg/timing"
	"github.com/Lucretiel/NPproject2/pkg/writer"

	"github.com/Lucretiel/NPproject2/internal/printqueue"
	"github.com/Lucretiel/NPproject2/internal/stats"
)

// DialTimeout bounds connecting to the origin server, matching
// original_source/http_worker_thread.c's DIAL_ORIGIN step (the original
// relies on the OS's default connect timeout; Go makes that explicit).
const DialTimeout = 10 * time.Second

// Worker holds the shared, read-only state every connection handler needs:
// the filter table, the stat counters, and the print queue. One Worker is
// constructed at startup and reused across every accepted connection,
// mirroring spec.md's "initialized once" singletons.
type Worker struct {
	Filter *filter.Table
	Stats  *stats.Counters
	Print  *printqueue.Queue

	// Dial opens the connection to the origin server. It defaults to
	// dialing the domain on port 80, matching original_source's
	// getaddrinfo(domain, "http", ...) lookup; tests substitute a dialer
	// that points at a local listener instead of binding to port 80.
	Dial func(domain string) (net.Conn, error)
}

// New returns a Worker wired to the given shared singletons, dialing
// origin servers on port 80 by default.
func New(f *filter.Table, s *stats.Counters, p *printqueue.Queue) *Worker {
	w := &Worker{Filter: f, Stats: s, Print: p}
	w.Dial = func(domain string) (net.Conn, error) {
		return net.DialTimeout("tcp4", net.JoinHostPort(domain, "80"), DialTimeout)
	}
	return w
}

// Handle runs one connection to completion: it always closes conn before
// returning, matching the "no persistent connections" rule in spec.md
// §4.6 (every request gets its own connection, closed afterward
// regardless of outcome).
func (w *Worker) Handle(conn net.Conn) {
	defer conn.Close()

	connID := uuid.New()
	clientAddr := conn.RemoteAddr().String()
	w.Print.SubmitDebug(connID, "accepted connection from "+clientAddr)

	var req httpmsg.Request
	in := parser.NewReader(conn)

	if err := in.ReadRequestLine(&req); err != nil {
		w.respondError(conn, clientAddr, req, mapRequestLineError(err), err)
		return
	}
	w.Print.SubmitDebug(connID, fmt.Sprintf("request line: %s http://%s/%s", req.Method, req.Domain, req.Path))

	if err := in.ReadHeaders(&req.Headers); err != nil {
		w.respondError(conn, clientAddr, req, mapHeaderError(err), err)
		return
	}

	if err := in.ReadRequestBody(&req); err != nil {
		w.respondError(conn, clientAddr, req, mapBodyError(err), err)
		return
	}

	// VALIDATE: this proxy never keeps a connection alive across requests,
	// so every response carries Connection: close regardless of what the
	// client asked for (original_source/http_worker_thread.c forces
	// state=cs_close unconditionally here too).
	if w.Filter != nil && req.Domain != "" && w.Filter.Matches(req.Domain) {
		w.filtered(conn, clientAddr, req)
		return
	}

	if req.MinorVersion == '1' && !req.Headers.Has("Host") {
		w.respondError(conn, clientAddr, req, 400, httperrors.New(httperrors.MalformedHeader, "validate", nil))
		return
	}

	// Force Connection: close on HTTP/1.1 requests that do not name one.
	if req.MinorVersion == '1' && !req.Headers.Has("Connection") {
		req.Headers.Add("Connection", "close")
	}

	// Only the request-line domain ever names the origin: original_source's
	// getaddrinfo call is keyed on request.domain exclusively, with no
	// fallback to Host. An absent domain (origin-form request line) reaches
	// DIAL_ORIGIN and fails there, the same as the original (spec.md §9:
	// domain and Host are deliberately never reconciled).
	timer := timing.NewTimer()
	timer.StartDial()
	origin, dialErr := w.Dial(req.Domain)
	timer.EndDial()
	if dialErr != nil {
		w.respondError(conn, clientAddr, req, 500, httperrors.New(httperrors.ConnectionError, "dial_origin", dialErr))
		return
	}
	defer origin.Close()

	if werr := writer.WriteRequest(origin, &req); werr != nil {
		w.respondError(conn, clientAddr, req, 502, werr)
		return
	}

	var resp httpmsg.Response
	out := parser.NewReader(origin)

	timer.StartOrigin()
	if err := out.ReadResponseLine(&resp); err != nil {
		w.respondError(conn, clientAddr, req, 502, err)
		return
	}
	if err := out.ReadHeaders(&resp.Headers); err != nil {
		w.respondError(conn, clientAddr, req, 502, err)
		return
	}
	if err := out.ReadResponseBody(&resp, req.Method); err != nil {
		w.respondError(conn, clientAddr, req, 502, err)
		return
	}
	timer.EndOrigin()
	w.Print.SubmitDebug(connID, "timing: "+timer.Metrics().String())

	resp.Headers = replaceConnectionClose(resp.Headers)

	if werr := writer.WriteResponse(conn, &resp); werr != nil {
		// A failed write back to the client is logged only; there is no
		// one left to respond to, matching original_source's "failure
		// logged only, no response" note on its final write_response call.
		w.Print.SubmitDebug(connID, "write_response failed: "+werr.Error())
	}

	w.success(clientAddr, req)
}

// mapRequestLineError maps a request-line parse error to the status code
// original_source/http_worker_thread.c's first error switch produces.
func mapRequestLineError(err *httperrors.Error) int {
	switch err.Kind {
	case httperrors.ConnectionError:
		return 0
	case httperrors.LineTooLong:
		return 414
	case httperrors.BadMethod:
		return 405
	case httperrors.BadVersion:
		return 505
	default:
		return 400
	}
}

// mapHeaderError maps a header-parse error to the status code
// original_source/http_worker_thread.c's second error switch produces.
func mapHeaderError(err *httperrors.Error) int {
	switch err.Kind {
	case httperrors.ConnectionError:
		return 0
	case httperrors.LineTooLong, httperrors.TooLong, httperrors.TooManyHeaders:
		return 413
	default:
		return 400
	}
}

// mapBodyError maps a body-parse error to the status code
// original_source/http_worker_thread.c's third error switch produces.
func mapBodyError(err *httperrors.Error) int {
	switch err.Kind {
	case httperrors.ConnectionError:
		return 0
	case httperrors.LineTooLong, httperrors.TooLong:
		return 413
	default:
		return 400
	}
}

// respondError records the error tally, logs it, and — unless status is 0
// (meaning the connection itself is unusable) — sends back the canned
// HTML error page, matching the ERROR/RESPOND_ERROR macros in
// original_source/http_worker_thread.c. The log line is the contractual
// "<client-ip> [ERROR] <message>" format from spec.md §4.6.
func (w *Worker) respondError(conn net.Conn, clientAddr string, req httpmsg.Request, status int, cause *httperrors.Error) {
	w.Stats.AddError()
	w.Print.Submit(fmt.Sprintf("%s [ERROR] %s", clientAddr, cause.Error()))

	if status == 0 {
		return
	}
	resp := errorpage.Build(status, cause.Error())
	_ = writer.WriteResponse(conn, resp)
}

// filtered records the filtered tally, logs the block, and sends back a
// 403, matching original_source/http_worker_thread.c's filter(). The log
// line is the success-line format from spec.md §4.6 with a trailing
// " [FILTERED]".
func (w *Worker) filtered(conn net.Conn, clientAddr string, req httpmsg.Request) {
	w.Stats.AddFiltered()
	w.Print.Submit(fmt.Sprintf("%s: %s http://%s/%s [FILTERED]", clientAddr, req.Method, req.Domain, req.Path))

	resp := errorpage.Build(403, "Blocked by Proxy Filter")
	_ = writer.WriteResponse(conn, resp)
}

// success records the successful tally and logs the request, matching
// original_source/http_worker_thread.c's success()/get_log_string() and
// the contractual "<client-ip>: <METHOD> http://<domain>/<path>" format
// from spec.md §4.6.
func (w *Worker) success(clientAddr string, req httpmsg.Request) {
	w.Stats.AddSuccess()
	w.Print.Submit(fmt.Sprintf("%s: %s http://%s/%s", clientAddr, req.Method, req.Domain, req.Path))
}

// replaceConnectionClose strips any existing Connection header from the
// origin's response and replaces it with "close", since this proxy never
// keeps a client connection open past one request.
func replaceConnectionClose(headers httpmsg.HeaderList) httpmsg.HeaderList {
	out := make(httpmsg.HeaderList, 0, len(headers)+1)
	for _, h := range headers {
		if caseless.Equal(h.Name, "Connection") {
			continue
		}
		out = append(out, h)
	}
	out.Add("Connection", "close")
	return out
}
