// Package parser reads HTTP/1.x request and response messages off a
// net.Conn in the fixed order spec.md §4.2 requires: request/response line,
// then headers, then body. It is grounded on original_source/http_read.c's
// tcp_read_line/read_headers/read_body family and on
// pkg/client/client.go's readResponse/readHeaders/readBody from the teacher
// repo, translated from byte-at-a-time C buffers to bufio.Reader.
package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/Lucretiel/NPproject2/pkg/caseless"
	"github.com/Lucretiel/NPproject2/pkg/grammar"
	"github.com/Lucretiel/NPproject2/pkg/httperrors"
	"github.com/Lucretiel/NPproject2/pkg/httpmsg"
	"github.com/Lucretiel/NPproject2/pkg/limits"
)

// Reader reads HTTP/1.x lines, headers, and bodies from an underlying
// connection. It corresponds to original_source/autobuf.c's AutoBuffer: an
// intermediate block sitting in front of the raw socket reads, here a
// fixed-size bufio.Reader instead of a hand-rolled doubling buffer; lines
// that span several blocks are accumulated in readLine.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r in a Reader with the configured intermediate block size.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, limits.AutobufInitialSize)}
}

// readLine reads a single CRLF (or bare-LF, tolerated) terminated line,
// including the terminator, enforcing maxLen. op names the caller for error
// reporting.
//
// bufio.Reader.ReadString/ReadBytes loop internally across as many
// underlying reads as it takes to find the delimiter, with no cap of their
// own — a client that never sends '\n' would be read into memory without
// bound. ReadSlice instead returns whatever fits in one intermediate block
// (bufio.ErrBufferFull) without reading further, so each loop iteration
// advances by at most one block; checking the accumulated length against
// maxLen after every iteration bounds total memory and total bytes read
// from the connection to roughly maxLen, matching spec.md §4.2's "byte cap
// reached" stopping condition.
func (r *Reader) readLine(maxLen int, op string) (string, *httperrors.Error) {
	var sb strings.Builder
	for {
		frag, err := r.br.ReadSlice('\n')
		sb.Write(frag)
		if sb.Len() > maxLen {
			return "", httperrors.New(httperrors.LineTooLong, op, nil)
		}
		switch err {
		case nil:
			return sb.String(), nil
		case bufio.ErrBufferFull:
			continue
		default:
			return "", httperrors.New(httperrors.ConnectionError, op, err)
		}
	}
}

// ReadRequestLine reads and parses a request line into req.
func (r *Reader) ReadRequestLine(req *httpmsg.Request) *httperrors.Error {
	const op = "read_request_line"

	line, err := r.readLine(limits.MaxMessageLineSize, op)
	if err != nil {
		return err
	}

	groups, ok := grammar.MatchNamed(grammar.RequestLine, line)
	if !ok {
		return httperrors.New(httperrors.MalformedLine, op, nil)
	}

	if !grammar.ValidToken(groups["method"]) {
		return httperrors.New(httperrors.BadMethod, op, nil)
	}
	method, ok := httpmsg.MethodFromString(groups["method"])
	if !ok {
		return httperrors.New(httperrors.BadMethod, op, nil)
	}

	if groups["version"] != "1.0" && groups["version"] != "1.1" {
		return httperrors.New(httperrors.BadVersion, op, nil)
	}

	req.Method = method
	req.Domain = groups["domain"]
	req.Path = groups["path"]
	req.MinorVersion = groups["version"][2]
	return nil
}

// ReadResponseLine reads and parses a response (status) line into resp.
func (r *Reader) ReadResponseLine(resp *httpmsg.Response) *httperrors.Error {
	const op = "read_response_line"

	line, err := r.readLine(limits.MaxMessageLineSize, op)
	if err != nil {
		return err
	}

	groups, ok := grammar.MatchNamed(grammar.ResponseLine, line)
	if !ok {
		return httperrors.New(httperrors.MalformedLine, op, nil)
	}

	if groups["version"] != "1.0" && groups["version"] != "1.1" {
		return httperrors.New(httperrors.BadVersion, op, nil)
	}

	status, convErr := strconv.Atoi(groups["status"])
	if convErr != nil {
		return httperrors.New(httperrors.MalformedLine, op, convErr)
	}

	resp.MinorVersion = groups["version"][2]
	resp.Status = status
	resp.Phrase = strings.TrimRight(groups["phrase"], "\r\n")
	return nil
}

// ReadHeaders reads header lines (honoring RFC 7230 continuation-line
// folding) up to the blank-line terminator, appending to headers. It
// enforces both limits.MaxNumHeaders and limits.MaxHeaderSize, matching
// original_source/http_read.c's parse_headers.
func (r *Reader) ReadHeaders(headers *httpmsg.HeaderList) *httperrors.Error {
	const op = "read_headers"

	total := 0
	for {
		line, err := r.peekHeaderLine(op)
		if err != nil {
			return err
		}

		if line == "\r\n" || line == "\n" {
			return nil
		}

		total += len(line)
		if total > limits.MaxHeaderSize {
			return httperrors.New(httperrors.TooLong, op, nil)
		}

		groups, ok := grammar.MatchNamed(grammar.HeaderLine, line)
		if !ok {
			return httperrors.New(httperrors.MalformedHeader, op, nil)
		}

		value := unfoldContinuations(groups["value"])
		if !grammar.ValidToken(groups["name"]) || !grammar.ValidHeaderValue(value) {
			return httperrors.New(httperrors.MalformedHeader, op, nil)
		}

		headers.Add(groups["name"], value)

		if len(*headers) > limits.MaxNumHeaders {
			return httperrors.New(httperrors.TooManyHeaders, op, nil)
		}
	}
}

// peekHeaderLine reads one logical header line: the initial line plus any
// immediately-following continuation lines that begin with a space or tab.
func (r *Reader) peekHeaderLine(op string) (string, *httperrors.Error) {
	first, err := r.readLine(limits.MaxHeaderLineSize, op)
	if err != nil {
		return "", err
	}
	if first == "\r\n" || first == "\n" {
		return first, nil
	}

	var sb strings.Builder
	sb.WriteString(first)
	for {
		peeked, peekErr := r.br.Peek(1)
		if peekErr != nil || (peeked[0] != ' ' && peeked[0] != '\t') {
			return sb.String(), nil
		}
		cont, err := r.readLine(limits.MaxHeaderLineSize, op)
		if err != nil {
			return "", err
		}
		if sb.Len()+len(cont) > limits.MaxHeaderSize {
			return "", httperrors.New(httperrors.TooLong, op, nil)
		}
		sb.WriteString(cont)
	}
}

// unfoldContinuations replaces each CRLF-plus-leading-whitespace fold in a
// multi-line header value with a single space, per RFC 7230 §3.2.4.
func unfoldContinuations(value string) string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	lines := strings.Split(value, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = " " + strings.TrimLeft(lines[i], " \t")
	}
	return strings.Join(lines, "")
}

// bodyMode selects how ReadBody determines the end of a message body,
// mirroring original_source/http_read.c's read_body: chunked transfer
// encoding always wins over Content-Length, which always wins over reading
// until the connection closes.
type bodyMode int

const (
	bodyNone bodyMode = iota
	bodyFixed
	bodyChunked
	bodyUntilClose
)

func selectBodyMode(headers httpmsg.HeaderList, allowUntilClose bool) (bodyMode, int) {
	if te, ok := headers.Get("Transfer-Encoding"); ok && caseless.Equal(strings.TrimSpace(te), "chunked") {
		return bodyChunked, 0
	}
	if cl, ok := headers.Get("Content-Length"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(cl))
		if err != nil || n < 0 {
			return bodyFixed, -1
		}
		return bodyFixed, n
	}
	if allowUntilClose {
		return bodyUntilClose, 0
	}
	return bodyNone, 0
}

// ReadRequestBody reads req's body, if any, per its headers. Requests never
// read until connection close (there is no such thing as a request with an
// implicit body boundary), matching original_source/http_read.c's
// restriction of that mode to responses only.
func (r *Reader) ReadRequestBody(req *httpmsg.Request) *httperrors.Error {
	mode, length := selectBodyMode(req.Headers, false)
	return r.readBody(mode, length, &req.Body, &req.Headers)
}

// ReadResponseBody reads resp's body, if any, per its headers and request
// method context (HEAD responses and 1xx/204/304 never carry a body).
func (r *Reader) ReadResponseBody(resp *httpmsg.Response, requestMethod httpmsg.Method) *httperrors.Error {
	if requestMethod == httpmsg.Head || resp.Status < 200 || resp.Status == 204 || resp.Status == 304 {
		resp.Body = nil
		return nil
	}
	mode, length := selectBodyMode(resp.Headers, true)
	return r.readBody(mode, length, &resp.Body, &resp.Headers)
}

func (r *Reader) readBody(mode bodyMode, length int, body *[]byte, headers *httpmsg.HeaderList) *httperrors.Error {
	const op = "read_body"

	switch mode {
	case bodyNone:
		*body = nil
		return nil

	case bodyFixed:
		if length < 0 {
			return httperrors.New(httperrors.BadContentLength, op, nil)
		}
		if length > limits.MaxBodySize {
			return httperrors.New(httperrors.TooLong, op, nil)
		}
		buf := make([]byte, length)
		if _, err := io.ReadFull(r.br, buf); err != nil {
			return httperrors.New(httperrors.ConnectionError, op, err)
		}
		*body = buf
		return nil

	case bodyChunked:
		return r.readChunkedBody(body, headers)

	case bodyUntilClose:
		buf, err := io.ReadAll(io.LimitReader(r.br, limits.MaxBodySize+1))
		if err != nil {
			return httperrors.New(httperrors.ConnectionError, op, err)
		}
		if len(buf) > limits.MaxBodySize {
			return httperrors.New(httperrors.TooLong, op, nil)
		}
		*body = buf
		return nil

	default:
		*body = nil
		return nil
	}
}

// readChunkedBody decodes a chunked-transfer-encoded body into a single
// contiguous buffer (bounded by limits.MaxBodySize), per
// original_source/http_read.c's read_chunked_body, then reads any trailer
// headers and appends them to *headers.
func (r *Reader) readChunkedBody(body *[]byte, headers *httpmsg.HeaderList) *httperrors.Error {
	const op = "read_chunked_body"

	var out []byte
	for {
		sizeLine, err := r.readLine(limits.MaxChunkHeaderSize, op)
		if err != nil {
			return err
		}

		groups, ok := grammar.MatchNamed(grammar.ChunkHeader, sizeLine)
		if !ok {
			return httperrors.New(httperrors.MalformedLine, op, nil)
		}

		size, convErr := strconv.ParseUint(groups["size"], 16, 32)
		if convErr != nil {
			return httperrors.New(httperrors.MalformedLine, op, convErr)
		}
		if size > limits.MaxChunkSize {
			return httperrors.New(httperrors.TooLong, op, nil)
		}

		if size == 0 {
			if err := r.ReadHeaders(headers); err != nil {
				return err
			}
			*body = out
			return nil
		}

		if len(out)+int(size) > limits.MaxBodySize {
			return httperrors.New(httperrors.TooLong, op, nil)
		}

		chunk := make([]byte, size)
		if _, readErr := io.ReadFull(r.br, chunk); readErr != nil {
			return httperrors.New(httperrors.ConnectionError, op, readErr)
		}
		out = append(out, chunk...)

		crlf := make([]byte, 2)
		if _, readErr := io.ReadFull(r.br, crlf); readErr != nil {
			return httperrors.New(httperrors.ConnectionError, op, readErr)
		}
		if crlf[0] != '\r' || crlf[1] != '\n' {
			return httperrors.New(httperrors.MalformedLine, op, nil)
		}
	}
}
