// Package limits defines the compile-time size caps and buffer defaults
// used throughout the proxy. Values are contractual for the reference test
// suite; see original_source/config.h for the constants these mirror.
package limits

const (
	// AutobufInitialSize is the initial size of the line-read intermediate
	// block (config.h: autobuf_initial_size).
	AutobufInitialSize = 256

	// MaxMessageLineSize caps a request or response line.
	MaxMessageLineSize = 1 * 1024 * 1024

	// MaxHeaderLineSize caps a single header line.
	MaxHeaderLineSize = 1 * 1024

	// MaxChunkHeaderSize caps a single chunk-size line.
	MaxChunkHeaderSize = 1 * 1024

	// MaxNumHeaders caps the number of headers in one message.
	MaxNumHeaders = 1024

	// MaxHeaderSize caps the combined byte size of all header lines.
	MaxHeaderSize = 1 * 1024 * 1024

	// MaxBodySize caps a fixed or chunked body.
	MaxBodySize = 1 * 1024 * 1024 * 1024

	// MaxChunkSize caps a single chunk's data size.
	MaxChunkSize = 1 * 1024 * 1024

	// ListenBacklog is the listen(2) backlog for the proxy's accept socket.
	ListenBacklog = 8
)

// FlushAfterWrite mirrors config.h's flush_http_messages: every request or
// response write is flushed (unbuffered socket writes already behave this
// way in Go, so this exists only to document the contract; see pkg/writer).
const FlushAfterWrite = true
