// Package grammar compiles the four line-level recognizers the parser needs:
// request line, response line, header line, chunk header line. These were
// POSIX extended regular expressions with hand-numbered capture groups in
// original_source/http_read.c; RE2 (Go's regexp package) supports named
// groups, so the group-numbering bookkeeping the original's comments
// complain about simply disappears here (see SPEC_FULL.md §5.1).
//
// All four are compiled once at package initialization — before any connection is ever
// accepted — and are read-only and goroutine-safe from then on, same as
// spec.md §5's "Grammar structures: initialized once ... read-only
// thereafter; no lock."
package grammar

import (
	"regexp"

	"golang.org/x/net/http/httpguts"
)

const (
	lws   = `[ \t]`
	crlf  = `\r?\n`
	uriCh = `(?:[A-Za-z0-9._~:/?#\[\]@!$&'()*+,;=-]|%[0-9a-fA-F]{2})`
	// domainCh is uriCh without the slash, per spec.md §4.1.
	domainCh = `(?:[A-Za-z0-9._~:?#\[\]@!$&'()*+,;=-]|%[0-9a-fA-F]{2})`
)

var (
	// RequestLine matches "METHOD [http://DOMAIN]/PATH HTTP/MAJOR.MINOR\r\n".
	RequestLine = regexp.MustCompile(
		`(?i)^(?P<method>[A-Za-z]+)` + lws + `+` +
			`(?:http://(?P<domain>` + domainCh + `*))?` +
			`/(?P<path>` + uriCh + `*)` + lws + `+` +
			`HTTP/(?P<version>[1-9][0-9]*\.[0-9]+)` + crlf + `$`)

	// ResponseLine matches "HTTP/MAJOR.MINOR STATUS PHRASE\r\n".
	ResponseLine = regexp.MustCompile(
		`(?i)^HTTP/(?P<version>[1-9][0-9]*\.[0-9]+)` + lws + `+` +
			`(?P<status>[1-5][0-9][0-9])` + lws + `+` +
			`(?P<phrase>[[:print:]]*)` + crlf + `$`)

	// HeaderLine matches "Name: Value[\r\n LWS+ more-value]*\r\n" and is
	// anchored only at the start, so it can be matched against a buffer that
	// still has the rest of the header block trailing it.
	HeaderLine = regexp.MustCompile(
		`^(?P<name>[!#$%&'*+.^_` + "`" + `|~0-9A-Za-z-]+):` + lws + `*` +
			`(?P<value>[[:print:]]+(?:` + crlf + lws + `+[[:print:]]+)*)` + crlf)

	// ChunkHeader matches "HEXSIZE[;extension]\r\n".
	ChunkHeader = regexp.MustCompile(
		`(?i)^(?P<size>[0-9a-f]+)(?:;[^\r\n]*)?` + crlf + `$`)
)

// MatchNamed runs re against s and returns the named capture groups. ok is
// false if re did not match s at all.
func MatchNamed(re *regexp.Regexp, s string) (groups map[string]string, ok bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	groups = make(map[string]string, len(m))
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		groups[name] = m[i]
	}
	return groups, true
}

// ValidToken reports whether s is a valid HTTP token (used to double-check
// the method capture against RFC 7230's token grammar, backing up the
// grammar's own character class).
func ValidToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !httpguts.IsTokenRune(r) {
			return false
		}
	}
	return true
}

// ValidHeaderValue reports whether s is a legal header field value (no
// control characters outside of tab), delegating to the same helper
// net/http itself uses to validate header values before writing them.
func ValidHeaderValue(s string) bool {
	return httpguts.ValidHeaderFieldValue(s)
}
