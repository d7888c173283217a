package archive

import (
	"bytes"
	"strconv"
	"strings"
)

// xobjectDrawOrder scans a page content stream and returns, for every XObject
// painted with the Do operator, the position of its first use. Names are
// returned without the leading slash so they line up with pdfcpu's resource
// names.
func xobjectDrawOrder(content []byte) map[string]int {
	order := map[string]int{}
	lastName := ""
	l := contentLexer{buf: content}
	for {
		tok, kind := l.next()
		switch kind {
		case tokEOF:
			return order
		case tokName:
			lastName = tok
			continue
		case tokOperator:
			switch tok {
			case "Do":
				if lastName != "" {
					if _, seen := order[lastName]; !seen {
						order[lastName] = len(order)
					}
				}
			case "BI":
				l.skipInlineImage()
			}
		}
		lastName = ""
	}
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokOperator
	tokOther
)

type contentLexer struct {
	buf []byte
	pos int
}

func isPDFWhitespace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isPDFDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *contentLexer) next() (string, tokenKind) {
	for l.pos < len(l.buf) {
		c := l.buf[l.pos]
		switch {
		case isPDFWhitespace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.buf) && l.buf[l.pos] != '\n' && l.buf[l.pos] != '\r' {
				l.pos++
			}
		case c == '(':
			l.skipLiteralString()
			return "", tokOther
		case c == '<':
			if l.pos+1 < len(l.buf) && l.buf[l.pos+1] == '<' {
				l.pos += 2
				return "", tokOther
			}
			end := bytes.IndexByte(l.buf[l.pos:], '>')
			if end < 0 {
				l.pos = len(l.buf)
			} else {
				l.pos += end + 1
			}
			return "", tokOther
		case c == '>':
			l.pos++
			if l.pos < len(l.buf) && l.buf[l.pos] == '>' {
				l.pos++
			}
			return "", tokOther
		case c == '/':
			l.pos++
			return decodeName(l.regular()), tokName
		case isPDFDelimiter(c):
			l.pos++
			return "", tokOther
		default:
			return l.regular(), tokOperator
		}
	}
	return "", tokEOF
}

// regular consumes a run of regular characters. Numbers come back as
// operators too; callers only compare against operator keywords.
func (l *contentLexer) regular() string {
	start := l.pos
	for l.pos < len(l.buf) && !isPDFWhitespace(l.buf[l.pos]) && !isPDFDelimiter(l.buf[l.pos]) {
		l.pos++
	}
	return string(l.buf[start:l.pos])
}

func (l *contentLexer) skipLiteralString() {
	depth := 0
	for l.pos < len(l.buf) {
		c := l.buf[l.pos]
		l.pos++
		switch c {
		case '\\':
			l.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// skipInlineImage moves past the binary data of an inline image, which runs
// from the ID operator to an EI surrounded by whitespace.
func (l *contentLexer) skipInlineImage() {
	for {
		tok, kind := l.next()
		if kind == tokEOF {
			return
		}
		if kind == tokOperator && tok == "ID" {
			break
		}
	}
	if l.pos < len(l.buf) {
		// Single whitespace byte after ID.
		l.pos++
	}
	for i := l.pos; i+1 < len(l.buf); i++ {
		if l.buf[i] != 'E' || l.buf[i+1] != 'I' {
			continue
		}
		before := i == 0 || isPDFWhitespace(l.buf[i-1])
		after := i+2 == len(l.buf) || isPDFWhitespace(l.buf[i+2])
		if before && after {
			l.pos = i + 2
			return
		}
	}
	l.pos = len(l.buf)
}

// decodeName resolves #xx escapes in a name token.
func decodeName(s string) string {
	if !strings.Contains(s, "#") {
		return s
	}
	var b []byte
	for i := 0; i < len(s); i++ {
		if s[i] == '#' && i+2 < len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
				b = append(b, byte(v))
				i += 2
				continue
			}
		}
		b = append(b, s[i])
	}
	return string(b)
}
