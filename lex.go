package main

import "fmt"

type tokenKind int

const (
	tokenEmpty tokenKind = iota
	tokenWord
	tokenNumber
	tokenString
	tokenInvalid
)

func (kind tokenKind) String() string {
	switch kind {
	case tokenEmpty:
		return "empty"
	case tokenWord:
		return "word"
	case tokenNumber:
		return "number"
	case tokenString:
		return "string"
	case tokenInvalid:
		return "invalid"
	}
	return fmt.Sprintf("token%d", int(kind))
}

type token struct {
	kind tokenKind
	text string
	num  int
}

func (tok token) String() string {
	switch tok.kind {
	case tokenNumber:
		return fmt.Sprintf("%v %d", tok.kind, tok.num)
	case tokenWord, tokenString:
		return fmt.Sprintf("%v %q", tok.kind, tok.text)
	}
	return tok.kind.String()
}

// scanner splits a line into tokens. Tokens are separated by whitespace
// delimiters; a backslash followed by a space where a token could start
// comments out the rest of the line.
type scanner struct {
	src  string
	pos  int
	done bool
}

func isDelim(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}
func isDec(c byte) bool { return '0' <= c && c <= '9' }
func isOct(c byte) bool { return '0' <= c && c <= '7' }
func isHex(c byte) bool { return isDec(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F' }

func hexVal(c byte) int {
	switch {
	case isDec(c):
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	}
	return int(c-'A') + 10
}

// at returns the byte at offset i from the current position, or 0 past the
// end of the line.
func (sc *scanner) at(i int) byte {
	if i += sc.pos; i < len(sc.src) {
		return sc.src[i]
	}
	return 0
}

// delimAt reports whether offset i ends a token.
func (sc *scanner) delimAt(i int) bool {
	i += sc.pos
	return i >= len(sc.src) || isDelim(sc.src[i])
}

// scan returns the next token, setting done once the line has been consumed.
// Empty tokens result from comments and trailing delimiters; an invalid token
// also ends the line.
func (sc *scanner) scan() token {
	for sc.pos < len(sc.src) && isDelim(sc.src[sc.pos]) {
		sc.pos++
	}
	if sc.pos >= len(sc.src) || sc.at(0) == '\\' && sc.at(1) == ' ' {
		sc.pos = len(sc.src)
		sc.done = true
		return token{kind: tokenEmpty}
	}

	var tok token
	switch c := sc.src[sc.pos]; {
	case c == '"':
		tok = sc.scanString()
	case isDec(c), (c == '-' || c == '+') && isDec(sc.at(1)):
		tok = sc.scanNumber()
	default:
		tok = sc.scanWord()
	}
	if tok.kind == tokenInvalid {
		sc.done = true
	}
	return tok
}

func (sc *scanner) scanWord() token {
	start := sc.pos
	for sc.pos < len(sc.src) && !isDelim(sc.src[sc.pos]) {
		sc.pos++
	}
	text := sc.src[start:sc.pos]
	if len(text) > maxTokenWidth {
		return token{kind: tokenInvalid, text: text[:maxTokenWidth]}
	}
	return token{kind: tokenWord, text: text}
}

func (sc *scanner) scanNumber() token {
	sign := 1
	switch sc.at(0) {
	case '-':
		sign = -1
		sc.pos++
	case '+':
		sc.pos++
	}

	base := 10
	if sc.at(0) == '0' {
		switch c := sc.at(1); {
		case c == 'x' && isHex(sc.at(2)):
			base = 16
			sc.pos += 2
		case isOct(c):
			base = 8
			sc.pos++
		case !sc.delimAt(1):
			return token{kind: tokenInvalid}
		}
	}

	n := 0
	for ; !sc.delimAt(0); sc.pos++ {
		c := sc.at(0)
		switch {
		case base == 16 && isHex(c):
			n = n*16 + hexVal(c)
		case base == 10 && isDec(c):
			n = n*10 + int(c-'0')
		case base == 8 && isOct(c):
			n = n*8 + int(c-'0')
		default:
			return token{kind: tokenInvalid}
		}
	}
	return token{kind: tokenNumber, num: n * sign}
}

func (sc *scanner) scanString() token {
	var buf []byte
	for sc.pos++; ; {
		if sc.pos >= len(sc.src) {
			return token{kind: tokenInvalid, text: string(buf)}
		}
		c := sc.src[sc.pos]
		if c == '"' {
			if !sc.delimAt(1) {
				return token{kind: tokenInvalid, text: string(buf)}
			}
			sc.pos++
			return token{kind: tokenString, text: string(buf)}
		}
		if len(buf) >= maxTokenWidth {
			return token{kind: tokenInvalid, text: string(buf)}
		}
		if c != '\\' {
			buf = append(buf, c)
			sc.pos++
			continue
		}
		ch, n := sc.escape()
		if n == 0 {
			return token{kind: tokenInvalid, text: string(buf)}
		}
		buf = append(buf, ch)
		sc.pos += 1 + n
	}
}

// escape decodes the escape sequence following a backslash at the current
// position, returning the byte and how many bytes it took, or 0 if invalid.
func (sc *scanner) escape() (byte, int) {
	c1, c2, c3 := sc.at(1), sc.at(2), sc.at(3)
	switch {
	case c1 == 'x' && isHex(c2) && isHex(c3):
		return byte(hexVal(c2)<<4 | hexVal(c3)), 3
	case isOct(c1) && isOct(c2) && isOct(c3):
		return (c1-'0')<<6 | (c2-'0')<<3 | (c3 - '0'), 3
	}
	switch c1 {
	case 'a':
		return '\a', 1
	case 'b':
		return '\b', 1
	case 'f':
		return '\f', 1
	case 'n':
		return '\n', 1
	case 'r':
		return '\r', 1
	case 't':
		return '\t', 1
	case 'v':
		return '\v', 1
	case '\\':
		return '\\', 1
	case '\'':
		return '\'', 1
	case '"':
		return '"', 1
	case '?':
		return '?', 1
	}
	return 0, 0
}
