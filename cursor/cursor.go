// Package cursor provides checked, forward-only reads over an in-memory
// byte buffer.
package cursor

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"
)

// Cursor reads a fixed buffer left to right. The position only ever
// advances; a failed read leaves it where it was.
type Cursor struct {
	d   []byte
	off int
}

func New(d []byte) *Cursor {
	return &Cursor{d: d}
}

// Offset returns the position of the next unread byte.
func (c *Cursor) Offset() int {
	return c.off
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int {
	return len(c.d) - c.off
}

func (c *Cursor) need(n int) error {
	if c.Len() < n {
		return &TruncatedError{Off: c.off, Need: n, Have: c.Len()}
	}
	return nil
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	return c.d[c.off], nil
}

// Get returns the next byte and consumes it.
func (c *Cursor) Get() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.d[c.off]
	c.off++
	return b, nil
}

// ReadN consumes exactly n bytes. The result aliases the buffer.
func (c *Cursor) ReadN(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	res := c.d[c.off : c.off+n : c.off+n]
	c.off += n
	return res, nil
}

// ReadWord consumes a big-endian uint32.
func (c *Cursor) ReadWord() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	w := binary.BigEndian.Uint32(c.d[c.off:])
	c.off += 4
	return w, nil
}

// ReadEscapedString consumes bytes up to and including an unescaped NUL.
// A backslash makes the byte after it literal, so the payload may carry
// NUL and backslash bytes. The NUL is not part of the result. Invalid
// UTF-8 is replaced rather than rejected, one U+FFFD per maximal invalid
// subsequence.
func (c *Cursor) ReadEscapedString() (string, error) {
	buf := make([]byte, 0, 16)
	i := c.off
	for {
		if i >= len(c.d) {
			return "", &TruncatedError{Off: i, Need: 1, Have: 0}
		}
		b := c.d[i]
		i++
		switch b {
		case 0:
			c.off = i
			return validUTF8(buf), nil
		case '\\':
			if i >= len(c.d) {
				return "", &TruncatedError{Off: i, Need: 1, Have: 0}
			}
			buf = append(buf, c.d[i])
			i++
		default:
			buf = append(buf, b)
		}
	}
}

func validUTF8(p []byte) string {
	if utf8.Valid(p) {
		return string(p)
	}
	var sb strings.Builder
	sb.Grow(len(p) + 8)
	for len(p) > 0 {
		r, n := utf8.DecodeRune(p)
		if r == utf8.RuneError && n == 1 {
			sb.WriteRune(utf8.RuneError)
			p = p[invalidLen(p):]
			continue
		}
		sb.Write(p[:n])
		p = p[n:]
	}
	return sb.String()
}

// invalidLen returns the length of the invalid sequence starting p: the
// longest prefix of a well formed encoding, or 1.
func invalidLen(p []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var want int
	switch b := p[0]; {
	case b >= 0xC2 && b <= 0xDF:
		want = 2
	case b == 0xE0:
		want, lo = 3, 0xA0
	case b == 0xED:
		want, hi = 3, 0x9F
	case b >= 0xE1 && b <= 0xEF:
		want = 3
	case b == 0xF0:
		want, lo = 4, 0x90
	case b >= 0xF1 && b <= 0xF3:
		want = 4
	case b == 0xF4:
		want, hi = 4, 0x8F
	default:
		return 1
	}
	i := 1
	for i < want && i < len(p) && p[i] >= lo && p[i] <= hi {
		lo, hi = 0x80, 0xBF
		i++
	}
	return i
}
