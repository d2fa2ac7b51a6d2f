// Package printf implements a small C-style formatter over a pull-based
// argument source.
//
// Conversions have the form %[flags][width][length]conv, where:
//   - flags are any of "0" (pad with zeros) and "-" (pad on the right)
//   - width is a decimal field width
//   - length is one of "h", "l", or "ll"
//   - conv is one of d u x X c s; c and s take no length
//
// Integer conversions crop their value to 32 bits by default, 16 bits under
// "h", and 64 bits under "l" or "ll". There is no "%%" escape.
package printf

import "errors"

// ErrFormat indicates an invalid conversion specification.
var ErrFormat = errors.New("invalid format")

// Source supplies conversion arguments in order.
type Source interface {
	NextInt() (int64, error)
	NextString() (string, error)
}

// Snprintf formats into buf, writing at most len(buf) bytes. It returns the
// number of bytes that the complete output would have taken, which may
// exceed len(buf).
//
// Output stops at the first invalid conversion, returning ErrFormat along
// with the count emitted so far; any error from args is returned likewise.
func Snprintf(buf []byte, format string, args Source) (int, error) {
	p := printer{buf: buf}
	err := p.format(format, args)
	return p.n, err
}

// Count returns the number of arguments that format would consume, stopping
// at any invalid conversion.
func Count(format string) int {
	var c counter
	(&printer{}).format(format, &c)
	return int(c)
}

type lengthMod int

const (
	lengthNone lengthMod = iota
	lengthShort
	lengthLong
	lengthLongLong
)

type spec struct {
	zeroPad  bool
	rightPad bool
	width    int
	length   lengthMod
}

type printer struct {
	buf []byte
	n   int
}

func (p *printer) emit(c byte) {
	if p.n < len(p.buf) {
		p.buf[p.n] = c
	}
	p.n++
}

func (p *printer) pad(c byte, n int) {
	for ; n > 0; n-- {
		p.emit(c)
	}
}

func (p *printer) format(format string, args Source) error {
	for i := 0; i < len(format); i++ {
		if c := format[i]; c != '%' {
			p.emit(c)
			continue
		}

		var sp spec
		for i++; i < len(format); i++ {
			if c := format[i]; c == '0' {
				sp.zeroPad = true
			} else if c == '-' {
				sp.rightPad = true
			} else {
				break
			}
		}
		for ; i < len(format) && '0' <= format[i] && format[i] <= '9'; i++ {
			sp.width = 10*sp.width + int(format[i]-'0')
		}
		if i < len(format) {
			switch format[i] {
			case 'h':
				sp.length = lengthShort
				i++
			case 'l':
				sp.length = lengthLong
				if i++; i < len(format) && format[i] == 'l' {
					sp.length = lengthLongLong
					i++
				}
			}
		}
		if i >= len(format) {
			return ErrFormat
		}

		var err error
		switch conv := format[i]; conv {
		case 'd':
			err = p.signed(sp, args)
		case 'u':
			err = p.unsigned(sp, args, 10, false)
		case 'x':
			err = p.unsigned(sp, args, 16, false)
		case 'X':
			err = p.unsigned(sp, args, 16, true)
		case 'c':
			err = p.char(sp, args)
		case 's':
			err = p.str(sp, args)
		default:
			err = ErrFormat
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (sp spec) crop(u uint64) uint64 {
	switch sp.length {
	case lengthNone:
		return uint64(uint32(u))
	case lengthShort:
		return uint64(uint16(u))
	}
	return u
}

func (p *printer) signed(sp spec, args Source) error {
	v, err := args.NextInt()
	if err != nil {
		return err
	}
	u, neg := uint64(v), v < 0
	if neg {
		u = uint64(-v)
	}
	p.number(sp, sp.crop(u), neg, 10, false)
	return nil
}

func (p *printer) unsigned(sp spec, args Source, base uint64, upper bool) error {
	v, err := args.NextInt()
	if err != nil {
		return err
	}
	p.number(sp, sp.crop(uint64(v)), false, base, upper)
	return nil
}

func (p *printer) number(sp spec, u uint64, neg bool, base uint64, upper bool) {
	digits := "0123456789abcdef"
	if upper {
		digits = "0123456789ABCDEF"
	}

	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = digits[u%base]
		if u /= base; u == 0 {
			break
		}
	}

	width := len(tmp) - i
	if neg {
		width++
	}
	padding := sp.width - width

	if !sp.rightPad {
		if sp.zeroPad {
			if neg {
				p.emit('-')
			}
			p.pad('0', padding)
		} else {
			p.pad(' ', padding)
			if neg {
				p.emit('-')
			}
		}
	} else if neg {
		p.emit('-')
	}
	for _, c := range tmp[i:] {
		p.emit(c)
	}
	if sp.rightPad {
		p.pad(' ', padding)
	}
}

func (p *printer) char(sp spec, args Source) error {
	if sp.length != lengthNone {
		return ErrFormat
	}
	v, err := args.NextInt()
	if err != nil {
		return err
	}
	if !sp.rightPad {
		p.pad(' ', sp.width-1)
	}
	p.emit(byte(v))
	if sp.rightPad {
		p.pad(' ', sp.width-1)
	}
	return nil
}

func (p *printer) str(sp spec, args Source) error {
	if sp.length != lengthNone {
		return ErrFormat
	}
	s, err := args.NextString()
	if err != nil {
		return err
	}
	if !sp.rightPad {
		p.pad(' ', sp.width-len(s))
	}
	for i := 0; i < len(s); i++ {
		p.emit(s[i])
	}
	if sp.rightPad {
		p.pad(' ', sp.width-len(s))
	}
	return nil
}

type counter int

func (c *counter) NextInt() (int64, error)     { *c++; return 0, nil }
func (c *counter) NextString() (string, error) { *c++; return "", nil }
