package mem

import (
	"bytes"
	"fmt"
	"strings"
)

// Arena is a bump allocator over Bytes memory. Nothing allocated from an
// Arena is ever freed; address 0 is never handed out, so it may serve as null.
type Arena struct {
	Bytes
	next uint
}

// AddrError indicates that an address does not refer to allocated arena space.
type AddrError uint

func (addr AddrError) Error() string {
	return fmt.Sprintf("invalid string address %v", uint(addr))
}

// Used returns the address of the next allocation, which is also the number
// of bytes claimed so far (counting the null byte at 0).
func (a *Arena) Used() uint {
	if a.next == 0 {
		return 1
	}
	return a.next
}

// Reserve claims n bytes, returning their base address. Reserved space reads
// as zero until stored into.
// Returns a LimitError if the claim would exceed Limit.
func (a *Arena) Reserve(n uint) (uint, error) {
	addr := a.Used()
	if err := a.checkLimit(addr+n, "alloc"); err != nil {
		return 0, err
	}
	a.next = addr + n
	return addr, nil
}

// AllocString copies s into the arena with a terminating zero byte.
func (a *Arena) AllocString(s string) (uint, error) {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	addr, err := a.Reserve(uint(len(buf)))
	if err == nil {
		err = a.Stor(addr, buf)
	}
	return addr, err
}

// String reads the zero-terminated string starting at addr.
// Returns an AddrError if addr lies outside of space claimed so far.
func (a *Arena) String(addr uint) (string, error) {
	end := a.Used()
	if addr == 0 || addr >= end {
		return "", AddrError(addr)
	}

	var (
		sb    strings.Builder
		chunk [64]byte
	)
	for addr < end {
		buf := chunk[:]
		if n := end - addr; n < uint(len(buf)) {
			buf = buf[:n]
		}
		if err := a.LoadInto(addr, buf); err != nil {
			return "", err
		}
		if i := bytes.IndexByte(buf, 0); i >= 0 {
			sb.Write(buf[:i])
			break
		}
		sb.Write(buf)
		addr += uint(len(buf))
	}
	return sb.String(), nil
}
