package mem

// Bytes implements a byte-oriented paged memory, indexed directly by address.
// Pages are allocated on first store; unallocated ranges read as zero.
// PageSize must not change once the memory has been used.
type Bytes struct {
	PageSize uint

	// Limit specifies an address past which any store or load is an error.
	Limit uint

	pages [][]byte
}

// Size returns an address one position higher than the last position in the
// last page allocated so far.
func (m *Bytes) Size() uint {
	return uint(len(m.pages)) * m.pageSize()
}

// LoadInto reads len(buf) bytes from memory starting at addr.
// Returns an error if Limit would be exceeded; no partial load is done.
func (m *Bytes) LoadInto(addr uint, buf []byte) error {
	if err := m.checkLimit(addr+uint(len(buf)), "load"); err != nil {
		return err
	}
	for len(buf) > 0 {
		page, off := m.page(addr, false)
		var n int
		if page == nil {
			n = int(min(uint(len(buf)), m.pageSize()-off))
			clear(buf[:n])
		} else {
			n = copy(buf, page[off:])
		}
		buf = buf[n:]
		addr += uint(n)
	}
	return nil
}

// Stor stores data at addr, allocating pages if necessary.
// Returns an error if Limit would be exceeded; no partial store is done.
func (m *Bytes) Stor(addr uint, data []byte) error {
	if err := m.checkLimit(addr+uint(len(data)), "stor"); err != nil {
		return err
	}
	for len(data) > 0 {
		page, off := m.page(addr, true)
		n := copy(page[off:], data)
		data = data[n:]
		addr += uint(n)
	}
	return nil
}
