package mem

import "fmt"

// DefaultPageSize provides a default for Bytes.PageSize.
const DefaultPageSize = 4096

// LimitError indicates that a memory operation, like load or store, reached
// past a limit.
type LimitError struct {
	Addr uint
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v @%v", lim.Op, lim.Addr)
}

// checkLimit checks the end address of an operation; a zero Limit is
// unlimited.
func (m *Bytes) checkLimit(end uint, op string) error {
	if m.Limit != 0 && end > m.Limit {
		return LimitError{end, op}
	}
	return nil
}

func (m *Bytes) pageSize() uint {
	if m.PageSize == 0 {
		m.PageSize = DefaultPageSize
	}
	return m.PageSize
}

// page returns the page containing addr, and the offset of addr within it.
// A nil page is returned for unallocated space, unless alloc is true.
func (m *Bytes) page(addr uint, alloc bool) ([]byte, uint) {
	size := m.pageSize()
	i, off := addr/size, addr%size
	if i >= uint(len(m.pages)) {
		if !alloc {
			return nil, off
		}
		m.pages = append(m.pages, make([][]byte, i+1-uint(len(m.pages)))...)
	}
	if m.pages[i] == nil && alloc {
		m.pages[i] = make([]byte, size)
	}
	return m.pages[i], off
}
