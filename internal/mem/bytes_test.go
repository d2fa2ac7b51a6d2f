package mem_test

import (
	"testing"

	"github.com/jcorbin/gonf/internal/mem"
	"github.com/stretchr/testify/require"
)

func Test_Bytes(t *testing.T) {
	var m mem.Bytes
	m.PageSize = 4

	require.Equal(t, uint(0), m.Size(), "expected 0 initial size")
	expectBytesAt(t, &m, 0, 0, 0, 0, 0)

	t.Run("9 -> 0", func(t *testing.T) {
		require.NoError(t, m.Stor(0, []byte{9}), "must stor @0")
		expectBytesAt(t, &m, 0, 9, 0, 0, 0, 0, 0)
	})

	t.Run("page hole", func(t *testing.T) {
		require.NoError(t, m.Stor(0x9, []byte{1, 2, 3, 4, 5, 6}), "must stor @0x9")
		require.Equal(t, [][]byte{
			{9, 0, 0, 0},
			nil,
			{0, 1, 2, 3},
			{4, 5, 6, 0},
		}, m.Pages(), "expected a page hole")
		expectBytesAt(t, &m, 2,
			0, 0,
			0, 0, 0, 0,
			0, 1, 2, 3,
			4, 5, 6, 0,
			0, 0)
		require.Equal(t, uint(0x10), m.Size())
	})

	t.Run("fill hole", func(t *testing.T) {
		require.NoError(t, m.Stor(0x5, []byte{7, 7}), "must stor @0x5")
		require.Equal(t, []byte{0, 7, 7, 0}, m.Pages()[1])
		expectBytesAt(t, &m, 0,
			9, 0, 0, 0,
			0, 7, 7, 0,
			0, 1, 2, 3)
	})

	t.Run("limit", func(t *testing.T) {
		m.Limit = 0x20
		err := m.Stor(0x1f, []byte{1, 2})
		require.Equal(t, mem.LimitError{Addr: 0x21, Op: "stor"}, err)
		require.EqualError(t, err, "memory limit exceeded by stor @33")
		require.Error(t, m.LoadInto(0x1f, make([]byte, 2)))
		require.NoError(t, m.Stor(0x1e, []byte{1, 2}))
	})
}

func expectBytesAt(t *testing.T, m *mem.Bytes, addr uint, values ...byte) {
	buf := make([]byte, len(values))
	for i := range buf {
		buf[i] = 0xff
	}
	require.NoError(t, m.LoadInto(addr, buf), "unexpected load error")
	require.Equal(t, values, buf, "expected values @%v", addr)
}
