package mem

// Pages returns allocated memory pages for testing; holes are nil.
func (m *Bytes) Pages() [][]byte { return m.pages }
