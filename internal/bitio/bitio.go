package bitio

// ByteLen returns the number of bytes needed to hold n bits.
func ByteLen(n int) int {
	return (n + 7) / 8
}

// Set forces bit idx of buf to v. Bits are LSB-first within each byte.
func Set(buf []byte, idx int, v bool) {
	if v {
		buf[idx/8] |= 1 << (idx % 8)
	} else {
		buf[idx/8] &^= 1 << (idx % 8)
	}
}

// Get reports whether bit idx of buf is set.
func Get(buf []byte, idx int) bool {
	return buf[idx/8]&(1<<(idx%8)) != 0
}
