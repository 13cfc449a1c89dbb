package table

// ElementSizes lists every multiple of the memory word that still fits a
// 64-bit cell, in words. These are the widths a WordTable can display.
func ElementSizes(wordBits uint) []int {
	var out []int
	for n := 1; uint(n)*wordBits <= 64; n++ {
		out = append(out, n)
	}
	return out
}

// SizeNames maps element widths in bits to conventional names, given the
// memory's word width and the CPU's. Generic names take priority over the
// architecture-specific ones.
func SizeNames(memWordBits, cpuWordBits uint) map[uint]string {
	names := make(map[uint]string)
	names[memWordBits] = "Memory-Word"
	names[cpuWordBits/2] = "Half-Word"
	names[cpuWordBits] = "Word"
	names[cpuWordBits*2] = "Double-Word"
	names[cpuWordBits*4] = "Quad-Word"
	names[1] = "Bit"
	names[4] = "Nybble"
	names[8] = "Byte"
	return names
}
