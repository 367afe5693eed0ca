package gnss

import (
	"encoding/binary"
	"math"
)

// Little-endian field readers over a byte slice at a given offset, grounded
// on the teacher's U1/U2L/U4L/I4L/R4L/R8L helpers (crescent.go, binex.go).
// Each takes the remainder of the buffer from the field's start so callers
// write u1(buf[off:]) the way the teacher writes U1(raw.Buff[idx:]).

func u1(p []byte) uint8  { return p[0] }
func i1(p []byte) int8   { return int8(p[0]) }
func u2(p []byte) uint16 { return binary.LittleEndian.Uint16(p) }
func u4(p []byte) uint32 { return binary.LittleEndian.Uint32(p) }
func i4(p []byte) int32  { return int32(binary.LittleEndian.Uint32(p)) }
func r4(p []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(p))
}
func r8(p []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(p))
}

// exsign sign-extends the low `bits` bits of v to a signed 32-bit value.
func exsign(v uint32, bits int) int32 {
	if v&(1<<(uint(bits)-1)) != 0 {
		return int32(v | (^uint32(0) << uint(bits)))
	}
	return int32(v)
}
