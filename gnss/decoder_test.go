package gnss

import (
	"encoding/binary"
	"hash/crc32"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubResolver is a minimal SatelliteResolver for tests that don't need
// satref's PRN-range tables: it treats prn as the satellite index directly.
type stubResolver struct{}

func (stubResolver) SatNo(sys, prn int) int {
	if prn <= 0 {
		return 0
	}
	return prn
}

// stubWaves returns a fixed wavelength regardless of satellite/code, letting
// RANGECMP tests pin the ADR roll arithmetic to a known constant.
type stubWaves struct{ w float64 }

func (s stubWaves) Wavelength(sat int, code ObsCode, nav *Nav) float64 { return s.w }

type stubURA struct{}

func (stubURA) URAIndex(v float64) int { return 0 }

func newTestDecoder() *Decoder {
	nav := NewNav()
	d := NewDecoder(Options{}, nav, stubResolver{}, stubWaves{w: CLightForTest / 1575.42e6}, stubURA{})
	d.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return d
}

// CLightForTest mirrors satref.CLight without importing satref (which
// itself imports gnss), avoiding an import cycle.
const CLightForTest = 299792458.0

func buildFrame(msgID int, week int, towMs int32, body []byte) []byte {
	header := make([]byte, 28)
	header[0], header[1], header[2] = syncByte0, syncByte1, syncByte2
	header[3] = 28
	binary.LittleEndian.PutUint16(header[4:6], uint16(msgID))
	binary.LittleEndian.PutUint16(header[8:10], uint16(len(body)))
	binary.LittleEndian.PutUint16(header[14:16], uint16(week))
	binary.LittleEndian.PutUint32(header[16:20], uint32(towMs))
	frame := append(header, body...)
	crc := crc32.ChecksumIEEE(frame)
	crcBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(crcBytes, crc)
	return append(frame, crcBytes...)
}

func putF8(b []byte, off int, v float64) {
	binary.LittleEndian.PutUint64(b[off:off+8], math.Float64bits(v))
}
func putF4(b []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(b[off:off+4], math.Float32bits(v))
}
func putU4(b []byte, off int, v uint32) { binary.LittleEndian.PutUint32(b[off:off+4], v) }
func putU2(b []byte, off int, v uint16) { binary.LittleEndian.PutUint16(b[off:off+2], v) }

// TestSyncAndCRC covers S1: a sync + zero-length, CRC-valid frame with an
// unrecognized message ID is fully consumed and reported as StatNone,
// leaving the decoder's stores untouched.
func TestSyncAndCRC(t *testing.T) {
	assert := assert.New(t)
	d := newTestDecoder()
	frame := buildFrame(999, 2300, 100000, nil)

	var stat int
	for _, b := range frame {
		stat = d.Input(b)
	}
	assert.Equal(StatNone, stat)
	assert.Empty(d.Obs.Data)
	assert.Equal("", d.MsgType)
}

// TestCorruptedCRC covers S6: a single flipped body byte after CRC
// computation makes decodeFrame report StatError without touching any
// store.
func TestCorruptedCRC(t *testing.T) {
	assert := assert.New(t)
	d := newTestDecoder()

	body := make([]byte, 4+44)
	putU4(body, 0, 1)
	stat := d.decodeFrame(mustCorruptedRangeFrame(body))
	assert.Equal(StatError, stat)
	assert.Empty(d.Obs.Data)
}

func mustCorruptedRangeFrame(body []byte) []byte {
	frame := buildFrame(msgIDRange, 2300, 100000, body)
	frame[len(frame)-5] ^= 0xFF // corrupt the last body byte, CRC now stale
	return frame
}

// TestZeroWeekRejected covers spec.md §4.2/§7: a frame reporting GPS week 0
// is a malformed record, not a legitimate pre-rollover timestamp.
func TestZeroWeekRejected(t *testing.T) {
	assert := assert.New(t)
	d := newTestDecoder()
	frame := buildFrame(msgIDRange, 0, 100000, rangeBody())

	assert.Equal(StatError, d.decodeFrame(frame))
	assert.Empty(d.Obs.Data)
}

// TestEventAllIsIgnoredNotDiscarded covers spec.md §9: EVENTALL is a
// recognized-but-ignored message reporting plain StatNone, not the
// ion/utc-reserved StatDiscard code.
func TestEventAllIsIgnoredNotDiscarded(t *testing.T) {
	assert := assert.New(t)
	d := newTestDecoder()
	frame := buildFrame(msgIDEventAll, 2300, 100000, nil)

	assert.Equal(StatNone, d.decodeFrame(frame))
	assert.Equal("EVENTALL", d.MsgType)
}
