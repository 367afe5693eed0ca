package gnss

import "hash/crc32"

// Message IDs, spec.md §3 "Framing". Grounded on the original Unicore
// source's ID_RANGE/ID_RANGECMP/ID_GPSEPHEM/ID_GLOEPHEMERIS/ID_GALEPHEMERIS/
// ID_BD2EPHEM/ID_EVENTALL constants.
const (
	msgIDRange     = 43
	msgIDRangeCmp  = 140
	msgIDGPSEphem  = 7
	msgIDGloEphem  = 723
	msgIDGalEphem  = 1122
	msgIDBDSEphem  = 1047
	msgIDEventAll  = 308 // never decoded; see decoder.go's msgIDEventAll case
)

const (
	syncByte0 = 0xAA
	syncByte1 = 0x44
	syncByte2 = 0x12
)

// frameState is the byte-at-a-time synchronizer state, grounded on the
// original Unicore source's sync_unicore()/input_unicore() and novatel.go's
// sync_oem4()/Input_oem4().
type frameState int

const (
	stateSync0 frameState = iota
	stateSync1
	stateSync2
	stateHeader
	stateBody
)

// framer accumulates bytes from a stream into complete, CRC-terminated
// frames (sync + header + body + 4-byte CRC-32).
type framer struct {
	state     frameState
	buf       []byte
	headerLen int
	bodyLen   int
}

func (f *framer) reset() {
	f.state = stateSync0
	f.buf = f.buf[:0]
	f.headerLen = 0
	f.bodyLen = 0
}

// addByte feeds one byte into the synchronizer. It returns a complete frame
// (sync through CRC, still CRC-unchecked) and ok=true once one is fully
// buffered; otherwise ok is false and the caller should keep feeding bytes.
func (f *framer) addByte(b byte) (frame []byte, ok bool) {
	switch f.state {
	case stateSync0:
		if b == syncByte0 {
			f.buf = append(f.buf[:0], b)
			f.state = stateSync1
		}
	case stateSync1:
		switch b {
		case syncByte1:
			f.buf = append(f.buf, b)
			f.state = stateSync2
		case syncByte0:
			f.buf = append(f.buf[:0], b)
		default:
			f.reset()
		}
	case stateSync2:
		switch {
		case b == syncByte2:
			f.buf = append(f.buf, b)
			f.state = stateHeader
		case b == syncByte0:
			f.buf = append(f.buf[:0], b)
			f.state = stateSync1
		default:
			f.reset()
		}
	case stateHeader:
		f.buf = append(f.buf, b)
		if len(f.buf) == 4 {
			f.headerLen = int(f.buf[3])
			if f.headerLen < 10 || f.headerLen > MaxRawLen {
				f.reset()
				return nil, false
			}
		}
		if f.headerLen > 0 && len(f.buf) == f.headerLen {
			f.bodyLen = int(u2(f.buf[8:10]))
			if f.bodyLen < 0 || f.headerLen+f.bodyLen+4 > MaxRawLen {
				f.reset()
				return nil, false
			}
			f.state = stateBody
		}
	case stateBody:
		f.buf = append(f.buf, b)
		if len(f.buf) == f.headerLen+f.bodyLen+4 {
			frame = append([]byte(nil), f.buf...)
			f.reset()
			return frame, true
		}
	}
	return nil, false
}

// crcValid checks the trailing 4-byte CRC-32 against the rest of the frame.
// The NovAtel/Unicore CRC-32 is byte-reflected with polynomial 0xEDB88320,
// which is bit-identical to the IEEE polynomial hash/crc32 implements — the
// standard library is the correct tool here, not a gap; see DESIGN.md.
func crcValid(frame []byte) bool {
	if len(frame) < 4 {
		return false
	}
	body := frame[:len(frame)-4]
	want := u4(frame[len(frame)-4:])
	return crc32.ChecksumIEEE(body) == want
}

// Header field accessors, spec.md §3. headerLen is stored at buf[3]; message
// ID at buf[4:6]; message body length at buf[8:10]; GPS week at buf[14:16];
// milliseconds of week at buf[16:20].
func frameHeaderLen(frame []byte) int { return int(frame[3]) }
func frameMsgID(frame []byte) int     { return int(u2(frame[4:6])) }
func frameWeek(frame []byte) int      { return int(u2(frame[14:16])) }
func frameTow(frame []byte) float64   { return float64(i4(frame[16:20])) / 1000.0 }
func frameBody(frame []byte) []byte {
	hl := frameHeaderLen(frame)
	return frame[hl : len(frame)-4]
}
