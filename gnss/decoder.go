package gnss

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Input/InputFile return codes, spec.md §6.
const (
	StatEOF   = -2 // end of stream (InputFile only)
	StatError = -1 // CRC failure, truncated frame, or malformed record
	StatNone  = 0  // frame consumed, nothing new to report
	StatObs   = 1  // observation epoch ready in d.Obs
	StatEphem = 2  // ephemeris stored or updated in d.Nav
	StatDiscard = 9 // reserved for ionosphere/UTC parameter records; unused
	// by this receiver family, which never emits them
)

// Decoder is a streaming Unicore-style telemetry decoder. It owns no state
// beyond what a single receiver's stream needs, so a host running several
// receivers constructs one Decoder per stream; the Nav store, however, is
// caller-supplied so several Decoders can share a navigation solution.
type Decoder struct {
	Options Options
	Nav     *Nav
	Obs     Obs

	Sats  SatelliteResolver
	Waves WavelengthSource
	URA   URAIndexer

	Log *logrus.Logger

	// Now overrides the wall-clock reference AdjGpsWeek uses to resolve
	// 10-bit week rollovers. Defaults to DefaultWeekResolver; tests set it
	// to a fixed instant.
	Now WeekResolver

	MsgType string // diagnostic: last decoded message's name

	frame   framer
	obsTime Gtime
	lock    *lockState
}

// NewDecoder builds a Decoder ready to consume a byte stream. nav must
// outlive the Decoder; sats/waves/ura may be satref's default
// implementations or a host-supplied substitute.
func NewDecoder(opt Options, nav *Nav, sats SatelliteResolver, waves WavelengthSource, ura URAIndexer) *Decoder {
	d := &Decoder{
		Options: opt,
		Nav:     nav,
		Obs:     newObs(),
		Sats:    sats,
		Waves:   waves,
		URA:     ura,
		Log:     logrus.New(),
		Now:     DefaultWeekResolver,
		lock:    newLockState(),
	}
	d.Log.SetOutput(io.Discard)
	return d
}

func (d *Decoder) now() time.Time {
	if d.Now == nil {
		return DefaultWeekResolver()
	}
	return d.Now()
}

// frameTime resolves a frame's header week/tow into a Gtime, disambiguating
// the receiver's 10-bit rolled-over week against d.now() first, spec.md
// §4.2. Every record decoder that stamps a time off the frame header (as
// opposed to a field inside the message body) goes through this instead of
// building a Gtime from frameWeek(frame) directly.
func (d *Decoder) frameTime(frame []byte) Gtime {
	week := AdjGpsWeek(frameWeek(frame), d.now())
	return GpsT2Time(week, frameTow(frame))
}

// Input feeds one stream byte into the decoder's synchronizer, decoding and
// dispatching a complete message whenever one accumulates. Grounded on the
// original Unicore source's input_unicore() and novatel.go's Input_oem4().
func (d *Decoder) Input(b byte) int {
	frame, ok := d.frame.addByte(b)
	if !ok {
		return StatNone
	}
	return d.decodeFrame(frame)
}

// InputFile reads and decodes messages from r until one is fully decoded,
// EOF is reached (StatEOF), or a read error occurs (StatError). Grounded on
// novatel.go's input_oem4f() bulk-read fast path.
func (d *Decoder) InputFile(r io.Reader) int {
	var b [1]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return StatEOF
			}
			return StatError
		}
		if stat := d.Input(b[0]); stat != StatNone {
			return stat
		}
	}
}

func (d *Decoder) decodeFrame(frame []byte) int {
	if !crcValid(frame) {
		d.Log.WithField("len", len(frame)).Warn("crc check failed, discarding frame")
		return StatError
	}
	if frameWeek(frame) == 0 {
		d.Log.Warn("zero gps week, discarding frame")
		return StatError
	}
	id := frameMsgID(frame)
	switch id {
	case msgIDRange:
		d.MsgType = "RANGE"
		if n := d.decodeRange(frame); n > 0 {
			return StatObs
		} else if n < 0 {
			return StatError
		}
		return StatNone
	case msgIDRangeCmp:
		d.MsgType = "RANGECMP"
		if n := d.decodeRangeCmp(frame); n > 0 {
			return StatObs
		} else if n < 0 {
			return StatError
		}
		return StatNone
	case msgIDGPSEphem:
		d.MsgType = "GPSEPHEM"
		return d.ephemStat(d.decodeGPSEphem(frame))
	case msgIDGloEphem:
		d.MsgType = "GLOEPHEMERIS"
		return d.ephemStat(d.decodeGloEphem(frame))
	case msgIDGalEphem:
		d.MsgType = "GALEPHEMERIS"
		return d.ephemStat(d.decodeGalEphem(frame))
	case msgIDBDSEphem:
		d.MsgType = "BD2EPHEM"
		return d.ephemStat(d.decodeBDSEphem(frame))
	case msgIDEventAll:
		// Never implemented in the original Unicore source either — its
		// decode_unicore() dispatch has a commented-out case for this ID.
		// Kept here as a named, recognized-but-ignored case rather than
		// silently falling into default; StatDiscard (9) is reserved for
		// ionosphere/UTC parameter records, which this receiver family
		// doesn't emit, so an ignored event log reports plain StatNone.
		d.MsgType = "EVENTALL"
		return StatNone
	default:
		d.MsgType = ""
		return StatNone
	}
}

func (d *Decoder) ephemStat(n int) int {
	switch {
	case n > 0:
		return StatEphem
	case n < 0:
		return StatError
	default:
		return StatNone
	}
}
