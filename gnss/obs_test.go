package gnss

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testPhaseLock   = uint32(1 << 10)
	testParityKnown = uint32(1 << 11)
	testCodeLock    = uint32(1 << 12)
	testLocked      = testPhaseLock | testParityKnown | testCodeLock
)

func gpsRangeRecord(prn int, psr, adr float64, dop, snr, lockTime float32, statBits uint32) []byte {
	rec := make([]byte, 44)
	putU2(rec, 0, uint16(prn))
	putF8(rec, 4, psr)
	putF8(rec, 16, adr)
	putF4(rec, 28, dop)
	putF4(rec, 32, snr)
	putF4(rec, 36, lockTime)
	putU4(rec, 40, statBits)
	return rec
}

func rangeBody(records ...[]byte) []byte {
	body := make([]byte, 4)
	putU4(body, 0, uint32(len(records)))
	for _, r := range records {
		body = append(body, r...)
	}
	return body
}

// TestDecodeRangeObservation covers S2: a single GPS RANGE record decodes
// into the observation fields the wire values say it should. Carrier phase
// is stored negated (spec.md §4.4's "store carrier as -ADR").
func TestDecodeRangeObservation(t *testing.T) {
	assert := assert.New(t)
	d := newTestDecoder()

	rec := gpsRangeRecord(5, 20000000.0, 5000000.5, 1234.5, 45.25, 10.0, testLocked)
	frame := buildFrame(msgIDRange, 2300, 100000, rangeBody(rec))

	stat := d.decodeFrame(frame)
	assert.Equal(StatObs, stat)
	assert.Len(d.Obs.Data, 1)

	o := d.Obs.Data[0]
	assert.Equal(5, o.Sat)
	assert.Equal(20000000.0, o.P[0])
	assert.Equal(-5000000.5, o.L[0])
	assert.Equal(1234.5, o.D[0])
	assert.Equal(uint8(181), o.SNR[0]) // 45.25 * 4
	assert.Equal(CodeL1C, o.Code[0])
	assert.Equal(uint8(0), o.LLI[0]) // first sighting: no slip, parity known
}

// TestDecodeRangeZeroesUnlockedFields covers spec.md §4.4's code-lock/
// phase-lock zeroing: without those bits set, pseudorange collapses to zero
// and carrier phase/Doppler collapse to zero.
func TestDecodeRangeZeroesUnlockedFields(t *testing.T) {
	assert := assert.New(t)
	d := newTestDecoder()

	rec := gpsRangeRecord(5, 20000000.0, 5000000.5, 1234.5, 45.25, 10.0, testParityKnown)
	frame := buildFrame(msgIDRange, 2300, 100000, rangeBody(rec))
	assert.Equal(StatObs, d.decodeFrame(frame))

	o := d.Obs.Data[0]
	assert.Equal(0.0, o.P[0])
	assert.Equal(0.0, o.L[0])
	assert.Equal(0.0, o.D[0])
}

// TestLLISlipOnLockTimeDecrease covers S3: a later epoch reporting a lock
// time that grew by less than the elapsed time means the receiver
// reacquired the signal.
func TestLLISlipOnLockTimeDecrease(t *testing.T) {
	assert := assert.New(t)
	d := newTestDecoder()

	rec1 := gpsRangeRecord(5, 20000000.0, 5000000.5, 1234.5, 45.25, 10.0, testLocked)
	frame1 := buildFrame(msgIDRange, 2300, 100000, rangeBody(rec1))
	assert.Equal(StatObs, d.decodeFrame(frame1))

	rec2 := gpsRangeRecord(5, 20000100.0, 5000050.5, 1200.0, 44.0, 2.0, testLocked)
	frame2 := buildFrame(msgIDRange, 2300, 101000, rangeBody(rec2))
	assert.Equal(StatObs, d.decodeFrame(frame2))

	assert.Len(d.Obs.Data, 1) // new epoch flushed the previous record
	o := d.Obs.Data[0]
	assert.NotZero(o.LLI[0] & LLISlip)
}

// TestGlonassParityUnknownSkipped covers spec.md §4.4's "if GLO and parity
// unknown, skip" rule.
func TestGlonassParityUnknownSkipped(t *testing.T) {
	assert := assert.New(t)
	d := newTestDecoder()

	// System field bits (16-18) = 1 selects GLONASS.
	stat := testCodeLock | testPhaseLock | uint32(1<<16)
	rec := gpsRangeRecord(37+3, 19000000.0, 4000000.0, 500.0, 40.0, 5.0, stat)
	frame := buildFrame(msgIDRange, 2300, 100000, rangeBody(rec))

	assert.Equal(StatNone, d.decodeFrame(frame))
	assert.Empty(d.Obs.Data)
}

// TestGlonassPrnOffsetAndFcnBias covers spec.md §4.4's "GLO PRN = raw - 37"
// and the +8-biased GloFCN storage convention.
func TestGlonassPrnOffsetAndFcnBias(t *testing.T) {
	assert := assert.New(t)
	d := newTestDecoder()

	stat := testLocked | uint32(1<<16) // GLONASS, sig 0 -> L1C
	rec := gpsRangeRecord(37+3, 19000000.0, 4000000.0, 500.0, 40.0, 5.0, stat)
	putU2(rec, 2, uint16(int16(3+7))) // wire glofreq = actual fcn(3) + 7
	frame := buildFrame(msgIDRange, 2300, 100000, rangeBody(rec))

	assert.Equal(StatObs, d.decodeFrame(frame))
	assert.Len(d.Obs.Data, 1)
	assert.Equal(3, d.Obs.Data[0].Sat)
	assert.Equal(3+8, d.Nav.GloFCN[2]) // slot prn-1 = 2, +8-biased
}

// TestDecodeRangeCmpADRReconstruction checks the compressed-record roll
// arithmetic reconstructs a carrier phase consistent with the pseudorange:
// L + adr must be a whole multiple of the 2^23-cycle roll modulus.
func TestDecodeRangeCmpADRReconstruction(t *testing.T) {
	assert := assert.New(t)
	nav := NewNav()
	wavelength := 299792458.0 / 1575.42e6
	d := NewDecoder(Options{}, nav, stubResolver{}, stubWaves{w: wavelength}, stubURA{})

	rec := make([]byte, 24)
	putU4(rec, 0, testLocked) // GPS, sig 0 -> L1C

	dopRaw := int32(1000 * 256) // 1000 Hz
	putU4(rec, 4, uint32(dopRaw)&0x0FFFFFFF)

	// psr split across a u4 at offset 7 (upper nibble used) and a u1
	// extension byte at offset 11, matching decodeRangeCmp's read.
	psrMeters := 21000000.0
	psrFine := uint32(psrMeters / (1.0 / 128.0))
	putU4(rec, 7, (psrFine&0x0FFFFFFF)<<4)
	rec[11] = byte((psrFine >> 28) & 0xFF)

	adrCycles := 30000.25 // within one roll of psr/wavelength
	putU4(rec, 12, uint32(int32(adrCycles*256.0)))

	rec[17] = 7 // prn
	// Lock time is a 21-bit fixed-point field spanning bytes 18-21.
	lockRaw := uint32(50*32) & 0x1FFFFF
	existing := binary.LittleEndian.Uint32(rec[18:22])
	binary.LittleEndian.PutUint32(rec[18:22], (existing &^ 0x1FFFFF) | lockRaw)

	body := make([]byte, 4)
	putU4(body, 0, 1)
	body = append(body, rec...)
	frame := buildFrame(msgIDRangeCmp, 2300, 100000, body)

	assert.Equal(StatObs, d.decodeFrame(frame))
	assert.Len(d.Obs.Data, 1)
	o := d.Obs.Data[0]
	assert.Equal(7, o.Sat)
	assert.InDelta(1000.0, o.D[0], 0.01)
	// L = -adr + maxADRRoll*rolls, so (L+adr)/maxADRRoll must be an integer.
	ratio := (o.L[0] + adrCycles) / maxADRRoll
	assert.InDelta(math.Round(ratio), ratio, 1e-6)
}

// TestDecodeRangeCmpPhaseUnlockZeroesCarrier covers spec.md §4.5/§8's
// property 4: without phase-lock, the reconstructed carrier phase and
// Doppler must still come out zero even though pseudorange (code-lock is
// set) reconstructs the roll count to a non-zero value.
func TestDecodeRangeCmpPhaseUnlockZeroesCarrier(t *testing.T) {
	assert := assert.New(t)
	nav := NewNav()
	wavelength := 299792458.0 / 1575.42e6
	d := NewDecoder(Options{}, nav, stubResolver{}, stubWaves{w: wavelength}, stubURA{})

	rec := make([]byte, 24)
	putU4(rec, 0, testCodeLock|testParityKnown) // no phase-lock bit

	dopRaw := int32(1000 * 256)
	putU4(rec, 4, uint32(dopRaw)&0x0FFFFFFF)

	psrMeters := 21000000.0
	psrFine := uint32(psrMeters / (1.0 / 128.0))
	putU4(rec, 7, (psrFine&0x0FFFFFFF)<<4)
	rec[11] = byte((psrFine >> 28) & 0xFF)

	adrCycles := 30000.25
	putU4(rec, 12, uint32(int32(adrCycles*256.0)))
	rec[17] = 7

	body := make([]byte, 4)
	putU4(body, 0, 1)
	body = append(body, rec...)
	frame := buildFrame(msgIDRangeCmp, 2300, 100000, body)

	assert.Equal(StatObs, d.decodeFrame(frame))
	o := d.Obs.Data[0]
	assert.InDelta(psrMeters, o.P[0], 1e-6) // code-lock set: pseudorange survives
	assert.Equal(0.0, o.L[0])
	assert.Equal(0.0, o.D[0])
}
