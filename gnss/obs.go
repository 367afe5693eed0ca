package gnss

import "math"

// maxADRRoll is the ADR wraparound modulus for the compressed observation
// record's 32-bit accumulated-Doppler-range field, spec.md §4.5: 2^23.
const maxADRRoll = 8388608.0

// maxLockTime is the largest lock-time value RANGECMP's 21-bit fixed-point
// field can represent (0x1FFFFF/32). A reading at or above it means the
// counter has saturated, not that the signal actually relocked, so it must
// not feed the cycle-slip comparison, spec.md §4.5.
const maxLockTime = 65535.968

// lockState tracks, per satellite/slot, the values needed to compute a
// loss-of-lock indicator across epochs: the previous epoch's raw lock time
// and the instant it was observed, so a slip can be judged against how much
// time actually elapsed rather than a bare less-than test.
type lockState struct {
	time [MaxSat][NSlot]float64
	obs  [MaxSat][NSlot]Gtime
}

func newLockState() *lockState { return &lockState{} }

// updateLLI computes the LLI bitset for a new lock-time/parity-known/
// half-cycle-added reading and updates the running state, spec.md §3/§8.
// A cycle slip is declared when the lock-time counter grew by less than the
// time that actually elapsed since the previous epoch (plus 0.05s slack for
// receiver rounding); a saturated lock-time counter (>= maxLockTime) never
// triggers this check, since it stops advancing once pegged at its max
// representable value. Half-cycle-ambiguous and half-cycle-added are read
// directly off the tracking-status bits the caller passes in, not derived.
func (ls *lockState) updateLLI(sat, slot int, t Gtime, lockTime float64, parityKnown, halfAdded bool) uint8 {
	var lli uint8
	prevObs := ls.obs[sat-1][slot]
	if !prevObs.IsZero() && lockTime < maxLockTime {
		dt := TimeDiff(t, prevObs)
		prevLock := ls.time[sat-1][slot]
		if lockTime-prevLock+0.05 <= dt {
			lli |= LLISlip
		}
	}
	if !parityKnown {
		lli |= LLIHalfC
	}
	if halfAdded {
		lli |= LLIHalfA
	}
	ls.time[sat-1][slot] = lockTime
	ls.obs[sat-1][slot] = t
	return lli
}

// obsIndex returns the index of sat's record in data, appending a new
// zero-valued one at time t if none exists yet. Grounded on novatel.go's
// obsindex().
func obsIndex(data []ObsD, t Gtime, sat int) ([]ObsD, int) {
	for i := range data {
		if data[i].Sat == sat {
			return data, i
		}
	}
	if len(data) >= MaxObs {
		return data, -1
	}
	data = append(data, ObsD{Time: t, Sat: sat})
	return data, len(data) - 1
}

// gloFreqUpdate records a GLONASS satellite's frequency channel number as
// observed on the RANGE tracking record, so ephemeris-less wavelength
// lookups still work. Grounded on novatel.go recording nav.Glo_fcn from the
// RANGE decoder's glofreq field. fcn is the actual channel number (-7..+13);
// GloFCN stores it +8-biased so 0 can mean "never recorded", matching
// ephem_glo.go's decodeGloEphem and satref.WavelengthTable's reading of the
// same field. prn is already adjusted to the receiver's own 1-24 numbering
// (the wire PRN minus 37), matching what SatNo expects.
func gloFreqUpdate(nav *Nav, prn, fcn int) {
	if prn < 1 || prn > len(nav.GloFCN) {
		return
	}
	nav.GloFCN[prn-1] = fcn + 8
}

// decodeRange decodes an uncompressed RANGE record (spec.md §4.4) into the
// epoch time and observation set. Grounded on novatel.go's decode_rangeb()
// and the original Unicore source's decode_rangeb().
func (d *Decoder) decodeRange(frame []byte) int {
	body := frameBody(frame)
	if len(body) < 4 {
		return -1
	}
	n := int(u4(body[0:4]))
	if 4+n*44 > len(body) {
		return -1
	}
	t := d.frameTime(frame)
	if d.obsTime.IsZero() || math.Abs(TimeDiff(t, d.obsTime)) > 1e-9 {
		d.flushEpoch()
		d.obsTime = t
	}
	stored := 0
	for i := 0; i < n; i++ {
		rec := body[4+i*44 : 4+i*44+44]
		prn := int(u2(rec[0:2]))
		glofreq := int(u2(rec[2:4])) - 7
		psr := r8(rec[4:12])
		adr := r8(rec[16:24])
		dop := float64(r4(rec[28:32]))
		snr := float64(r4(rec[32:36]))
		lockTime := float64(r4(rec[36:40]))
		stat := u4(rec[40:44])

		sys := trackSys(stat)
		if sys == SysNone {
			continue
		}
		if sys == SysGLO && !trackParity(stat) {
			continue
		}
		slot, code, ok := obsSlot(d.Options, sys, trackSig(stat))
		if !ok {
			continue
		}
		if sys == SysGLO {
			prn -= 37
		}
		sat := d.Sats.SatNo(sys, prn)
		if sat == 0 {
			continue
		}
		if sys == SysGLO {
			gloFreqUpdate(d.Nav, prn, glofreq)
		}

		if !trackCodeLock(stat) {
			psr = 0
		}
		if !trackPhaseLock(stat) {
			adr, dop = 0, 0
		}

		var idx int
		d.Obs.Data, idx = obsIndex(d.Obs.Data, t, sat)
		if idx < 0 {
			continue
		}
		o := &d.Obs.Data[idx]
		o.Time = t
		o.P[slot] = psr
		o.L[slot] = -adr
		o.D[slot] = dop
		o.SNR[slot] = snrByte(snr)
		o.Code[slot] = code
		o.LLI[slot] = d.lock.updateLLI(sat, slot, t, lockTime, trackParity(stat), trackHalfA(stat))
		stored++
	}
	return stored
}

// decodeRangeCmp decodes a compressed RANGECMP record (spec.md §4.5),
// reconstructing carrier phase from the wrapped ADR field. Grounded on
// novatel.go's decode_rangecmpb().
func (d *Decoder) decodeRangeCmp(frame []byte) int {
	body := frameBody(frame)
	if len(body) < 4 {
		return -1
	}
	n := int(u4(body[0:4]))
	if 4+n*24 > len(body) {
		return -1
	}
	t := d.frameTime(frame)
	if d.obsTime.IsZero() || math.Abs(TimeDiff(t, d.obsTime)) > 1e-9 {
		d.flushEpoch()
		d.obsTime = t
	}
	stored := 0
	for i := 0; i < n; i++ {
		rec := body[4+i*24 : 4+i*24+24]
		stat := u4(rec[0:4])
		sys := trackSys(stat)
		if sys == SysNone {
			continue
		}
		if sys == SysGLO && !trackParity(stat) {
			continue
		}
		slot, code, ok := obsSlot(d.Options, sys, trackSig(stat))
		if !ok {
			continue
		}

		dopRaw := u4(rec[4:8]) & 0x0FFFFFFF
		dop := float64(exsign(dopRaw, 28)) / 256.0
		psrFine := u4(rec[7:11]) >> 4
		psr := float64(psrFine)/128.0 + float64(u1(rec[11:12]))*2097152.0
		adr := float64(i4(rec[12:16])) / 256.0
		prn := int(rec[17])
		// The 24-byte compressed record carries no separate GLONASS
		// frequency-channel field; there is nothing to read here for GLO
		// (unlike the uncompressed RANGE record).
		lockTime := float64(u4(rec[18:22])&0x1FFFFF) / 32.0
		snr := float64((u2(rec[20:22])&0x3FF)>>5) + 20

		if sys == SysGLO {
			prn -= 37
		}
		sat := d.Sats.SatNo(sys, prn)
		if sat == 0 {
			continue
		}

		if !trackCodeLock(stat) {
			psr = 0
		}

		wavelength := d.Waves.Wavelength(sat, code, d.Nav)
		var lcycles float64
		if wavelength > 0 {
			adrRolls := (psr/wavelength + adr) / maxADRRoll
			rounding := 0.5
			if adrRolls <= 0 {
				rounding = -0.5
			}
			lcycles = -adr + maxADRRoll*math.Floor(adrRolls+rounding)
		}
		if !trackPhaseLock(stat) {
			lcycles, dop = 0, 0
		}

		var idx int
		d.Obs.Data, idx = obsIndex(d.Obs.Data, t, sat)
		if idx < 0 {
			continue
		}
		o := &d.Obs.Data[idx]
		o.Time = t
		o.P[slot] = psr
		o.L[slot] = lcycles
		o.D[slot] = dop
		o.SNR[slot] = snrByte(snr)
		o.Code[slot] = code
		o.LLI[slot] = d.lock.updateLLI(sat, slot, t, lockTime, trackParity(stat), trackHalfA(stat))
		stored++
	}
	return stored
}

// snrByte converts a C/N0 value in dB-Hz to the 0.25 dB-Hz units ObsD.SNR
// stores it in, rounding to the nearest unit and saturating at the uint8
// range, spec.md §4.4's round(snr*4).
func snrByte(dbHz float64) uint8 {
	v := dbHz*4.0 + 0.5
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// flushEpoch clears the observation accumulator, spec.md §3's epoch buffer
// being reset whenever the receiver reports a new time-of-week.
func (d *Decoder) flushEpoch() {
	d.Obs.Data = d.Obs.Data[:0]
}
