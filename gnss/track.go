package gnss

// Tracking-status bit layout, spec.md §3. The 32-bit word is read
// little-endian and split into a chain of sub-fields; each accessor masks
// and shifts the field it names. Grounded on novatel.go's
// decode_track_stat() and the original Unicore source's decode_trackstat().
func trackSys(stat uint32) int {
	switch (stat >> 16) & 0x7 {
	case 0:
		return SysGPS
	case 1:
		return SysGLO
	case 2:
		return SysSBS
	case 3:
		return SysGAL
	case 4:
		return SysBDS
	case 5:
		return SysQZS
	}
	return SysNone
}

func trackSig(stat uint32) int        { return int((stat >> 21) & 0x1f) }
func trackParity(stat uint32) bool    { return (stat>>11)&1 != 0 }
func trackPhaseLock(stat uint32) bool { return (stat>>10)&1 != 0 }
func trackCodeLock(stat uint32) bool  { return (stat>>12)&1 != 0 }
func trackHalfA(stat uint32) bool     { return (stat>>28)&1 != 0 }

// sig2code maps (system, signal-type) to the observation code and native
// frequency slot it occupies, spec.md §4.3. This receiver reports a smaller
// signal set than the original Unicore/NovAtel superset (no GPS L5 or E5AltBOC
// tracking, for instance); entries absent from this table simply aren't
// produced, matching the original decode_trackstat()'s narrower switch.
func sig2code(sys, sig int) (code ObsCode, freq int, ok bool) {
	switch sys {
	case SysGPS, SysQZS:
		switch sig {
		case 0:
			return CodeL1C, 0, true
		case 9:
			if sys == SysGPS {
				return CodeL2P, 1, true
			}
			return CodeL2C, 1, true
		}
	case SysGLO:
		switch sig {
		case 0:
			return CodeL1C, 0, true
		case 5:
			return CodeL2C, 1, true
		}
	case SysGAL:
		switch sig {
		case 1:
			return CodeE1B, 0, true
		case 2:
			return CodeE1C, 0, true
		case 17:
			return CodeE5bQ, 1, true
		}
	case SysBDS:
		switch sig {
		case 0:
			return CodeB1I, 0, true
		case 17:
			return CodeB2I, 1, true
		}
	case SysSBS:
		switch sig {
		case 0:
			return CodeL1C, 0, true
		case 6:
			return CodeL5I, 2, true
		}
	}
	return CodeNone, -1, false
}

// checkpri resolves (code, freq) to a slot index in [0, NSlot), applying the
// primary/extended-slot force options from spec.md §6, or -1 to drop the
// observation. Grounded on the original Unicore source's checkpri(); several
// branches (the CODE_L1P/CODE_L2X force targets) are unreachable given
// sig2code's narrower table and are kept only because the option names
// themselves are part of the documented options string — see DESIGN.md.
func checkpri(opt Options, sys int, code ObsCode, freq int) int {
	switch sys {
	case SysGPS, SysQZS:
		if opt.GL1P && freq == 0 {
			if code == codeL1P {
				return 0
			}
			return -1
		}
		if opt.GL2X && freq == 1 {
			if code == codeL2X {
				return 1
			}
			return -1
		}
	case SysGLO:
		if opt.RL2C && freq == 1 {
			if code == CodeL2C {
				return 1
			}
			return -1
		}
	case SysGAL:
		if opt.EL1B && freq == 0 {
			if code == CodeE1B {
				return 0
			}
			return -1
		}
		if code == CodeE1B {
			return NFreq
		}
	}
	if freq < NFreq {
		return freq
	}
	return -1
}

// obsSlot combines sig2code and checkpri into the single lookup track.go's
// callers need: the slot an observation with this system/signal-type
// belongs in, and the code identifying it, or ok=false to drop it entirely.
func obsSlot(opt Options, sys, sig int) (slot int, code ObsCode, ok bool) {
	code, freq, ok := sig2code(sys, sig)
	if !ok {
		return -1, CodeNone, false
	}
	slot = checkpri(opt, sys, code, freq)
	if slot < 0 {
		return -1, CodeNone, false
	}
	return slot, code, true
}
