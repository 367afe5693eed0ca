package gnss

import "strings"

// Options is the parsed form of the receiver-dependent options string,
// spec.md §6 "Options string". The teacher (and the original Unicore C
// source) re-scans the raw string with strstr() on every record; SPEC_FULL
// parses it once at Decoder construction into this struct instead.
type Options struct {
	EPHALL  bool // store every ephemeris, skip the dedup check
	GL1P    bool // force GPS L1 P(Y) into the primary slot
	GL2X    bool // force GPS L2C(L) into the primary slot
	RL2C    bool // force GLONASS L2C into the primary slot
	EL1B    bool // force Galileo E1B into the primary slot
	GALINAV bool // prefer Galileo I/NAV clock
	GALFNAV bool // prefer Galileo F/NAV clock
}

// ParseOptions parses a space-separated options string per spec.md §6.
func ParseOptions(opt string) Options {
	var o Options
	for _, tok := range strings.Fields(opt) {
		switch tok {
		case "-EPHALL":
			o.EPHALL = true
		case "-GL1P":
			o.GL1P = true
		case "-GL2X":
			o.GL2X = true
		case "-RL2C":
			o.RL2C = true
		case "-EL1B":
			o.EL1B = true
		case "-GALINAV":
			o.GALINAV = true
		case "-GALFNAV":
			o.GALFNAV = true
		}
	}
	return o
}
