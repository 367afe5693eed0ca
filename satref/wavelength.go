package satref

import "github.com/unicorecomm/gnssdecode/gnss"

// CLight is the speed of light in vacuum (m/s), one of the "numeric
// constants" spec.md §1 lists as an external collaborator.
const CLight = 299792458.0

// Carrier frequencies (Hz), grounded on common.go's Code2Freq_GPS/_GAL/_BDS
// and the GLONASS FDMA plan (Code2Freq_GLO).
const (
	freqGPSL1 = 1575.42e6
	freqGPSL2 = 1227.60e6

	freqGLOL1Base = 1602.0e6
	freqGLOL1Step = 0.5625e6
	freqGLOL2Base = 1246.0e6
	freqGLOL2Step = 0.4375e6

	freqGALE1  = 1575.42e6
	freqGALE5b = 1207.14e6

	freqBDSB1 = 1561.098e6
	freqBDSB2 = 1207.14e6

	freqSBSL1 = 1575.42e6
	freqSBSL5 = 1176.45e6
)

// WavelengthTable is the default gnss.WavelengthSource.
type WavelengthTable struct {
	Registry *Registry
}

// NewWavelengthTable returns a wavelength source backed by reg for
// satellite-to-system lookups.
func NewWavelengthTable(reg *Registry) *WavelengthTable {
	return &WavelengthTable{Registry: reg}
}

// Wavelength returns the carrier wavelength (m) for sat/code. When the
// frequency is not known (a GLONASS satellite whose frequency channel is
// not yet registered, in particular) it returns DefaultWavelength instead,
// so the result is never 0.
func (w *WavelengthTable) Wavelength(sat int, code gnss.ObsCode, nav *gnss.Nav) float64 {
	freq := w.frequency(sat, code, nav)
	if freq <= 0 {
		sys, _ := w.Registry.SatSys(sat)
		return DefaultWavelength(sys, code)
	}
	return CLight / freq
}

func (w *WavelengthTable) frequency(sat int, code gnss.ObsCode, nav *gnss.Nav) float64 {
	sys, prn := w.Registry.SatSys(sat)
	switch sys {
	case SysGPS, SysQZS:
		if code == gnss.CodeL2P || code == gnss.CodeL2C {
			return freqGPSL2
		}
		return freqGPSL1
	case SysGLO:
		fcn := 0
		if nav != nil {
			if prn-1 >= 0 && prn-1 < len(nav.Gephs) && nav.Gephs[prn-1].Sat == sat {
				fcn = nav.Gephs[prn-1].Frq
			} else if prn-1 >= 0 && prn-1 < len(nav.GloFCN) && nav.GloFCN[prn-1] != 0 {
				fcn = nav.GloFCN[prn-1] - 8
			} else {
				return 0
			}
		} else {
			return 0
		}
		if code == gnss.CodeL2C {
			return freqGLOL2Base + freqGLOL2Step*float64(fcn)
		}
		return freqGLOL1Base + freqGLOL1Step*float64(fcn)
	case SysGAL:
		if code == gnss.CodeE5bQ {
			return freqGALE5b
		}
		return freqGALE1
	case SysBDS:
		if code == gnss.CodeB2I {
			return freqBDSB2
		}
		return freqBDSB1
	case SysSBS:
		if code == gnss.CodeL5I {
			return freqSBSL5
		}
		return freqSBSL1
	}
	return 0
}

// DefaultWavelength is the fallback Wavelength returns when the navigation
// store has not yet resolved a satellite's frequency: for GLONASS, the
// channel-0 L1 or L2 wavelength (by code); for every other system, the GPS
// L1 wavelength.
func DefaultWavelength(sys int, code gnss.ObsCode) float64 {
	switch sys {
	case SysGLO:
		if code == gnss.CodeL2C {
			return CLight / freqGLOL2Base
		}
		return CLight / freqGLOL1Base
	default:
		return CLight / freqGPSL1
	}
}
