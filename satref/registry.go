// Package satref provides default, concrete implementations of the
// satellite-number registry, wavelength table, and URA index lookup that
// spec.md §1 lists as external collaborators of the decoder. They are
// injected into gnss.Decoder through the gnss.SatelliteResolver,
// gnss.WavelengthSource and gnss.URAIndexer interfaces so a host application
// can substitute its own tables (e.g. one shared with a positioning engine)
// without touching the decoder.
//
// The numbering scheme and frequency tables are grounded on
// FengXuebin-gnssgo's common.go (SatNo, SatSys, Code2Freq_*, Sat2Freq),
// narrowed to the constellations spec.md §3/§4.3 actually names: GPS,
// GLONASS, Galileo, BeiDou, SBAS and QZSS.
package satref

// Satellite counts and PRN ranges per constellation, narrowed from
// common.go's MINPRNxxx/MAXPRNxxx/NSATxxx tables to the systems this
// decoder recognizes.
const (
	minPRNGPS, maxPRNGPS, nSatGPS = 1, 32, 32
	minPRNGLO, maxPRNGLO, nSatGLO = 1, 27, 27
	minPRNGAL, maxPRNGAL, nSatGAL = 1, 36, 36
	minPRNBDS, maxPRNBDS, nSatBDS = 1, 63, 63
	minPRNQZS, maxPRNQZS, nSatQZS = 193, 202, 10
	minPRNSBS, maxPRNSBS, nSatSBS = 120, 158, 39
)

const (
	offGLO = nSatGPS
	offGAL = offGLO + nSatGLO
	offBDS = offGAL + nSatGAL
	offQZS = offBDS + nSatBDS
	offSBS = offQZS + nSatQZS
)

// MaxSat is the total satellite-index space spanned by this registry.
const MaxSat = offSBS + nSatSBS

// System identifiers, matching gnss.SysGPS etc. Declared independently here,
// rather than imported from package gnss, because Registry.SatNo/SatSys are
// useful to callers that only want satellite numbering and shouldn't have to
// pull in the decoder to get it. WavelengthTable, in wavelength.go, does
// import gnss for the Nav/ObsCode types its Wavelength method takes — gnss
// itself only ever sees satref through the SatelliteResolver/WavelengthSource
// interfaces in interfaces.go, never through a direct import, so the decoder
// stays substitutable.
const (
	SysGPS = 1
	SysGLO = 2
	SysGAL = 4
	SysBDS = 8
	SysQZS = 16
	SysSBS = 32
)

// Registry is the default gnss.SatelliteResolver.
type Registry struct{}

// NewRegistry returns the default satellite-number registry.
func NewRegistry() *Registry { return &Registry{} }

// SatNo converts a satellite system and PRN/slot number into this
// registry's 1-based satellite index, or 0 if the PRN is out of range for
// that system. Grounded on common.go's SatNo().
func (Registry) SatNo(sys, prn int) int {
	if prn <= 0 {
		return 0
	}
	switch sys {
	case SysGPS:
		if prn < minPRNGPS || prn > maxPRNGPS {
			return 0
		}
		return prn - minPRNGPS + 1
	case SysGLO:
		if prn < minPRNGLO || prn > maxPRNGLO {
			return 0
		}
		return offGLO + prn - minPRNGLO + 1
	case SysGAL:
		if prn < minPRNGAL || prn > maxPRNGAL {
			return 0
		}
		return offGAL + prn - minPRNGAL + 1
	case SysBDS:
		if prn < minPRNBDS || prn > maxPRNBDS {
			return 0
		}
		return offBDS + prn - minPRNBDS + 1
	case SysQZS:
		if prn < minPRNQZS || prn > maxPRNQZS {
			return 0
		}
		return offQZS + prn - minPRNQZS + 1
	case SysSBS:
		if prn < minPRNSBS || prn > maxPRNSBS {
			return 0
		}
		return offSBS + prn - minPRNSBS + 1
	}
	return 0
}

// SatSys returns the satellite system and in-system PRN for a satellite
// index produced by SatNo, the inverse mapping used by the wavelength
// lookup to tell GLONASS satellites apart from everything else.
func (Registry) SatSys(sat int) (sys, prn int) {
	switch {
	case sat <= 0 || sat > MaxSat:
		return 0, 0
	case sat <= offGLO:
		return SysGPS, sat - 0 + minPRNGPS - 1
	case sat <= offGAL:
		return SysGLO, sat - offGLO + minPRNGLO - 1
	case sat <= offBDS:
		return SysGAL, sat - offGAL + minPRNGAL - 1
	case sat <= offQZS:
		return SysBDS, sat - offBDS + minPRNBDS - 1
	case sat <= offSBS:
		return SysQZS, sat - offQZS + minPRNQZS - 1
	default:
		return SysSBS, sat - offSBS + minPRNSBS - 1
	}
}
