package gnss

// SatelliteResolver converts a (system, PRN/slot) pair to the decoder's
// internal 1-based satellite index. It stands in for the
// satellite-number registry that spec.md §1 calls out as an external
// collaborator: the decoder never hard-codes constellation slot ranges
// itself, it asks a resolver.
type SatelliteResolver interface {
	SatNo(sys int, prn int) int
}

// WavelengthSource supplies the carrier wavelength (m) used to reconstruct
// the rolled ADR integer-cycle count in the RANGECMP decoder (spec.md §4.5).
// A zero return means the implementation genuinely has nothing to offer for
// this satellite/code (the decoder then skips the ADR reconstruction);
// satref's default implementation instead applies the GLONASS
// channel-dependent default from spec.md §4.5 internally, so it never
// returns zero for a system it recognizes.
type WavelengthSource interface {
	Wavelength(sat int, code ObsCode, nav *Nav) float64
}

// URAIndexer converts a URA/SISA value in meters to its RINEX URA index,
// standing in for the "URA index lookup" external collaborator (spec.md §1).
type URAIndexer interface {
	URAIndex(value float64) int
}
