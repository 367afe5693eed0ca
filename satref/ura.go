package satref

// uraTable is the URA index -> URA value (m) table from the GPS/BDS
// interface control documents, grounded on binex.go's ura_eph table.
var uraTable = [15]float64{
	2.4, 3.4, 4.85, 6.85, 9.65, 13.65, 24.0, 48.0, 96.0, 192.0, 384.0, 768.0,
	1536.0, 3072.0, 6144.0,
}

// URAIndexer is the default gnss.URAIndexer.
type URAIndexer struct{}

// URAIndex converts a URA/SISA value in meters to its RINEX URA index,
// grounded on binex.go's uraindex().
func (URAIndexer) URAIndex(value float64) int {
	for i, v := range uraTable {
		if v >= value {
			return i
		}
	}
	return len(uraTable)
}
