package gnss

// decodeGPSEphem decodes a GPSEPHEM record (spec.md §4.6) into the
// navigation store, returning 1 if a new or changed ephemeris was stored, 0
// if it was a duplicate of what's already on file, or -1 on a length or
// consistency error. Grounded on the original Unicore source's
// decode_gpsephemb(): a direct sequential field layout (no subframe
// bit-unpacking, unlike raw NovAtel RANGE/RANGECMP) with a dual-IODE
// consistency check.
func (d *Decoder) decodeGPSEphem(frame []byte) int {
	body := frameBody(frame)
	if len(body) < 224 {
		return -1
	}
	prn := int(u4(body[0:4]))
	sat := d.Sats.SatNo(SysGPS, prn)
	if sat == 0 {
		return -1
	}

	iode1 := int(u4(body[16:20]))
	iode2 := int(u4(body[20:24]))
	if iode1 != iode2 {
		return -1
	}

	week := int(u4(body[24:28]))
	toe := r8(body[32:40])

	e := Eph{
		Sat:  sat,
		SVH:  int(u4(body[12:16])),
		IODE: iode1,
		Week: AdjGpsWeek(week, d.now()),
		Toes: toe,
		A:    r8(body[40:48]),
		Deln: r8(body[48:56]),
		M0:   r8(body[56:64]),
		E:    r8(body[64:72]),
		Omg:  r8(body[72:80]),
		Cic:  r8(body[80:88]),
		Crc:  r8(body[88:96]),
		Cis:  r8(body[96:104]),
		Crs:  r8(body[104:112]),
		I0:   r8(body[112:120]),
		Idot: r8(body[120:128]),
		Cuc:  r8(body[128:136]),
		Cus:  r8(body[136:144]),
		OMG0: r8(body[144:152]),
		OMGd: r8(body[152:160]),
		IODC: int(u4(body[160:164])),
	}
	toc := r8(body[164:172])
	e.Tgd[0] = r8(body[172:180])
	e.F0 = r8(body[180:188])
	e.F1 = r8(body[188:196])
	e.F2 = r8(body[196:204])
	e.SVA = d.URA.URAIndex(r8(body[216:224]))

	e.Toe = GpsT2Time(e.Week, e.Toes)
	e.Toc = GpsT2Time(e.Week, toc)
	e.Ttr = d.frameTime(frame)

	// Ephs is addressed (sat-1)*2+set everywhere, set 0 or 1, so GPS/BDS
	// (always set 0) and Galileo (set 0 or 1) never collide regardless of
	// which satellite-number ranges the two constellations occupy.
	slot := (sat - 1) * 2
	if slot < 0 || slot >= len(d.Nav.Ephs) {
		return -1
	}
	cur := &d.Nav.Ephs[slot]
	if !d.Options.EPHALL && cur.IODE == e.IODE && cur.IODC == e.IODC && TimeDiff(cur.Toe, e.Toe) == 0 {
		return 0
	}
	*cur = e
	return 1
}
