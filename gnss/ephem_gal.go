package gnss

// Galileo navigation-data-source bits, spec.md §4.6, matching the original
// Unicore source's sel_nav bit tests: bit0 set with bit9 set means the
// record carries I/NAV (E1-B) navigation data; bit1 set with bit8 set means
// F/NAV (E5a-I).
const (
	galSrcINAV = (1 << 0) | (1 << 9)
	galSrcFNAV = (1 << 1) | (1 << 8)
)

// decodeGalEphem decodes a GALEPHEMERIS record into the navigation store.
// Galileo broadcasts both an I/NAV and an F/NAV IODnav/clock in the same
// record; which one becomes the stored Eph is chosen by -GALINAV/-GALFNAV
// if given, else by which the data-source bits say the record actually
// carries, matching the original Unicore source's sel_nav selection.
func (d *Decoder) decodeGalEphem(frame []byte) int {
	body := frameBody(frame)
	if len(body) < 228 {
		return -1
	}
	prn := int(u4(body[0:4]))
	sat := d.Sats.SatNo(SysGAL, prn)
	if sat == 0 {
		return -1
	}

	iodINAV := int(u4(body[4:8]))
	iodFNAV := int(u4(body[8:12]))
	source := int(u4(body[12:16]))

	useFNAV := false
	switch {
	case d.Options.GALINAV:
		useFNAV = false
	case d.Options.GALFNAV:
		useFNAV = true
	default:
		rcvINAV := source&galSrcINAV == galSrcINAV
		rcvFNAV := source&galSrcFNAV == galSrcFNAV
		useFNAV = !rcvINAV && rcvFNAV
	}

	week := AdjGpsWeek(int(u4(body[16:20])), d.now())
	e := Eph{
		Sat:  sat,
		Week: week,
		Toes: r8(body[20:28]),
		A:    r8(body[28:36]),
		Deln: r8(body[36:44]),
		M0:   r8(body[44:52]),
		E:    r8(body[52:60]),
		Omg:  r8(body[60:68]),
		Cic:  r8(body[68:76]),
		Crc:  r8(body[76:84]),
		Cis:  r8(body[84:92]),
		Crs:  r8(body[92:100]),
		I0:   r8(body[100:108]),
		Idot: r8(body[108:116]),
		Cuc:  r8(body[116:124]),
		Cus:  r8(body[124:132]),
		OMG0: r8(body[132:140]),
		OMGd: r8(body[140:148]),
	}
	toc := r8(body[148:156])
	e.F0 = r8(body[156:164])
	e.F1 = r8(body[164:172])
	e.F2 = r8(body[172:180])
	e.SVA = d.URA.URAIndex(r8(body[180:188]))
	bgdE1E5a := r8(body[188:196])
	bgdE1E5b := r8(body[196:204])

	if useFNAV {
		e.IODE = iodFNAV
		e.Tgd[0] = bgdE1E5a
		e.Code = galSrcFNAV
	} else {
		e.IODE = iodINAV
		e.Tgd[0] = bgdE1E5b
		e.Code = galSrcINAV
	}

	e1bHS := int(u4(body[204:208]))
	e1bDVS := int(u4(body[208:212]))
	e5aHS := int(u4(body[212:216]))
	e5aDVS := int(u4(body[216:220]))
	e5bHS := int(u4(body[220:224]))
	e5bDVS := int(u4(body[224:228]))
	e.SVH = ((e5bHS & 0x3) << 7) | ((e5bDVS & 0x1) << 6) | ((e5aHS & 0x3) << 4) |
		((e5aDVS & 0x1) << 3) | ((e1bHS & 0x3) << 1) | (e1bDVS & 0x1)

	e.Toe = GpsT2Time(e.Week, e.Toes)
	e.Toc = GpsT2Time(e.Week, toc)
	e.Ttr = d.frameTime(frame)

	set := 0
	if useFNAV {
		set = 1
	}
	slot := (sat-1)*2 + set
	if slot < 0 || slot >= len(d.Nav.Ephs) {
		return -1
	}
	cur := &d.Nav.Ephs[slot]
	if !d.Options.EPHALL && cur.IODE == e.IODE && cur.Code == e.Code {
		return 0
	}
	*cur = e
	return 1
}
