package gnss

// leapSecGpsUtc is the current GPS-UTC leap second count. The receiver
// reports GLONASS ephemeris times in UTC(SU) (Moscow time, UTC+3h); this
// decoder only needs to place them on the GPST axis close enough to
// disambiguate day boundaries, so a fixed offset is sufficient — a live
// leap-second table is out of scope, spec.md §7 Non-goals.
const leapSecGpsUtc = 18.0

const mskUtcOffset = 10800.0 // Moscow time is UTC+3h

// decodeGloEphem decodes a GLOEPHEMERIS record (spec.md §4.6) into the
// navigation store, converting the broadcast GLONASST reference time to
// GPST. Grounded on novatel.go's decode_gloephemerisb(): tof = raw - toff,
// then day-aligned against the frame's own GPST reference.
func (d *Decoder) decodeGloEphem(frame []byte) int {
	body := frameBody(frame)
	if len(body) < 120 {
		return -1
	}
	prn := int(u2(body[0:2]))
	sat := d.Sats.SatNo(SysGLO, prn)
	if sat == 0 {
		return -1
	}
	frq := int(int16(u2(body[2:4]))) - 7

	tb := r8(body[8:16])
	ft := d.frameTime(frame)
	_, refTow := Time2GpsT(ft)
	tofGpst := tb - mskUtcOffset + leapSecGpsUtc
	toeTow := gloToGpsDay(tofGpst, refTow)
	week, _ := Time2GpsT(ft)
	toe := GpsT2Time(week, toeTow)

	g := GEph{
		Sat:  sat,
		Frq:  frq,
		SVH:  int(u4(body[88:92])),
		Age:  int(u4(body[116:120])),
		Toe:  toe,
		Taun: r8(body[92:100]),
		Gamn: r8(body[100:108]),
	}
	g.Pos[0] = r8(body[16:24])
	g.Pos[1] = r8(body[24:32])
	g.Pos[2] = r8(body[32:40])
	g.Vel[0] = r8(body[40:48])
	g.Vel[1] = r8(body[48:56])
	g.Vel[2] = r8(body[56:64])
	g.Acc[0] = r8(body[64:72])
	g.Acc[1] = r8(body[72:80])
	g.Acc[2] = r8(body[80:88])
	g.Tof = ft

	slot := prn - 1
	if slot < 0 || slot >= len(d.Nav.Gephs) {
		return -1
	}
	d.Nav.GloFCN[slot] = frq + 8
	cur := &d.Nav.Gephs[slot]
	if !d.Options.EPHALL && cur.Sat == sat && TimeDiff(cur.Toe, g.Toe) == 0 && cur.SVH == g.SVH {
		return 0
	}
	*cur = g
	return 1
}
