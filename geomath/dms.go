package geomath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DMS formats a decimal degree value as degrees, minutes and seconds.
// Seconds are rounded to precision fractional digits. Whole degrees print
// without a minute field ("0°E"), zero seconds are omitted ("0°30'N"), and
// an exact ±180° longitude prints as "180°".
func DMS(deg float64, isLat bool, precision int) string {
	if precision < 0 {
		precision = 0
	}
	scale := math.Pow10(precision)
	total := math.Round(math.Abs(deg)*3600*scale) / scale

	d := math.Floor(total / 3600)
	rem := total - d*3600
	m := math.Floor(rem / 60)
	s := math.Round((rem-m*60)*scale) / scale
	if s >= 60 {
		s -= 60
		m++
	}
	if m >= 60 {
		m -= 60
		d++
	}

	var b strings.Builder
	b.WriteString(strconv.Itoa(int(d)))
	b.WriteString("°")
	if m != 0 || s != 0 {
		fmt.Fprintf(&b, "%02d'", int(m))
		if s != 0 {
			if s < 10 {
				b.WriteByte('0')
			}
			b.WriteString(strconv.FormatFloat(s, 'f', precision, 64))
			b.WriteByte('"')
		}
	}

	if !isLat && d == 180 && m == 0 && s == 0 {
		return b.String()
	}
	b.WriteString(hemisphere(deg < 0 && total > 0, isLat))
	return b.String()
}

func hemisphere(negative, isLat bool) string {
	switch {
	case isLat && negative:
		return "S"
	case isLat:
		return "N"
	case negative:
		return "W"
	}
	return "E"
}
