package calendar

import (
	"time"
)

// EasterSunday returns Western (Gregorian) Easter Sunday of the given year,
// computed with the Gauss algorithm in the PTB formulation.
func EasterSunday(year int) time.Time {
	k := year / 100
	m := 15 + (3*k+3)/4 - (8*k+13)/25
	s := 2 - (3*k+3)/4
	a := year % 19
	d := (19*a + m) % 30
	r := d/29 + (d/28-d/29)*(a/11)
	og := 21 + d - r
	sz := 7 - (year+year/4+s)%7
	oe := 7 - (og-sz)%7
	os := og + oe

	// March 32 is April 1.
	return Date(year, 3, os)
}

// EasterSundayOrthodox returns Orthodox Easter Sunday of the given year as a
// Gregorian date. The Julian computus result is shifted by JulianOffset.
func EasterSundayOrthodox(year int) time.Time {
	a := year % 4
	b := year % 7
	c := year % 19
	d := (19*c + 15) % 30
	e := (2*a + 4*b - d + 34) % 7
	month := (d + e + 114) / 31
	day := (d+e+114)%31 + 1

	return Date(year, month, day).AddDate(0, 0, JulianOffset(year))
}

// ShroveTideOrthodox returns the Sunday 49 days before Orthodox Easter.
func ShroveTideOrthodox(year int) time.Time {
	return EasterSundayOrthodox(year).AddDate(0, 0, -49)
}

// JulianOffset is the number of days the Julian calendar lags behind the
// Gregorian one, by century.
func JulianOffset(year int) int {
	switch {
	case year < 1700:
		return 10
	case year < 1800:
		return 11
	case year < 1900:
		return 12
	case year < 2100:
		return 13
	case year < 2200:
		return 14
	default:
		return 15
	}
}
