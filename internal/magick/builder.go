// Package magick builds ImageMagick argument lists for the resizer.
package magick

import (
	"strconv"
)

// Mogrify returns the arguments to resample path in place to percent of its
// original size.
func Mogrify(percent, path string) []string {
	return []string{"mogrify", "-resize", percent, path}
}

// Percent renders the resize geometry for a 1/divisor downscale: 2 -> "50%",
// 4 -> "25%", 8 -> "12.5%". Divisors below 1 are treated as 1.
func Percent(divisor int) string {
	if divisor < 1 {
		divisor = 1
	}
	return strconv.FormatFloat(100/float64(divisor), 'f', -1, 64) + "%"
}
