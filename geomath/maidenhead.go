package geomath

import (
	"fmt"
	"strings"

	"github.com/golang/geo/s2"
)

// GridSquareToLatLng converts a Maidenhead locator ("EN91" or "EN91kl") to
// the center of the square it names.
func GridSquareToLatLng(grid string) (s2.LatLng, error) {
	grid = strings.ToUpper(grid)
	if len(grid) < 4 {
		return s2.LatLng{}, fmt.Errorf("gridsquare too short: %s", grid)
	}
	if grid[0] < 'A' || grid[0] > 'R' || grid[1] < 'A' || grid[1] > 'R' ||
		grid[2] < '0' || grid[2] > '9' || grid[3] < '0' || grid[3] > '9' {
		return s2.LatLng{}, fmt.Errorf("invalid gridsquare: %s", grid)
	}

	// field: 20° x 10°, square: 2° x 1°
	lon := float64(grid[0]-'A')*20 - 180 + float64(grid[2]-'0')*2
	lat := float64(grid[1]-'A')*10 - 90 + float64(grid[3]-'0')

	if len(grid) >= 6 {
		if grid[4] < 'A' || grid[4] > 'X' || grid[5] < 'A' || grid[5] > 'X' {
			return s2.LatLng{}, fmt.Errorf("invalid subsquare in gridsquare: %s", grid)
		}
		// subsquare: 5' x 2.5', center offset is half of that
		lon += float64(grid[4]-'A')*(2.0/24.0) + 1.0/24.0
		lat += float64(grid[5]-'A')*(1.0/24.0) + 0.5/24.0
	} else {
		lon++
		lat += 0.5
	}

	return s2.LatLngFromDegrees(lat, lon), nil
}
