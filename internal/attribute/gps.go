package attribute

import (
	"regexp"
	"strings"
)

var (
	degMinRe = regexp.MustCompile(`(\d+) deg (\d+)`)
	latDirRe = regexp.MustCompile(`[NS]`)
	lonDirRe = regexp.MustCompile(`[EW]`)
)

func geoInfo(exif map[string]string) string {
	var lat, lon string
	if pos := strings.TrimSpace(exif["GPSPosition"]); pos != "" {
		var ok bool
		lat, lon, ok = strings.Cut(pos, ", ")
		if !ok {
			return ""
		}
	} else {
		lat, lon = exif["GPSLatitude"], exif["GPSLongitude"]
	}

	latText, ok := coordinate(lat, latDirRe)
	if !ok {
		return ""
	}
	lonText, ok := coordinate(lon, lonDirRe)
	if !ok {
		return ""
	}
	return latText + " " + lonText
}

// coordinate compacts exiftool's `35 deg 41' 22.20" N` into 35°41'N.
func coordinate(s string, dirRe *regexp.Regexp) (string, bool) {
	m := degMinRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	dir := dirRe.FindString(s)
	if dir == "" {
		return "", false
	}
	return m[1] + "°" + m[2] + "'" + dir, true
}
