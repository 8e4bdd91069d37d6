package metadata

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Native decodes EXIF in process. It covers the tags the attribute resolver
// needs and formats them the way exiftool prints them.
type Native struct{}

func NewNative() *Native {
	return &Native{}
}

func (n *Native) Read(_ context.Context, path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exif of %s: %w", path, err)
	}

	tags := make(map[string]string)

	stringTags := map[exif.FieldName]string{
		exif.Make:      "Make",
		exif.Model:     "CameraModelName",
		exif.LensModel: "LensModel",
		exif.LensMake:  "LensMake",
	}
	for field, key := range stringTags {
		if tag, err := x.Get(field); err == nil {
			if s, err := tag.StringVal(); err == nil {
				if s = strings.TrimSpace(stripNonASCII(s)); s != "" {
					tags[key] = s
				}
			}
		}
	}

	if v, ok := ratTag(x, exif.FocalLength); ok {
		tags["FocalLength"] = fmt.Sprintf("%.1f mm", v)
	}
	if v, ok := intTag(x, exif.FocalLengthIn35mmFilm); ok && v > 0 {
		tags["FocalLengthIn35mmFormat"] = fmt.Sprintf("%d mm", v)
	}
	if v, ok := ratTag(x, exif.FNumber); ok {
		tags["FNumber"] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if tag, err := x.Get(exif.ExposureTime); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			tags["ExposureTime"] = formatExposure(num, den)
		}
	}
	if v, ok := intTag(x, exif.ISOSpeedRatings); ok {
		tags["ISO"] = strconv.Itoa(v)
	}
	if v, ok := intTag(x, exif.PixelXDimension); ok {
		tags["ImageWidth"] = strconv.Itoa(v)
	}
	if v, ok := intTag(x, exif.PixelYDimension); ok {
		tags["ImageHeight"] = strconv.Itoa(v)
	}
	if v, ok := intTag(x, exif.Orientation); ok {
		tags["Orientation"] = strconv.Itoa(v)
	}
	if t, err := x.DateTime(); err == nil {
		tags["DateTimeOriginal"] = t.Format("2006-01-02 15:04:05")
	}
	if lat, long, err := x.LatLong(); err == nil {
		tags["GPSPosition"] = formatCoordinate(lat, "N", "S") + ", " + formatCoordinate(long, "E", "W")
	}

	if len(tags) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoMetadata)
	}

	return tags, nil
}

func ratTag(x *exif.Exif, field exif.FieldName) (float64, bool) {
	tag, err := x.Get(field)
	if err != nil || tag.Format() != tiff.RatVal {
		return 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

func intTag(x *exif.Exif, field exif.FieldName) (int, bool) {
	tag, err := x.Get(field)
	if err != nil || tag.Format() != tiff.IntVal {
		return 0, false
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatExposure(num, den int64) string {
	if num >= den {
		return strconv.FormatFloat(float64(num)/float64(den), 'f', -1, 64)
	}
	return fmt.Sprintf("1/%d", int64(math.Round(float64(den)/float64(num))))
}

// formatCoordinate renders decimal degrees as exiftool does: 35 deg 41' 22.20" N.
func formatCoordinate(v float64, pos, neg string) string {
	dir := pos
	if v < 0 {
		dir = neg
		v = -v
	}
	deg := math.Floor(v)
	minutes := (v - deg) * 60
	m := math.Floor(minutes)
	sec := (minutes - m) * 60
	return fmt.Sprintf("%d deg %d' %.2f\" %s", int(deg), int(m), sec, dir)
}
