package attribute

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"photo-watermarker/internal/domain"
)

// Source is everything a field can be resolved from.
type Source struct {
	Exif     map[string]string
	Filename string
	// Width and Height of the decoded bitmap, used when the metadata has no
	// image size.
	Width, Height            int
	UseEquivalentFocalLength bool
}

var (
	modelKeys     = []string{"CameraModelName", "Model"}
	makeKeys      = []string{"Make"}
	lensModelKeys = []string{"LensModel", "Lens", "LensID"}
	lensMakeKeys  = []string{"LensMake"}
	dateKeys      = []string{"DateTimeOriginal", "CreateDate", "ModifyDate"}

	dateRe   = regexp.MustCompile(`^(\d{4})[-:](\d{2})[-:](\d{2})(?:[ T](\d{2}):(\d{2}))?`)
	numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Resolve returns the display text of el. It never fails: anything missing
// or unparsable resolves to domain.DefaultValue. None resolves to "".
func Resolve(el domain.Element, src Source) string {
	switch el.Name {
	case domain.FieldCustom:
		return el.Value
	case domain.FieldNone, "":
		return ""
	case domain.FieldModel:
		return orDefault(lookup(src.Exif, modelKeys...))
	case domain.FieldMake:
		return orDefault(lookup(src.Exif, makeKeys...))
	case domain.FieldLensModel:
		return orDefault(lookup(src.Exif, lensModelKeys...))
	case domain.FieldLensMakeLensModel:
		return join(lookup(src.Exif, lensMakeKeys...), lookup(src.Exif, lensModelKeys...))
	case domain.FieldCameraModelLensModel:
		return join(lookup(src.Exif, modelKeys...), lookup(src.Exif, lensModelKeys...))
	case domain.FieldCameraMakeModel:
		return join(lookup(src.Exif, makeKeys...), lookup(src.Exif, modelKeys...))
	case domain.FieldParam:
		return Param(src)
	case domain.FieldDate:
		return orDefault(date(src.Exif, false))
	case domain.FieldDatetime:
		return orDefault(date(src.Exif, true))
	case domain.FieldTotalPixel:
		return totalPixel(src)
	case domain.FieldFilename:
		return orDefault(stem(src.Filename))
	case domain.FieldDateFilename:
		return join(date(src.Exif, false), stem(src.Filename))
	case domain.FieldDatetimeFilename:
		return join(date(src.Exif, true), stem(src.Filename))
	case domain.FieldGeoInfo:
		return orDefault(geoInfo(src.Exif))
	default:
		return domain.DefaultValue
	}
}

// Param formats focal length, aperture, shutter speed and ISO, eg.
// "50mm f/1.8 1/1000s ISO100". Missing parts are left out.
func Param(src Source) string {
	var parts []string

	focalKeys := []string{"FocalLength", "FocalLengthIn35mmFormat"}
	if src.UseEquivalentFocalLength {
		focalKeys[0], focalKeys[1] = focalKeys[1], focalKeys[0]
	}
	for _, key := range focalKeys {
		if n, ok := firstNumber(src.Exif[key]); ok && n != "0" {
			parts = append(parts, n+"mm")
			break
		}
	}

	if n, ok := firstNumber(src.Exif["FNumber"]); ok {
		parts = append(parts, "f/"+n)
	}
	if v := strings.TrimSpace(src.Exif["ExposureTime"]); v != "" {
		parts = append(parts, v+"s")
	}
	if n, ok := firstNumber(src.Exif["ISO"]); ok {
		parts = append(parts, "ISO"+n)
	}

	return orDefault(strings.Join(parts, " "))
}

func lookup(exif map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(exif[key]); v != "" {
			return v
		}
	}
	return ""
}

func orDefault(s string) string {
	if s == "" {
		return domain.DefaultValue
	}
	return s
}

func join(parts ...string) string {
	var present []string
	for _, p := range parts {
		if p != "" {
			present = append(present, p)
		}
	}
	return orDefault(strings.Join(present, " "))
}

// firstNumber extracts the leading number of values like "50.0 mm" and drops
// a zero fraction.
func firstNumber(s string) (string, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return "", false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

func date(exif map[string]string, withTime bool) string {
	for _, key := range dateKeys {
		m := dateRe.FindStringSubmatch(strings.TrimSpace(exif[key]))
		if m == nil {
			continue
		}
		d := m[1] + "-" + m[2] + "-" + m[3]
		if !withTime {
			return d
		}
		if m[4] == "" {
			return d
		}
		return d + " " + m[4] + ":" + m[5]
	}
	return ""
}

func totalPixel(src Source) string {
	w, errW := strconv.Atoi(src.Exif["ImageWidth"])
	h, errH := strconv.Atoi(src.Exif["ImageHeight"])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		w, h = src.Width, src.Height
	}
	if w <= 0 || h <= 0 {
		return domain.DefaultValue
	}
	return fmt.Sprintf("%.2f MP", float64(w)*float64(h)/1e6)
}

func stem(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
