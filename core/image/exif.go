package image

import (
	"bytes"
	"fmt"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

type exifWalker struct {
	tags Tags
}

func (w exifWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	val := tag.String()
	// Remove surrounding quotes from string values
	if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
		val = val[1 : len(val)-1]
	}
	w.tags[string(name)] = val
	return nil
}

// decodeEXIF decodes a TIFF structure, or a raw block starting with "Exif",
// into tags. A derived GPSPosition is added when coordinates are present.
func decodeEXIF(raw []byte) (tags Tags, err error) {
	// Maker-note parsers index into note data without length checks.
	defer func() {
		if r := recover(); r != nil {
			tags, err = nil, fmt.Errorf("exif decode: %v", r)
		}
	}()

	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil, err
	}

	tags = Tags{}
	if err := x.Walk(exifWalker{tags: tags}); err != nil {
		return nil, err
	}
	if lat, long, err := x.LatLong(); err == nil {
		tags["GPSPosition"] = fmt.Sprintf("%.6f, %.6f", lat, long)
	}
	return tags, nil
}
