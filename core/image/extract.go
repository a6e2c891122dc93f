package image

import (
	"bytes"
	"log/slog"
	"sync/atomic"

	"github.com/ankit-chaubey/exifkit/core"
	"github.com/ankit-chaubey/exifkit/core/jpg"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	// Register manufacturer-specific note parsers so Canon and Nikon fields decode.
	exif.RegisterParsers(mknote.All...)
}

// xmpEnabled is process-wide: it affects every GetData call that does not
// override it through Options.
var xmpEnabled atomic.Bool

// EnableXMP turns on XMP extraction for subsequent GetData calls.
func EnableXMP() { xmpEnabled.Store(true) }

// DisableXMP turns off XMP extraction for subsequent GetData calls.
func DisableXMP() { xmpEnabled.Store(false) }

// XMPEnabled reports the current process-wide XMP setting.
func XMPEnabled() bool { return xmpEnabled.Load() }

// Options tune a single GetData call. A nil *Options means defaults.
type Options struct {
	// XMP overrides the process-wide toggle when non-nil.
	XMP *bool
	// Logger receives debug output about metadata blocks that failed to
	// decode. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o *Options) withXMP() bool {
	if o != nil && o.XMP != nil {
		return *o.XMP
	}
	return XMPEnabled()
}

func (o *Options) logger() *slog.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// GetData extracts metadata from img and stores it on the handle, replacing
// anything a previous call stored. It reports false when img is nil, empty or
// not a recognised image. A recognised image without metadata is a success
// with empty tag sets.
func GetData(img *Image, opts *Options) bool {
	_, ok := Extract(img, opts)
	return ok
}

// Extract is GetData returning the extracted Result as well.
func Extract(img *Image, opts *Options) (*Result, bool) {
	if img == nil || len(img.data) == 0 {
		return nil, false
	}
	format := core.DetectBytes(img.data)
	if core.MediaTypeFor(format) != "image" {
		return nil, false
	}

	log := opts.logger().With("src", img.Src, "format", format.Name())
	withXMP := opts.withXMP()
	r := &Result{format: format, exif: Tags{}, iptc: Tags{}, xmp: Tags{}}

	var exifRaw, iptcRaw, xmpRaw []byte
	switch format {
	case core.FmtJPEG:
		exifRaw = jpg.Segment(bytes.NewReader(img.data), jpg.APP1, jpg.PrefixEXIF)
		iptcRaw = jpg.Segment(bytes.NewReader(img.data), jpg.APP13, jpg.PrefixIPTC)
		if withXMP {
			xmpRaw = jpg.Segment(bytes.NewReader(img.data), jpg.APP1, jpg.PrefixXMP)
		}
	case core.FmtTIFF:
		exifRaw = img.data
	case core.FmtPNG:
		exifRaw, xmpRaw = pngMetadata(img.data)
	case core.FmtWebP:
		exifRaw, xmpRaw = webpMetadata(img.data)
	}
	if !withXMP {
		xmpRaw = nil
	}

	if len(exifRaw) > 0 {
		tags, err := decodeEXIF(exifRaw)
		if err != nil {
			log.Debug("exif block not decoded", "error", err)
		} else {
			r.exif = tags
		}
	}
	if len(iptcRaw) > 0 {
		r.iptc = parseIPTC(iptcRaw)
	}
	if len(xmpRaw) > 0 {
		tags, err := parseXMP(xmpRaw)
		if err != nil {
			log.Debug("xmp packet not decoded", "error", err)
		} else {
			r.xmp = tags
		}
	}

	img.annotate(r)
	return r, true
}
