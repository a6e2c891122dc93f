// Package exif exposes core/image through an injectable factory service.
//
// Service.Create builds an Object, which extracts metadata from an image
// handle once, at construction, and answers tag queries from the
// image.Result of that extraction. Construction never fails: when extraction
// does not succeed the Object logs a warning and answers every query with
// zero values.
package exif

import (
	"log/slog"
	"sync"

	"github.com/ankit-chaubey/exifkit/core"
	"github.com/ankit-chaubey/exifkit/core/image"
)

// extractMu serialises the XMP toggle and the extraction that reads it, so
// readers built from different goroutines see their own setting.
var extractMu sync.Mutex

// Object reads the metadata of one image. It answers from the Result of its
// own extraction, so a later Object built on the same handle does not change
// its answers.
type Object struct {
	img *image.Image
	res *image.Result
}

// NewObject sets the process-wide XMP toggle according to enableXMP and
// extracts the metadata of img. On failure the warning goes to logger (or
// slog.Default() when nil) and the returned Object holds no image.
func NewObject(img *image.Image, enableXMP bool, logger *slog.Logger) *Object {
	if logger == nil {
		logger = slog.Default()
	}

	extractMu.Lock()
	if enableXMP {
		image.EnableXMP()
	} else {
		image.DisableXMP()
	}
	res, ok := image.Extract(img, nil)
	extractMu.Unlock()

	o := &Object{}
	if ok {
		o.img = img
		o.res = res
	} else {
		logger.Warn("unable to load image data", "src", srcOf(img))
	}
	return o
}

func srcOf(img *image.Image) string {
	if img == nil {
		return ""
	}
	return img.Src
}

// Loaded reports whether extraction succeeded.
func (o *Object) Loaded() bool { return o.img != nil }

// Image returns the handle, or nil when extraction failed.
func (o *Object) Image() *image.Image { return o.img }

// GetTag returns the EXIF tag called tag.
func (o *Object) GetTag(tag string) (string, bool) {
	return o.res.Tag(tag)
}

// GetIptcTag returns the IPTC tag called tag.
func (o *Object) GetIptcTag(tag string) (string, bool) {
	return o.res.IptcTag(tag)
}

// GetXmpTag returns the XMP property called tag, e.g. "dc:creator".
func (o *Object) GetXmpTag(tag string) (string, bool) {
	return o.res.XmpTag(tag)
}

// GetAllTags returns all EXIF tags.
func (o *Object) GetAllTags() image.Tags {
	return o.res.Tags()
}

// GetAllIptcTags returns all IPTC tags.
func (o *Object) GetAllIptcTags() image.Tags {
	return o.res.IptcTags()
}

// GetAllXmpTags returns all XMP properties.
func (o *Object) GetAllXmpTags() image.Tags {
	return o.res.XmpTags()
}

// Pretty returns all EXIF tags pretty printed.
func (o *Object) Pretty() string {
	return o.res.Pretty()
}

// Metadata collects every tag the Object reports, labelled with src.
func (o *Object) Metadata(src string) *core.Metadata {
	return &core.Metadata{
		Source: src,
		Format: o.res.Format().Name(),
		Loaded: o.Loaded(),
		Fields: o.res.Fields(),
	}
}
