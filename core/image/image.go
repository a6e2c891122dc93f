// Package image extracts EXIF, IPTC and XMP metadata from in-memory images.
//
// An Image is a handle to raw image bytes. GetData parses the metadata and
// annotates the handle in place; the query functions (GetTag, GetAllTags,
// Pretty, ...) then read those annotations. Queries accept a nil or
// never-parsed handle and return zero values for it.
//
// Extract returns the same annotations as a Result, which keeps answering
// with them after later GetData calls replace what the handle holds.
package image

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ankit-chaubey/exifkit/core"
)

// Tags maps tag names to their string rendering.
type Tags map[string]string

// Image is an in-memory image handle.
type Image struct {
	// Src names where the data came from (a path, an upload, ...).
	Src  string
	data []byte

	mu  sync.RWMutex
	res *Result
}

// Result is the metadata one GetData call extracted. It is not modified
// after extraction, so it stays valid when later calls re-annotate the
// handle. A nil *Result answers every query with zero values.
type Result struct {
	format core.FormatID
	exif   Tags
	iptc   Tags
	xmp    Tags
}

// FromBytes wraps data as an image handle. The slice is not copied.
func FromBytes(src string, data []byte) *Image {
	return &Image{Src: src, data: data}
}

// FromReader reads r to the end and wraps the result.
func FromReader(src string, r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	return FromBytes(src, data), nil
}

// Open loads the file at path into memory.
func Open(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromBytes(path, data), nil
}

// Bytes returns the raw image data.
func (img *Image) Bytes() []byte {
	if img == nil {
		return nil
	}
	return img.data
}

// Result returns the annotations of the last successful GetData call, or nil.
func (img *Image) Result() *Result {
	if img == nil {
		return nil
	}
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.res
}

// Format returns the format detected by the last GetData call.
func (img *Image) Format() core.FormatID {
	return img.Result().Format()
}

// Parsed reports whether GetData has annotated the handle.
func (img *Image) Parsed() bool {
	return img.Result() != nil
}

func (img *Image) annotate(r *Result) {
	img.mu.Lock()
	img.res = r
	img.mu.Unlock()
}

// Format returns the detected format.
func (r *Result) Format() core.FormatID {
	if r == nil {
		return core.FmtUnknown
	}
	return r.format
}

func (r *Result) lookup(group string, name string) (string, bool) {
	v, ok := r.group(group)[name]
	return v, ok
}

func (r *Result) all(group string) Tags {
	out := Tags{}
	for k, v := range r.group(group) {
		out[k] = v
	}
	return out
}

func (r *Result) group(name string) Tags {
	if r == nil {
		return nil
	}
	switch name {
	case core.GroupEXIF:
		return r.exif
	case core.GroupIPTC:
		return r.iptc
	case core.GroupXMP:
		return r.xmp
	}
	return nil
}
