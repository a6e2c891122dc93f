package image

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ankit-chaubey/exifkit/core"
)

// GetTag returns the EXIF tag called name.
func GetTag(img *Image, name string) (string, bool) {
	return img.Result().Tag(name)
}

// GetIptcTag returns the IPTC tag called name.
func GetIptcTag(img *Image, name string) (string, bool) {
	return img.Result().IptcTag(name)
}

// GetXmpTag returns the XMP property called name, in prefix:Name form.
func GetXmpTag(img *Image, name string) (string, bool) {
	return img.Result().XmpTag(name)
}

// GetAllTags returns a copy of every EXIF tag. The map is empty, never nil,
// when nothing was extracted.
func GetAllTags(img *Image) Tags {
	return img.Result().Tags()
}

// GetAllIptcTags returns a copy of every IPTC tag.
func GetAllIptcTags(img *Image) Tags {
	return img.Result().IptcTags()
}

// GetAllXmpTags returns a copy of every XMP property.
func GetAllXmpTags(img *Image) Tags {
	return img.Result().XmpTags()
}

// Pretty formats every EXIF tag as a "Name : value" line, sorted by name.
func Pretty(img *Image) string {
	return img.Result().Pretty()
}

// Fields flattens all three groups into core.MetaField values, sorted by name
// within each group.
func Fields(img *Image) []core.MetaField {
	return img.Result().Fields()
}

func (r *Result) Tag(name string) (string, bool)     { return r.lookup(core.GroupEXIF, name) }
func (r *Result) IptcTag(name string) (string, bool) { return r.lookup(core.GroupIPTC, name) }
func (r *Result) XmpTag(name string) (string, bool)  { return r.lookup(core.GroupXMP, name) }

func (r *Result) Tags() Tags     { return r.all(core.GroupEXIF) }
func (r *Result) IptcTags() Tags { return r.all(core.GroupIPTC) }
func (r *Result) XmpTags() Tags  { return r.all(core.GroupXMP) }

// Pretty is the package-level Pretty for a single Result.
func (r *Result) Pretty() string {
	tags := r.Tags()
	names := make([]string, 0, len(tags))
	for k := range tags {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, k := range names {
		fmt.Fprintf(&b, "%s : %s\r\n", k, tags[k])
	}
	return b.String()
}

// Fields is the package-level Fields for a single Result.
func (r *Result) Fields() []core.MetaField {
	var out []core.MetaField
	for _, g := range []string{core.GroupEXIF, core.GroupIPTC, core.GroupXMP} {
		tags := r.all(g)
		keys := make([]string, 0, len(tags))
		for k := range tags {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, core.MetaField{Key: k, Value: tags[k], Group: g})
		}
	}
	return out
}
