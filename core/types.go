// Package core defines the shared types and format detection used by exifkit.
package core

// Metadata groups.
const (
	GroupEXIF = "EXIF"
	GroupIPTC = "IPTC"
	GroupXMP  = "XMP"
)

// MetaField represents a single metadata key-value pair.
type MetaField struct {
	Key   string // Tag name (e.g. "Make", "Keywords", "dc:creator")
	Value string // String representation of the value
	Group string // One of GroupEXIF, GroupIPTC, GroupXMP
}

// Metadata holds everything a reader reported for one image.
type Metadata struct {
	Source string
	Format string // Human-readable format name (e.g. "JPEG", "PNG")
	Loaded bool   // false when extraction failed
	Fields []MetaField
}

// Summary returns a short string of key fields for quick display.
func (m *Metadata) Summary() string {
	for _, f := range m.Fields {
		if f.Key == "Make" || f.Key == "Model" || f.Key == "ObjectName" {
			return f.Key + ": " + f.Value
		}
	}
	return m.Format
}

// Group returns the fields of one group as a map.
func (m *Metadata) Group(name string) map[string]string {
	out := make(map[string]string)
	for _, f := range m.Fields {
		if f.Group == name {
			out[f.Key] = f.Value
		}
	}
	return out
}
