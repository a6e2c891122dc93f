package image

import (
	"bytes"
	"encoding/xml"
	"strings"

	"seehuhn.de/go/xmp"
)

const (
	rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xmlNS = "http://www.w3.org/XML/1998/namespace"
)

var (
	rdfDescription = xml.Name{Space: rdfNS, Local: "Description"}
	rdfResource    = xml.Name{Space: rdfNS, Local: "resource"}
)

// xmpPrefixes holds the customary prefixes of common XMP namespaces.
var xmpPrefixes = map[string]string{
	"http://purl.org/dc/elements/1.1/":             "dc",
	"http://ns.adobe.com/xap/1.0/":                 "xmp",
	"http://ns.adobe.com/xap/1.0/mm/":              "xmpMM",
	"http://ns.adobe.com/xap/1.0/rights/":          "xmpRights",
	"http://ns.adobe.com/photoshop/1.0/":           "photoshop",
	"http://ns.adobe.com/tiff/1.0/":                "tiff",
	"http://ns.adobe.com/exif/1.0/":                "exif",
	"http://ns.adobe.com/exif/1.0/aux/":            "aux",
	"http://ns.adobe.com/camera-raw-settings/1.0/": "crs",
	"http://ns.adobe.com/lightroom/1.0/":           "lr",
	"http://iptc.org/std/Iptc4xmpCore/1.0/xmlns/":  "Iptc4xmpCore",
	"http://iptc.org/std/Iptc4xmpExt/2008-02-29/":  "Iptc4xmpExt",
	"http://ns.google.com/photos/1.0/camera/":      "GCamera",
	"http://ns.adobe.com/xmp/1.0/DynamicMedia/":    "xmpDM",
	"http://cipa.jp/exif/1.0/":                     "exifEX",
}

type xmpProperty struct {
	name  xml.Name
	value string
}

// parseXMP validates an XMP packet and flattens its top-level properties to
// "prefix:Name" keys. Array items are joined with ", ".
func parseXMP(data []byte) (Tags, error) {
	pkt, err := xmp.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	known := make(map[xml.Name]bool, len(pkt.Properties))
	for name := range pkt.Properties {
		known[name] = true
	}

	tags := Tags{}
	for _, p := range flattenXMP(data) {
		if !known[p.name] {
			continue
		}
		tags[xmpKey(p.name)] = p.value
	}
	return tags, nil
}

func flattenXMP(data []byte) []xmpProperty {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		props     []xmpProperty
		depth     int
		descDepth = -1
		propDepth = -1
		current   xml.Name
		parts     []string
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case descDepth < 0 && t.Name == rdfDescription:
				descDepth = depth
				// Simple properties may be written as attributes.
				for _, attr := range t.Attr {
					if isPropertyAttr(attr.Name) {
						props = append(props, xmpProperty{name: attr.Name, value: attr.Value})
					}
				}
			case descDepth >= 0 && propDepth < 0:
				propDepth = depth
				current = t.Name
				parts = parts[:0]
				for _, attr := range t.Attr {
					if attr.Name == rdfResource {
						parts = append(parts, attr.Value)
					}
				}
			}
		case xml.CharData:
			if propDepth < 0 {
				continue
			}
			if val := strings.TrimSpace(string(t)); val != "" {
				parts = append(parts, val)
			}
		case xml.EndElement:
			if depth == propDepth {
				props = append(props, xmpProperty{name: current, value: strings.Join(parts, ", ")})
				propDepth = -1
			}
			if depth == descDepth {
				descDepth = -1
			}
			depth--
		}
	}
	return props
}

func isPropertyAttr(n xml.Name) bool {
	switch n.Space {
	case "", "xmlns", rdfNS, xmlNS:
		return false
	}
	return true
}

// xmpKey renders a property name as prefix:Local.
func xmpKey(n xml.Name) string {
	prefix, ok := xmpPrefixes[n.Space]
	if !ok {
		prefix = strings.TrimRight(n.Space, "/#")
		if i := strings.LastIndexAny(prefix, "/#:"); i >= 0 {
			prefix = prefix[i+1:]
		}
	}
	if prefix == "" {
		return n.Local
	}
	return prefix + ":" + n.Local
}
