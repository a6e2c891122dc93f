// Package fixture builds small in-memory images carrying known metadata.
package fixture

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"sort"

	"github.com/ankit-chaubey/exifkit/core/jpg"
)

// EXIF tag IDs used by the fixtures.
const (
	TagMake     uint16 = 0x010F
	TagModel    uint16 = 0x0110
	TagSoftware uint16 = 0x0131
	TagDateTime uint16 = 0x0132
	TagArtist   uint16 = 0x013B
)

// ASCII is an ASCII-typed IFD0 entry.
type ASCII struct {
	ID    uint16
	Value string
}

// TIFF returns a little-endian TIFF structure whose IFD0 holds tags.
func TIFF(tags ...ASCII) []byte {
	sorted := append([]ASCII(nil), tags...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	le := binary.LittleEndian
	n := len(sorted)
	dataOffset := uint32(8 + 2 + 12*n + 4)

	var ifd, extra bytes.Buffer
	ifd.Write([]byte{0x49, 0x49, 0x2A, 0x00}) // little-endian TIFF header
	ifd.Write([]byte{0x08, 0x00, 0x00, 0x00}) // first IFD offset
	binary.Write(&ifd, le, uint16(n))
	for _, t := range sorted {
		ascii := append([]byte(t.Value), 0x00)
		binary.Write(&ifd, le, t.ID)
		binary.Write(&ifd, le, uint16(2)) // ASCII type
		binary.Write(&ifd, le, uint32(len(ascii)))
		if len(ascii) <= 4 {
			var inline [4]byte
			copy(inline[:], ascii)
			ifd.Write(inline[:])
			continue
		}
		binary.Write(&ifd, le, dataOffset+uint32(extra.Len()))
		extra.Write(ascii)
		if extra.Len()%2 != 0 {
			extra.WriteByte(0)
		}
	}
	ifd.Write([]byte{0x00, 0x00, 0x00, 0x00}) // next IFD offset
	ifd.Write(extra.Bytes())
	return ifd.Bytes()
}

// IPTCRecord is one IIM dataset.
type IPTCRecord struct {
	Record  byte
	Dataset byte
	Value   string
}

// IPTC wraps records in a Photoshop 8BIM 0x0404 resource.
func IPTC(records ...IPTCRecord) []byte {
	var block bytes.Buffer
	for _, r := range records {
		block.Write([]byte{0x1C, r.Record, r.Dataset})
		binary.Write(&block, binary.BigEndian, uint16(len(r.Value)))
		block.WriteString(r.Value)
	}

	var b bytes.Buffer
	b.WriteString("8BIM")
	binary.Write(&b, binary.BigEndian, uint16(0x0404))
	b.Write([]byte{0x00, 0x00}) // empty, padded name
	binary.Write(&b, binary.BigEndian, uint32(block.Len()))
	b.Write(block.Bytes())
	if block.Len()%2 != 0 {
		b.WriteByte(0)
	}
	return b.Bytes()
}

// XMPPacket is a packet with xmp:CreatorTool, dc:creator and dc:subject.
const XMPPacket = `<?xpacket begin="" id="W5M0MpCehiHzreSzNTczkc9d"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about=""
    xmlns:dc="http://purl.org/dc/elements/1.1/"
    xmlns:xmp="http://ns.adobe.com/xap/1.0/">
   <xmp:CreatorTool>exifkit</xmp:CreatorTool>
   <dc:creator><rdf:Seq><rdf:li>Ann Example</rdf:li></rdf:Seq></dc:creator>
   <dc:subject><rdf:Bag><rdf:li>sea</rdf:li><rdf:li>boat</rdf:li></rdf:Bag></dc:subject>
  </rdf:Description>
 </rdf:RDF>
</x:xmpmeta>
<?xpacket end="w"?>`

// JPEGParts selects the metadata segments of a JPEG fixture. Nil parts are
// left out.
type JPEGParts struct {
	TIFF []byte
	IPTC []byte
	XMP  []byte
}

// JPEG builds a JPEG stream carrying the given metadata segments.
func JPEG(p JPEGParts) []byte {
	var segs []jpg.RawSegment
	if p.TIFF != nil {
		segs = append(segs, jpg.RawSegment{Marker: jpg.APP1, Data: concat(jpg.PrefixEXIF, p.TIFF)})
	}
	if p.XMP != nil {
		segs = append(segs, jpg.RawSegment{Marker: jpg.APP1, Data: concat(jpg.PrefixXMP, p.XMP)})
	}
	if p.IPTC != nil {
		segs = append(segs, jpg.RawSegment{Marker: jpg.APP13, Data: concat(jpg.PrefixIPTC, p.IPTC)})
	}
	return jpg.Build(segs...)
}

// Camera is a JPEG with Make, Model and DateTime set.
func Camera() []byte {
	return JPEG(JPEGParts{
		TIFF: TIFF(
			ASCII{ID: TagMake, Value: "Canon"},
			ASCII{ID: TagModel, Value: "Canon EOS 5D"},
			ASCII{ID: TagDateTime, Value: "2024:05:06 07:08:09"},
		),
		IPTC: IPTC(
			IPTCRecord{Record: 2, Dataset: 0x05, Value: "Harbour"},
			IPTCRecord{Record: 2, Dataset: 0x19, Value: "sea"},
			IPTCRecord{Record: 2, Dataset: 0x19, Value: "boat"},
		),
		XMP: []byte(XMPPacket),
	})
}

// PNG builds a PNG stream with optional eXIf and XMP iTXt chunks.
func PNG(tiff []byte, xmp string) []byte {
	var b bytes.Buffer
	b.Write([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	pngChunk(&b, "IHDR", []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0})
	if tiff != nil {
		pngChunk(&b, "eXIf", tiff)
	}
	if xmp != "" {
		data := concat([]byte("XML:com.adobe.xmp"), []byte{0, 0, 0, 0, 0}, []byte(xmp))
		pngChunk(&b, "iTXt", data)
	}
	pngChunk(&b, "IEND", nil)
	return b.Bytes()
}

func pngChunk(w *bytes.Buffer, typ string, data []byte) {
	binary.Write(w, binary.BigEndian, uint32(len(data)))
	w.WriteString(typ)
	w.Write(data)
	crc := crc32.ChecksumIEEE(concat([]byte(typ), data))
	binary.Write(w, binary.BigEndian, crc)
}

// WebP builds a RIFF WebP container with optional EXIF and XMP chunks.
func WebP(tiff []byte, xmp string) []byte {
	var chunks bytes.Buffer
	webpChunk(&chunks, "VP8X", make([]byte, 10))
	if tiff != nil {
		webpChunk(&chunks, "EXIF", tiff)
	}
	if xmp != "" {
		webpChunk(&chunks, "XMP ", []byte(xmp))
	}

	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(4+chunks.Len()))
	b.WriteString("WEBP")
	b.Write(chunks.Bytes())
	return b.Bytes()
}

func webpChunk(w *bytes.Buffer, id string, data []byte) {
	w.WriteString(id)
	binary.Write(w, binary.LittleEndian, uint32(len(data)))
	w.Write(data)
	if len(data)%2 != 0 {
		w.WriteByte(0)
	}
}

// GIF is a header-only GIF89a stream.
func GIF() []byte {
	return []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
