// Package jpg locates application segments inside a JPEG stream.
package jpg

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Marker bytes of the segments exifkit reads.
const (
	APP1  byte = 0xE1
	APP13 byte = 0xED
	SOS   byte = 0xDA
	EOI   byte = 0xD9
)

// Well-known APP segment prefixes.
var (
	PrefixEXIF = []byte("Exif\x00\x00")
	PrefixXMP  = []byte("http://ns.adobe.com/xap/1.0/\x00")
	PrefixIPTC = []byte("Photoshop 3.0\x00")
)

// Segment finds the first JPEG APP segment with the given marker byte and
// prefix. It returns the segment data after the prefix, or nil.
func Segment(r io.Reader, marker byte, prefix []byte) []byte {
	var found []byte
	walk(r, func(m byte, data []byte) bool {
		if m == marker && bytes.HasPrefix(data, prefix) {
			found = data[len(prefix):]
			return false
		}
		return true
	})
	return found
}

// Segments is like Segment but returns every match in stream order.
func Segments(r io.Reader, marker byte, prefix []byte) [][]byte {
	var all [][]byte
	walk(r, func(m byte, data []byte) bool {
		if m == marker && bytes.HasPrefix(data, prefix) {
			all = append(all, data[len(prefix):])
		}
		return true
	})
	return all
}

// walk calls fn for every marker segment before the scan data. It stops
// early when fn returns false.
func walk(r io.Reader, fn func(marker byte, data []byte) bool) {
	buf := make([]byte, 2)
	// Read SOI
	if _, err := io.ReadFull(r, buf); err != nil {
		return
	}
	if buf[0] != 0xFF || buf[1] != 0xD8 {
		return
	}
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return
		}
		if buf[0] != 0xFF {
			return
		}
		segMarker := buf[1]
		// Fill bytes
		for segMarker == 0xFF {
			if _, err := io.ReadFull(r, buf[1:]); err != nil {
				return
			}
			segMarker = buf[1]
		}
		if segMarker == EOI {
			return
		}
		lenBuf := make([]byte, 2)
		if _, err := io.ReadFull(r, lenBuf); err != nil {
			return
		}
		segLen := int(binary.BigEndian.Uint16(lenBuf)) - 2
		if segLen < 0 {
			return
		}
		data := make([]byte, segLen)
		if _, err := io.ReadFull(r, data); err != nil {
			return
		}
		if !fn(segMarker, data) {
			return
		}
		// Stop at SOS (start of scan)
		if segMarker == SOS {
			return
		}
	}
}

// Build assembles a JPEG stream from SOI, the given segments and EOI.
// Each segment is written as marker, length and payload.
func Build(segs ...RawSegment) []byte {
	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8})
	for _, s := range segs {
		b.Write([]byte{0xFF, s.Marker})
		var l [2]byte
		binary.BigEndian.PutUint16(l[:], uint16(len(s.Data)+2))
		b.Write(l[:])
		b.Write(s.Data)
	}
	b.Write([]byte{0xFF, EOI})
	return b.Bytes()
}

// RawSegment is a marker segment payload, used by Build.
type RawSegment struct {
	Marker byte
	Data   []byte
}
