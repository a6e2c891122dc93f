package image

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// ─── PNG ─────────────────────────────────────────────────────────────────────

const pngXMPKeyword = "XML:com.adobe.xmp"

type pngChunk struct {
	typ  string
	data []byte
}

// readPNGChunks splits data into chunks. Chunk data aliases data, and a chunk
// whose declared length runs past the end of data ends the walk.
func readPNGChunks(data []byte) ([]pngChunk, error) {
	expected := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	if !bytes.HasPrefix(data, expected) {
		return nil, fmt.Errorf("not a valid PNG")
	}

	var chunks []pngChunk
	offset := len(expected)
	for offset+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[offset : offset+4]))
		typ := string(data[offset+4 : offset+8])
		offset += 8
		// length+4 covers the CRC.
		if length < 0 || length > len(data)-offset-4 {
			break
		}
		chunks = append(chunks, pngChunk{typ: typ, data: data[offset : offset+length]})
		offset += length + 4
		if typ == "IEND" {
			break
		}
	}
	return chunks, nil
}

// pngMetadata returns the eXIf chunk and the XMP iTXt text of a PNG.
func pngMetadata(data []byte) (exifRaw, xmpRaw []byte) {
	chunks, err := readPNGChunks(data)
	if err != nil {
		return nil, nil
	}
	for _, c := range chunks {
		switch c.typ {
		case "eXIf":
			exifRaw = c.data
		case "iTXt":
			// Format: keyword\0compression_flag\0compression_method\0language\0translated_keyword\0text
			null := bytes.IndexByte(c.data, 0)
			if null <= 0 || string(c.data[:null]) != pngXMPKeyword || null+3 > len(c.data) {
				continue
			}
			if c.data[null+1] != 0 {
				// compressed XMP is not supported
				continue
			}
			rest := c.data[null+3:]
			for i := 0; i < 2 && rest != nil; i++ {
				n := bytes.IndexByte(rest, 0)
				if n < 0 {
					rest = nil
					break
				}
				rest = rest[n+1:]
			}
			xmpRaw = rest
		}
	}
	return exifRaw, xmpRaw
}

// ─── WebP ────────────────────────────────────────────────────────────────────

// webpMetadata returns the EXIF and XMP chunks of a WebP RIFF container.
func webpMetadata(data []byte) (exifRaw, xmpRaw []byte) {
	if len(data) < 12 {
		return nil, nil
	}

	offset := 12 // skip RIFF header
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		offset += 8
		if chunkSize < 0 || offset+chunkSize > len(data) {
			break
		}
		chunkData := data[offset : offset+chunkSize]

		switch chunkID {
		case "EXIF":
			exifRaw = chunkData
		case "XMP ":
			if utf8.Valid(chunkData) {
				xmpRaw = chunkData
			}
		}

		offset += chunkSize
		if chunkSize%2 != 0 {
			offset++ // padding
		}
	}
	return exifRaw, xmpRaw
}
