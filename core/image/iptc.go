package image

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// iptcFieldNames maps record 2 dataset numbers to tag names.
var iptcFieldNames = map[byte]string{
	0x05: "ObjectName",
	0x07: "EditStatus",
	0x0A: "Urgency",
	0x0F: "Category",
	0x14: "SupplementalCategory",
	0x19: "Keywords",
	0x28: "SpecialInstructions",
	0x37: "DateCreated",
	0x3C: "TimeCreated",
	0x3E: "DigitalCreationDate",
	0x41: "OriginatingProgram",
	0x50: "Byline",
	0x55: "BylineTitle",
	0x5A: "City",
	0x5C: "SubLocation",
	0x5F: "Province",
	0x64: "CountryCode",
	0x65: "Country",
	0x67: "OriginalTransmissionReference",
	0x69: "Headline",
	0x6E: "Credit",
	0x73: "Source",
	0x74: "CopyrightNotice",
	0x76: "Contact",
	0x78: "Caption",
	0x7A: "CaptionWriter",
}

const (
	iptcEnvelope    = 1
	iptcApplication = 2
	iptcCharset     = 90
)

// utf8Escape is the ISO 2022 designation of UTF-8 used in dataset 1:90.
var utf8Escape = []byte("\x1b%G")

type iptcRecord struct {
	record  byte
	dataset byte
	value   []byte
}

// parseIPTC reads the Photoshop image resource blocks of an APP13 segment
// and returns the IPTC tags of resource 0x0404.
func parseIPTC(data []byte) Tags {
	tags := Tags{}
	// Skip "8BIM" Photoshop resource blocks to find IPTC resource (0x0404)
	i := 0
	for i+8 < len(data) {
		if !bytes.Equal(data[i:i+4], []byte("8BIM")) {
			i++
			continue
		}
		resType := binary.BigEndian.Uint16(data[i+4 : i+6])
		nameLen := int(data[i+6])
		if nameLen%2 == 0 {
			nameLen++
		}
		i += 7 + nameLen
		if i+4 > len(data) {
			break
		}
		blockLen := int(binary.BigEndian.Uint32(data[i : i+4]))
		i += 4
		if resType == 0x0404 && i+blockLen <= len(data) {
			parseIPTCBlock(data[i:i+blockLen], tags)
		}
		i += blockLen
		if blockLen%2 != 0 {
			i++
		}
	}
	return tags
}

func parseIPTCBlock(data []byte, tags Tags) {
	var records []iptcRecord
	isUTF8 := false
	i := 0
	for i+5 <= len(data) {
		if data[i] != 0x1C {
			i++
			continue
		}
		rec := iptcRecord{record: data[i+1], dataset: data[i+2]}
		length := int(binary.BigEndian.Uint16(data[i+3 : i+5]))
		i += 5
		if i+length > len(data) {
			break
		}
		rec.value = data[i : i+length]
		i += length

		if rec.record == iptcEnvelope && rec.dataset == iptcCharset {
			isUTF8 = bytes.Equal(rec.value, utf8Escape)
		}
		records = append(records, rec)
	}

	for _, rec := range records {
		if rec.record != iptcApplication {
			continue
		}
		name, ok := iptcFieldNames[rec.dataset]
		if !ok {
			continue
		}
		val := decodeIPTCString(rec.value, isUTF8)
		if prev, ok := tags[name]; ok {
			val = prev + ", " + val
		}
		tags[name] = val
	}
}

// decodeIPTCString treats undeclared, invalid UTF-8 values as ISO-8859-1.
func decodeIPTCString(b []byte, isUTF8 bool) string {
	if isUTF8 || utf8.Valid(b) {
		return string(b)
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
