package jpg

import (
	"bytes"
	"testing"
)

func TestSegment(t *testing.T) {
	data := Build(
		RawSegment{Marker: 0xE0, Data: []byte("JFIF\x00\x01\x02")},
		RawSegment{Marker: APP1, Data: append([]byte("Exif\x00\x00"), "tiff"...)},
		RawSegment{Marker: APP1, Data: append(append([]byte{}, PrefixXMP...), "<x/>"...)},
		RawSegment{Marker: APP13, Data: append(append([]byte{}, PrefixIPTC...), "8BIM"...)},
	)

	if got := Segment(bytes.NewReader(data), APP1, PrefixEXIF); string(got) != "tiff" {
		t.Errorf("exif segment = %q", got)
	}
	if got := Segment(bytes.NewReader(data), APP1, PrefixXMP); string(got) != "<x/>" {
		t.Errorf("xmp segment = %q", got)
	}
	if got := Segment(bytes.NewReader(data), APP13, PrefixIPTC); string(got) != "8BIM" {
		t.Errorf("iptc segment = %q", got)
	}
	if got := Segment(bytes.NewReader(data), 0xE2, nil); got != nil {
		t.Errorf("expected no ICC segment, got %q", got)
	}
}

func TestSegments(t *testing.T) {
	data := Build(
		RawSegment{Marker: APP1, Data: []byte("Exif\x00\x00one")},
		RawSegment{Marker: APP1, Data: []byte("Exif\x00\x00two")},
	)

	got := Segments(bytes.NewReader(data), APP1, PrefixEXIF)
	if len(got) != 2 || string(got[0]) != "one" || string(got[1]) != "two" {
		t.Fatalf("unexpected segments: %q", got)
	}
}

func TestSegment_StopsAtScan(t *testing.T) {
	data := Build(
		RawSegment{Marker: SOS, Data: []byte{0x01, 0x02}},
		RawSegment{Marker: APP1, Data: []byte("Exif\x00\x00late")},
	)

	if got := Segment(bytes.NewReader(data), APP1, PrefixEXIF); got != nil {
		t.Fatalf("segments after SOS must be ignored, got %q", got)
	}
}

func TestSegment_Malformed(t *testing.T) {
	tests := map[string][]byte{
		"not a jpeg": []byte("GIF89a"),
		"empty":      nil,
		"truncated":  {0xFF, 0xD8, 0xFF, APP1, 0x00, 0x10, 'E', 'x'},
		"bad length": {0xFF, 0xD8, 0xFF, APP1, 0x00, 0x01},
		"no marker":  {0xFF, 0xD8, 0x00, 0x00},
	}
	for name, data := range tests {
		if got := Segment(bytes.NewReader(data), APP1, nil); got != nil {
			t.Errorf("%s: expected nil, got %q", name, got)
		}
	}
}

func TestSegment_SkipsFillBytes(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0xFF, 0xFF, APP1, 0x00, 0x05, 'a', 'b', 'c', 0xFF, EOI}

	if got := Segment(bytes.NewReader(data), APP1, nil); string(got) != "abc" {
		t.Fatalf("got %q", got)
	}
}
