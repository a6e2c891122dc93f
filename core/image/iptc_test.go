package image

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ankit-chaubey/exifkit/internal/fixture"
)

func TestParseIPTC_RepeatedDatasetsAreJoined(t *testing.T) {
	tags := parseIPTC(fixture.IPTC(
		fixture.IPTCRecord{Record: 2, Dataset: 0x19, Value: "sea"},
		fixture.IPTCRecord{Record: 2, Dataset: 0x19, Value: "boat"},
		fixture.IPTCRecord{Record: 2, Dataset: 0x5A, Value: "Porto"},
	))

	assert.Equal(t, Tags{"Keywords": "sea, boat", "City": "Porto"}, tags)
}

func TestParseIPTC_Charset(t *testing.T) {
	latin1 := parseIPTC(fixture.IPTC(
		fixture.IPTCRecord{Record: 2, Dataset: 0x78, Value: "Caf\xe9"},
	))
	assert.Equal(t, "Café", latin1["Caption"])

	declared := parseIPTC(fixture.IPTC(
		fixture.IPTCRecord{Record: 1, Dataset: 90, Value: "\x1b%G"},
		fixture.IPTCRecord{Record: 2, Dataset: 0x78, Value: "Café"},
	))
	assert.Equal(t, "Café", declared["Caption"])
}

func TestParseIPTC_IgnoresOtherRecordsAndResources(t *testing.T) {
	data := append([]byte("8BIM\x03\xed\x00\x00\x00\x00\x00\x02ab"), fixture.IPTC(
		fixture.IPTCRecord{Record: 1, Dataset: 0x05, Value: "envelope"},
		fixture.IPTCRecord{Record: 2, Dataset: 0x05, Value: "Harbour"},
		fixture.IPTCRecord{Record: 2, Dataset: 0xC8, Value: "unknown dataset"},
	)...)

	assert.Equal(t, Tags{"ObjectName": "Harbour"}, parseIPTC(data))
}

func TestParseIPTC_Truncated(t *testing.T) {
	data := fixture.IPTC(fixture.IPTCRecord{Record: 2, Dataset: 0x05, Value: "Harbour"})

	assert.Empty(t, parseIPTC(data[:len(data)-4]))
	assert.Empty(t, parseIPTC(nil))
}
