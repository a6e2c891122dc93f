package image_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankit-chaubey/exifkit/core"
	"github.com/ankit-chaubey/exifkit/core/image"
	"github.com/ankit-chaubey/exifkit/core/jpg"
	"github.com/ankit-chaubey/exifkit/internal/fixture"
)

func boolPtr(b bool) *bool { return &b }

func TestGetData_JPEG(t *testing.T) {
	img := image.FromBytes("camera.jpg", fixture.Camera())

	require.True(t, image.GetData(img, &image.Options{XMP: boolPtr(true)}))
	assert.True(t, img.Parsed())
	assert.Equal(t, core.FmtJPEG, img.Format())

	mk, ok := image.GetTag(img, "Make")
	require.True(t, ok)
	assert.Equal(t, "Canon", mk)

	exifTags := image.GetAllTags(img)
	assert.Equal(t, "Canon EOS 5D", exifTags["Model"])
	assert.Equal(t, "2024:05:06 07:08:09", exifTags["DateTime"])

	wantIPTC := image.Tags{"ObjectName": "Harbour", "Keywords": "sea, boat"}
	if diff := cmp.Diff(wantIPTC, image.GetAllIptcTags(img)); diff != "" {
		t.Errorf("iptc tags mismatch (-want +got):\n%s", diff)
	}

	wantXMP := image.Tags{
		"xmp:CreatorTool": "exifkit",
		"dc:creator":      "Ann Example",
		"dc:subject":      "sea, boat",
	}
	if diff := cmp.Diff(wantXMP, image.GetAllXmpTags(img)); diff != "" {
		t.Errorf("xmp tags mismatch (-want +got):\n%s", diff)
	}
}

func TestGetData_GlobalXMPToggle(t *testing.T) {
	defer image.DisableXMP()
	img := image.FromBytes("camera.jpg", fixture.Camera())

	image.DisableXMP()
	require.True(t, image.GetData(img, nil))
	assert.Empty(t, image.GetAllXmpTags(img))

	image.EnableXMP()
	assert.True(t, image.XMPEnabled())
	require.True(t, image.GetData(img, nil))
	creator, ok := image.GetXmpTag(img, "dc:creator")
	assert.True(t, ok)
	assert.Equal(t, "Ann Example", creator)
}

func TestGetData_OptionsOverrideToggle(t *testing.T) {
	defer image.DisableXMP()
	img := image.FromBytes("camera.jpg", fixture.Camera())

	image.EnableXMP()
	require.True(t, image.GetData(img, &image.Options{XMP: boolPtr(false)}))
	assert.Empty(t, image.GetAllXmpTags(img))
	assert.True(t, image.XMPEnabled(), "a per-call override must not change the toggle")
}

func TestGetData_ReplacesAnnotations(t *testing.T) {
	img := image.FromBytes("camera.jpg", fixture.Camera())

	require.True(t, image.GetData(img, &image.Options{XMP: boolPtr(true)}))
	require.NotEmpty(t, image.GetAllXmpTags(img))

	require.True(t, image.GetData(img, &image.Options{XMP: boolPtr(false)}))
	assert.Empty(t, image.GetAllXmpTags(img))
	assert.NotEmpty(t, image.GetAllTags(img))
}

func TestExtract_ResultOutlivesReannotation(t *testing.T) {
	img := image.FromBytes("camera.jpg", fixture.Camera())

	first, ok := image.Extract(img, &image.Options{XMP: boolPtr(true)})
	require.True(t, ok)
	assert.Same(t, first, img.Result())

	second, ok := image.Extract(img, &image.Options{XMP: boolPtr(false)})
	require.True(t, ok)
	assert.Same(t, second, img.Result())

	assert.Len(t, first.XmpTags(), 3)
	assert.Empty(t, second.XmpTags())
	assert.Equal(t, core.FmtJPEG, first.Format())
	assert.Equal(t, first.Pretty(), second.Pretty())
}

func TestNilResult(t *testing.T) {
	var r *image.Result
	_, ok := r.Tag("Make")
	assert.False(t, ok)
	assert.NotNil(t, r.IptcTags())
	assert.Empty(t, r.XmpTags())
	assert.Equal(t, "", r.Pretty())
	assert.Empty(t, r.Fields())
	assert.Equal(t, core.FmtUnknown, r.Format())
}

func TestGetData_NotAnImage(t *testing.T) {
	img := image.FromBytes("notes.txt", []byte("definitely not an image"))

	assert.False(t, image.GetData(img, nil))
	assert.False(t, img.Parsed())

	_, ok := image.GetTag(img, "Make")
	assert.False(t, ok)
	all := image.GetAllTags(img)
	assert.NotNil(t, all)
	assert.Empty(t, all)
	assert.Equal(t, "", image.Pretty(img))
}

func TestGetData_NilAndEmpty(t *testing.T) {
	assert.False(t, image.GetData(nil, nil))
	assert.False(t, image.GetData(image.FromBytes("empty", nil), nil))

	val, ok := image.GetIptcTag(nil, "Keywords")
	assert.False(t, ok)
	assert.Equal(t, "", val)
	assert.Empty(t, image.GetAllIptcTags(nil))
	assert.Empty(t, image.GetAllXmpTags(nil))
	assert.Equal(t, "", image.Pretty(nil))
	assert.Equal(t, core.FmtUnknown, (*image.Image)(nil).Format())
}

func TestGetData_JPEGWithoutMetadata(t *testing.T) {
	img := image.FromBytes("plain.jpg", fixture.JPEG(fixture.JPEGParts{}))

	require.True(t, image.GetData(img, nil))
	assert.Empty(t, image.GetAllTags(img))
	assert.Empty(t, image.GetAllIptcTags(img))
}

func TestGetData_CorruptEXIFSegment(t *testing.T) {
	data := jpg.Build(jpg.RawSegment{
		Marker: jpg.APP1,
		Data:   append(append([]byte{}, jpg.PrefixEXIF...), []byte("II*\x00garbage")...),
	})
	img := image.FromBytes("corrupt.jpg", data)

	require.True(t, image.GetData(img, nil))
	assert.Empty(t, image.GetAllTags(img))
}

func TestGetData_TIFF(t *testing.T) {
	img := image.FromBytes("scan.tiff", fixture.TIFF(
		fixture.ASCII{ID: fixture.TagArtist, Value: "Ann Example"},
		fixture.ASCII{ID: fixture.TagSoftware, Value: "scanner"},
	))

	require.True(t, image.GetData(img, nil))
	assert.Equal(t, core.FmtTIFF, img.Format())
	artist, ok := image.GetTag(img, "Artist")
	assert.True(t, ok)
	assert.Equal(t, "Ann Example", artist)
	assert.Equal(t, "scanner", image.GetAllTags(img)["Software"])
}

func TestGetData_PNG(t *testing.T) {
	tiff := fixture.TIFF(fixture.ASCII{ID: fixture.TagMake, Value: "Nikon"})
	img := image.FromBytes("shot.png", fixture.PNG(tiff, fixture.XMPPacket))

	require.True(t, image.GetData(img, &image.Options{XMP: boolPtr(true)}))
	assert.Equal(t, "Nikon", image.GetAllTags(img)["Make"])
	tool, ok := image.GetXmpTag(img, "xmp:CreatorTool")
	assert.True(t, ok)
	assert.Equal(t, "exifkit", tool)
}

func TestGetData_WebP(t *testing.T) {
	tiff := fixture.TIFF(fixture.ASCII{ID: fixture.TagModel, Value: "Pixel 8"})
	img := image.FromBytes("shot.webp", fixture.WebP(tiff, fixture.XMPPacket))

	require.True(t, image.GetData(img, &image.Options{XMP: boolPtr(false)}))
	assert.Equal(t, core.FmtWebP, img.Format())
	assert.Equal(t, "Pixel 8", image.GetAllTags(img)["Model"])
	assert.Empty(t, image.GetAllXmpTags(img))
}

func TestGetData_GIFHasNoMetadata(t *testing.T) {
	img := image.FromBytes("anim.gif", fixture.GIF())

	require.True(t, image.GetData(img, nil))
	assert.Equal(t, core.FmtGIF, img.Format())
	assert.Empty(t, image.GetAllTags(img))
}

func TestPretty(t *testing.T) {
	img := image.FromBytes("camera.jpg", fixture.Camera())
	require.True(t, image.GetData(img, nil))

	out := image.Pretty(img)
	assert.Contains(t, out, "Make : Canon\r\n")
	assert.Contains(t, out, "Model : Canon EOS 5D\r\n")
	for name := range image.GetAllTags(img) {
		assert.Contains(t, out, name+" : ")
	}

	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	assert.Len(t, lines, len(image.GetAllTags(img)))
	assert.True(t, strings.Index(out, "DateTime") < strings.Index(out, "Make"), "tags are sorted by name")
}

func TestAllTagsReturnsCopy(t *testing.T) {
	img := image.FromBytes("camera.jpg", fixture.Camera())
	require.True(t, image.GetData(img, nil))

	all := image.GetAllTags(img)
	all["Make"] = "changed"

	mk, _ := image.GetTag(img, "Make")
	assert.Equal(t, "Canon", mk)
}

func TestFields(t *testing.T) {
	img := image.FromBytes("camera.jpg", fixture.Camera())
	require.True(t, image.GetData(img, &image.Options{XMP: boolPtr(true)}))

	fields := image.Fields(img)
	require.NotEmpty(t, fields)
	assert.Equal(t, core.GroupEXIF, fields[0].Group)
	assert.Equal(t, core.GroupXMP, fields[len(fields)-1].Group)

	groups := map[string]int{}
	for _, f := range fields {
		groups[f.Group]++
	}
	assert.Equal(t, len(image.GetAllTags(img)), groups[core.GroupEXIF])
	assert.Equal(t, 2, groups[core.GroupIPTC])
	assert.Equal(t, 3, groups[core.GroupXMP])
}

func TestOpen(t *testing.T) {
	_, err := image.Open("/path/does/not/exist.jpg")
	assert.Error(t, err)

	img, err := image.FromReader("reader", strings.NewReader("GIF89a;"))
	require.NoError(t, err)
	assert.Equal(t, "reader", img.Src)
	assert.Equal(t, []byte("GIF89a;"), img.Bytes())
}
