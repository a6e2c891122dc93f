// Package audio loads the cover art embedded in audio files as image handles:
// MP3 (ID3v2 APIC frames), FLAC, OGG and M4A.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ankit-chaubey/exifkit/core"
	"github.com/ankit-chaubey/exifkit/core/image"
	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
)

// ErrNoPicture is returned when an audio file carries no embedded picture.
var ErrNoPicture = errors.New("no embedded picture")

// Artwork returns the cover picture of the audio file at path.
func Artwork(path string) (*image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ArtworkFromBytes(path, data)
}

// ArtworkFromBytes is Artwork for audio data already in memory.
func ArtworkFromBytes(src string, data []byte) (*image.Image, error) {
	if core.DetectBytes(data) == core.FmtMP3 {
		pic, err := id3Picture(data)
		if err == nil {
			return image.FromBytes(src+"#cover", pic), nil
		}
		if !errors.Is(err, ErrNoPicture) {
			return nil, err
		}
	}

	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return nil, ErrNoPicture
		}
		return nil, fmt.Errorf("could not read tags: %w", err)
	}
	p := m.Picture()
	if p == nil || len(p.Data) == 0 {
		return nil, ErrNoPicture
	}
	return image.FromBytes(src+"#cover", p.Data), nil
}

// id3Picture picks the front cover from the APIC frames, or the first
// picture when no front cover is tagged.
func id3Picture(data []byte) ([]byte, error) {
	t, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("could not parse ID3v2: %w", err)
	}
	defer t.Close()

	var first []byte
	for _, f := range t.GetFrames(t.CommonID("Attached picture")) {
		pic, ok := f.(id3v2.PictureFrame)
		if !ok || len(pic.Picture) == 0 {
			continue
		}
		if pic.PictureType == id3v2.PTFrontCover {
			return pic.Picture, nil
		}
		if first == nil {
			first = pic.Picture
		}
	}
	if first == nil {
		return nil, ErrNoPicture
	}
	return first, nil
}
