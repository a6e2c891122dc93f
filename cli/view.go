package main

import (
	"fmt"

	"github.com/ankit-chaubey/exifkit/core"
	"github.com/ankit-chaubey/exifkit/core/audio"
	"github.com/ankit-chaubey/exifkit/core/image"
	"github.com/ankit-chaubey/exifkit/exif"
	"github.com/spf13/cobra"
)

var (
	viewXMP  bool
	viewJSON bool
	viewTag  string
	viewIPTC bool
)

var viewCmd = &cobra.Command{
	Use:   "view <file>...",
	Short: "Show the metadata of images or of audio cover art",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runView,
}

var prettyCmd = &cobra.Command{
	Use:   "pretty <file>",
	Short: "Print all EXIF tags, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		obj, err := load(args[0], cfg.XMP)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), obj.Pretty())
		return nil
	},
}

func init() {
	viewCmd.Flags().BoolVar(&viewXMP, "xmp", false, "also extract XMP (overrides config)")
	viewCmd.Flags().BoolVar(&viewJSON, "json", false, "output JSON (overrides config)")
	viewCmd.Flags().StringVarP(&viewTag, "tag", "t", "", "print a single tag")
	viewCmd.Flags().BoolVar(&viewIPTC, "iptc", false, "look --tag up among IPTC tags")
}

func runView(cmd *cobra.Command, args []string) error {
	withXMP := cfg.XMP
	if cmd.Flags().Changed("xmp") {
		withXMP = viewXMP
	}
	jsonMode := cfg.JSON
	if cmd.Flags().Changed("json") {
		jsonMode = viewJSON
	}
	printer := core.NewPrinter(jsonMode)
	printer.Writer = cmd.OutOrStdout()

	for _, path := range args {
		obj, err := load(path, withXMP)
		if err != nil {
			return err
		}

		if viewTag != "" {
			get := obj.GetTag
			if viewIPTC {
				get = obj.GetIptcTag
			}
			if val, ok := get(viewTag); ok {
				printer.PrintLine(val)
			} else {
				core.PrintError(fmt.Sprintf("%s: tag %s not found", path, viewTag))
			}
			continue
		}

		if err := printer.PrintMetadata(obj.Metadata(path)); err != nil {
			return err
		}
	}
	return nil
}

// load opens path as an image, or as the cover art of an audio file.
func load(path string, withXMP bool) (*exif.Object, error) {
	id, err := core.DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var img *image.Image
	if core.MediaTypeFor(id) == "audio" {
		img, err = audio.Artwork(path)
	} else {
		img, err = image.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return service.Create(img, exif.WithXMP(withXMP)), nil
}
