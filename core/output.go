package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Printer handles all display output for the CLI.
type Printer struct {
	JSON   bool
	Writer io.Writer
}

// NewPrinter creates a default Printer writing to stdout.
func NewPrinter(jsonMode bool) *Printer {
	return &Printer{JSON: jsonMode, Writer: os.Stdout}
}

// PrintMetadata renders a Metadata struct to the configured output.
func (p *Printer) PrintMetadata(m *Metadata) error {
	if p.JSON {
		return p.printJSON(m)
	}
	p.printText(m)
	return nil
}

func (p *Printer) printText(m *Metadata) {
	fmt.Fprintf(p.Writer, "File  : %s\n", m.Source)
	fmt.Fprintf(p.Writer, "Format: %s\n", m.Format)
	if !m.Loaded {
		fmt.Fprintln(p.Writer, "(unable to load image data)")
		return
	}
	if len(m.Fields) == 0 {
		fmt.Fprintln(p.Writer, "(no metadata found)")
		return
	}
	fmt.Fprintln(p.Writer)

	// Group by category
	groups := make(map[string][]MetaField)
	order := []string{}
	seen := map[string]bool{}
	for _, f := range m.Fields {
		if !seen[f.Group] {
			seen[f.Group] = true
			order = append(order, f.Group)
		}
		groups[f.Group] = append(groups[f.Group], f)
	}

	for _, g := range order {
		fmt.Fprintf(p.Writer, "── %s ──\n", g)
		for _, f := range groups[g] {
			fmt.Fprintf(p.Writer, "  %-30s %s\n", f.Key+":", f.Value)
		}
		fmt.Fprintln(p.Writer)
	}
}

// Report is the JSON shape of one image's metadata.
type Report struct {
	Source string            `json:"source"`
	Format string            `json:"format"`
	Loaded bool              `json:"loaded"`
	EXIF   map[string]string `json:"exif"`
	IPTC   map[string]string `json:"iptc"`
	XMP    map[string]string `json:"xmp"`
}

// NewReport groups the fields of m.
func NewReport(m *Metadata) Report {
	return Report{
		Source: m.Source,
		Format: m.Format,
		Loaded: m.Loaded,
		EXIF:   m.Group(GroupEXIF),
		IPTC:   m.Group(GroupIPTC),
		XMP:    m.Group(GroupXMP),
	}
}

func (p *Printer) printJSON(m *Metadata) error {
	b, err := json.MarshalIndent(NewReport(m), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.Writer, string(b))
	return err
}

// PrintLine prints a plain line of text.
func (p *Printer) PrintLine(s string) {
	fmt.Fprintln(p.Writer, s)
}

// PrintError prints an error to stderr.
func PrintError(msg string) {
	fmt.Fprintln(os.Stderr, "✗ Error: "+msg)
}
