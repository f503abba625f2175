package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/engrave/backend/gfx"
	"github.com/npillmayer/engrave/backend/gfx/ggraster"
	"github.com/npillmayer/engrave/backend/gfx/shaping"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/font"
	"github.com/npillmayer/engrave/core/parameters"
	"github.com/npillmayer/engrave/engine/score"
	"github.com/npillmayer/engrave/engine/view"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/image/font/gofont/goregular"
)

type renderOpts struct {
	outDir string
	scale  float64
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{}
	cmd := &cobra.Command{
		Use:   "render <fixture>",
		Short: "Draw every system of a score fixture into a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, params, metrics, err := laidOut(args[0])
			if err != nil {
				return err
			}
			files, err := render(doc, params, metrics, opts)
			for _, f := range files {
				pterm.Info.Printfln("wrote %s", f)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "output directory")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "pixels per drawing pixel")
	return cmd
}

// margin around the staves of a system, in drawing units.
const margin = 100 * dimen.PX

// render draws each system into its own PNG file and returns the file names.
func render(doc *score.Document, params *parameters.Registers, metrics font.Metrics,
	opts renderOpts) ([]string, error) {
	//
	var files []string
	measurer := lyricMeasurer()
	for i, system := range doc.Systems() {
		top, bottom, right := systemBounds(doc, system, metrics)
		origin := dimen.P(0, top+margin)
		w := int((right + margin).Pixels() * opts.scale)
		h := int((top - bottom + 2*margin).Pixels() * opts.scale)
		dev := ggraster.New(w, h, origin, ggraster.WithScale(opts.scale),
			ggraster.WithTextMeasurer(measurer))
		drawStaves(doc, system, metrics, dev)
		v := view.New(doc, metrics, params, dev)
		reportAdvisories(fmt.Sprintf("system %d", i+1), v.DrawSystem(system))
		name := filepath.Join(opts.outDir, fmt.Sprintf("system-%02d.png", i+1))
		err := writePNG(dev, name)
		dev.Close()
		if err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}

// lyricMeasurer shapes syllables in Go Regular, falling back to the
// cell-based estimate if the font cannot be parsed.
func lyricMeasurer() gfx.TextMeasurer {
	s, err := shaping.NewShaper(goregular.TTF, shaping.DefaultEm)
	if err != nil {
		tracer().Errorf("lyric font: %v", err)
		return gfx.DefaultTextEstimator
	}
	return s
}

func writePNG(dev *ggraster.Device, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = dev.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// systemBounds returns the vertical extent of the staves of a system,
// including room for two verses of lyrics, and the right end of its last
// measure.
func systemBounds(doc *score.Document, system score.NodeID, metrics font.Metrics) (top, bottom, right dimen.Dimen) {
	top = doc.DrawingY(system)
	bottom = top
	for _, staff := range doc.FindAllDescendants(system, score.KindStaff) {
		size := doc.Staff(staff).Size
		y := doc.DrawingY(staff)
		top = dimen.Max(top, y)
		bottom = dimen.Min(bottom, y-2*metrics.StaffSize(size))
	}
	if last := doc.LastChild(system, score.KindMeasure); last != score.NoNode {
		right = doc.DrawingX(last) + doc.Measure(last).RightBarline
	}
	return
}

// drawStaves draws staff lines, noteheads and stems as context for the
// spanning elements.
func drawStaves(doc *score.Document, system score.NodeID, metrics font.Metrics, dev *ggraster.Device) {
	for _, measure := range doc.FindAllDescendants(system, score.KindMeasure) {
		x1 := doc.DrawingX(measure)
		x2 := x1 + doc.Measure(measure).RightBarline
		for _, staff := range doc.FindAllDescendants(measure, score.KindStaff) {
			size := doc.Staff(staff).Size
			line := metrics.BarlineWidth(size)
			y := doc.DrawingY(staff)
			for i := dimen.Dimen(0); i < 5; i++ {
				ly := y - i*metrics.DoubleUnit(size)
				dev.DrawFullRectangle(x1, ly, x2, ly-line)
			}
			dev.DrawFullRectangle(x2-line, y, x2, y-metrics.StaffSize(size))
		}
	}
	for _, note := range doc.FindAllDescendants(system, score.KindNote) {
		size := doc.Staff(doc.FirstAncestor(note, score.KindStaff)).Size
		unit := metrics.DrawingUnit(size)
		if doc.IsCue(note) {
			unit = metrics.CueSize(unit)
		}
		x, y := doc.DrawingX(note), doc.DrawingY(note)
		dev.FillEllipse(dimen.P(x+unit*13/10, y), unit*13/10, unit)
	}
	for _, stem := range doc.FindAllDescendants(system, score.KindStem) {
		s := doc.Stem(stem)
		if s.DrawingLen == 0 || s.Visible.IsFalse() {
			continue
		}
		size := doc.Staff(doc.FirstAncestor(stem, score.KindStaff)).Size
		x, y := doc.DrawingX(stem), doc.DrawingY(stem)
		dev.DrawFullRectangle(x, y, x+metrics.StemWidth(size), y-s.DrawingLen)
	}
}
