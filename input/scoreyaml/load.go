package scoreyaml

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/option"
	"github.com/npillmayer/engrave/core/parameters"
	"github.com/npillmayer/engrave/core/percent"
	"github.com/npillmayer/engrave/engine/score"
	"gopkg.in/yaml.v3"
)

// Load reads a fixture and builds a score document from it. Unknown YAML
// keys are an error. Malformed elements are skipped and reported; the
// document built from the remaining elements is returned together with the
// errors.
func Load(r io.Reader) (*score.Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var fx Fixture
	if err := dec.Decode(&fx); err != nil && err != io.EOF {
		return nil, core.WrapError(err, core.EINVALID, "cannot decode score fixture")
	}
	return Build(&fx)
}

// LoadFile reads a fixture from a file.
func LoadFile(path string) (*score.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open score fixture %s", path)
	}
	defer f.Close()
	return Load(f)
}

// Build creates a score document from a decoded fixture.
func Build(fx *Fixture) (*score.Document, error) {
	unit := dimen.Dimen(fx.Unit)
	if unit <= 0 {
		unit = parameters.NewRegisters().D(parameters.P_UNIT)
	}
	l := &loader{b: score.NewBuilder(unit)}
	type pending struct {
		measure score.NodeID
		spec    Spanning
		where   string
	}
	var spanning []pending
	for i, s := range fx.Systems {
		sys := l.b.System(dimen.Dimen(s.Y))
		l.style(sys, s.Style, fmt.Sprintf("system %d", i+1))
		for j, m := range s.Measures {
			where := fmt.Sprintf("system %d, measure %d", i+1, j+1)
			measure := l.b.Measure(sys, dimen.Dimen(m.X), dimen.Dimen(m.Width))
			for _, st := range m.Staves {
				l.staff(measure, st, where)
			}
			for _, sp := range m.Spanning {
				spanning = append(spanning, pending{measure, sp, where})
			}
		}
	}
	// anchors may be defined after the measure a spanning element is encoded in
	for _, p := range spanning {
		l.spanning(p.measure, p.spec, p.where)
	}
	tracer().Infof("loaded score fixture with %d nodes", l.b.Doc.Len())
	return l.b.Doc, l.errs.ErrorOrNil()
}

type loader struct {
	b    *score.Builder
	errs *multierror.Error
}

func (l *loader) fail(code int, where, format string, v ...interface{}) {
	err := core.Error(code, "%s: %s", where, fmt.Sprintf(format, v...))
	tracer().Errorf("%v", err)
	l.errs = multierror.Append(l.errs, err)
}

func (l *loader) identify(id score.NodeID, xmlid, where string) {
	if xmlid == "" {
		return
	}
	if l.b.Doc.ByXMLID(xmlid) != score.NoNode {
		l.fail(core.EINVALID, where, "duplicate id %q", xmlid)
		return
	}
	l.b.Doc.SetXMLID(id, xmlid)
}

// style keeps the parameter overrides of a system which parse.
func (l *loader) style(sys score.NodeID, style map[string]string, where string) {
	if len(style) == 0 {
		return
	}
	check := parameters.NewRegisters()
	valid := make(map[string]string, len(style))
	for name, value := range style {
		if err := check.PushNamed(name, value); err != nil {
			l.fail(core.EINVALID, where, "style: %s", core.UserMessage(err))
			continue
		}
		valid[name] = value
	}
	l.b.Doc.System(sys).Style = valid
}

func (l *loader) staff(measure score.NodeID, st Staff, where string) {
	where = fmt.Sprintf("%s, staff %d", where, st.N)
	var opts []score.StaffOption
	if st.Size > 0 {
		opts = append(opts, score.WithStaffSize(percent.Percent(st.Size)))
	}
	if st.Notation != "" {
		nt, ok := notations[strings.ToLower(st.Notation)]
		if !ok {
			l.fail(core.EINVALID, where, "unknown notation %q", st.Notation)
		}
		opts = append(opts, score.WithNotation(nt))
	}
	staff := l.b.Staff(measure, st.N, dimen.Dimen(st.Y), opts...)
	for _, ly := range st.Layers {
		layer := l.b.Layer(staff, ly.N)
		lwhere := fmt.Sprintf("%s, layer %d", where, ly.N)
		if ly.StemDir != "" {
			l.b.Doc.Layer(layer).StemDir = l.stemDir(ly.StemDir, lwhere)
		}
		l.elements(layer, ly.Elements, lwhere)
	}
}

func (l *loader) elements(parent score.NodeID, elements []Element, where string) {
	for i, e := range elements {
		ewhere := fmt.Sprintf("%s, element %d", where, i+1)
		switch {
		case e.Note != nil:
			l.note(parent, *e.Note, ewhere)
		case e.Chord != nil:
			l.chord(parent, *e.Chord, ewhere)
		case e.Rest != nil:
			id := l.b.Rest(parent, dimen.Dimen(e.Rest.X), e.Rest.Loc, l.duration(e.Rest.Dur, ewhere))
			l.identify(id, e.Rest.ID, ewhere)
		case e.Beam != nil:
			seg := score.BeamSegment{
				StartX: dimen.Dimen(e.Beam.StartX),
				StartY: dimen.Dimen(e.Beam.StartY),
				Slope:  e.Beam.Slope,
			}
			beam := l.b.Beam(parent, seg, l.beamPlace(e.Beam.Place, ewhere))
			l.identify(beam, e.Beam.ID, ewhere)
			l.elements(beam, e.Beam.Elements, ewhere)
		case e.BTrem != nil:
			btrem := l.b.BTrem(parent, l.stemMod(e.BTrem.Mod, ewhere))
			l.elements(btrem, e.BTrem.Elements, ewhere)
		case e.Tuplet != nil:
			l.tuplet(parent, *e.Tuplet, ewhere)
		case e.Ligature != nil:
			l.ligature(parent, *e.Ligature, ewhere)
		case e.Neume != nil:
			l.neume(parent, *e.Neume, ewhere)
		default:
			l.fail(core.EINVALID, ewhere, "empty element")
		}
	}
}

func (l *loader) noteOptions(n Note, stem *Stem, where string) []score.NoteOption {
	var opts []score.NoteOption
	if n.Dots > 0 {
		opts = append(opts, score.WithDots(n.Dots))
	}
	if n.Cue {
		opts = append(opts, score.AsCue())
	}
	if n.Grace {
		opts = append(opts, score.AsGrace())
	}
	if n.Lig != "" {
		opts = append(opts, score.WithLig(l.ligatureForm(n.Lig, where)))
	}
	return append(opts, l.stemOptions(stem, where)...)
}

func (l *loader) stemOptions(stem *Stem, where string) []score.NoteOption {
	if stem == nil {
		return nil
	}
	var opts []score.NoteOption
	if stem.None {
		return append(opts, score.WithoutStem())
	}
	if stem.Dir != "" {
		opts = append(opts, score.WithStemDir(l.stemDir(stem.Dir, where)))
	}
	if stem.Len != nil {
		opts = append(opts, score.WithStemLen(*stem.Len))
	}
	if stem.Mod != "" {
		opts = append(opts, score.WithStemMod(l.stemMod(stem.Mod, where)))
	}
	switch strings.ToLower(stem.Pos) {
	case "":
	case "left":
		opts = append(opts, score.WithStemPos(score.StemPosLeft))
	case "right":
		opts = append(opts, score.WithStemPos(score.StemPosRight))
	default:
		l.fail(core.EINVALID, where, "unknown stem position %q", stem.Pos)
	}
	if stem.Visible != nil && !*stem.Visible {
		opts = append(opts, score.WithHiddenStem())
	}
	if stem.SameAs {
		opts = append(opts, score.AsStemSameasSecondary())
	}
	return opts
}

func (l *loader) note(parent score.NodeID, n Note, where string) {
	dur := l.duration(n.Dur, where)
	id := l.b.Note(parent, dimen.Dimen(n.X), n.Loc, dur, l.noteOptions(n, n.Stem, where)...)
	l.identify(id, n.ID, where)
}

func (l *loader) chord(parent score.NodeID, c Chord, where string) {
	dur := l.duration(c.Dur, where)
	asNote := Note{Dots: c.Dots, Cue: c.Cue, Grace: c.Grace}
	chord := l.b.Chord(parent, dimen.Dimen(c.X), dur, l.noteOptions(asNote, c.Stem, where)...)
	l.identify(chord, c.ID, where)
	if len(c.Notes) == 0 {
		l.fail(core.EINVALID, where, "chord without notes")
	}
	for _, n := range c.Notes {
		var opts []score.NoteOption
		if n.Dots > 0 {
			opts = append(opts, score.WithDots(n.Dots))
		}
		id := l.b.ChordNote(chord, n.Loc, opts...)
		l.identify(id, n.ID, where)
	}
}

func (l *loader) tuplet(parent score.NodeID, t Tuplet, where string) {
	tuplet := l.b.Tuplet(parent, t.Num, t.NumBase)
	l.identify(tuplet, t.ID, where)
	visible := func(m *TupletMark) option.BoolT {
		if m.Visible == nil {
			return option.BoolNone
		}
		return option.SomeBool(*m.Visible)
	}
	if t.Bracket != nil {
		l.b.TupletBracket(tuplet, dimen.Dimen(t.Bracket.Y), visible(t.Bracket))
	}
	if t.Number != nil {
		l.b.TupletNum(tuplet, dimen.Dimen(t.Number.Y), visible(t.Number))
	}
	l.elements(tuplet, t.Elements, where)
}

func (l *loader) ligature(parent score.NodeID, lig Ligature, where string) {
	id := l.b.Ligature(parent, dimen.Dimen(lig.X), l.ligatureForm(lig.Form, where))
	l.identify(id, lig.ID, where)
	for _, n := range lig.Notes {
		l.note(id, n, where)
	}
}

func (l *loader) neume(parent score.NodeID, n Neume, where string) {
	neume := l.b.Neume(parent, dimen.Dimen(n.X))
	l.identify(neume, n.ID, where)
	for _, nc := range n.Ncs {
		pname := strings.Index("cdefgab", strings.ToLower(nc.PName))
		if len(nc.PName) != 1 || pname < 0 {
			l.fail(core.EINVALID, where, "unknown pitch name %q", nc.PName)
			continue
		}
		var opts []score.NcOption
		if nc.Tilt != "" {
			opts = append(opts, score.WithTilt(score.ParseCompass(nc.Tilt)))
		}
		switch strings.ToLower(nc.Curve) {
		case "":
		case "a":
			opts = append(opts, score.WithCurve(score.NcCurveA))
		case "c":
			opts = append(opts, score.WithCurve(score.NcCurveC))
		default:
			l.fail(core.EINVALID, where, "unknown curve %q", nc.Curve)
		}
		if nc.Ligated {
			opts = append(opts, score.AsLigated())
		}
		if nc.Liquescent {
			opts = append(opts, score.WithLiquescent())
		}
		if nc.Oriscus {
			opts = append(opts, score.WithOriscus())
		}
		if nc.Quilisma {
			opts = append(opts, score.WithQuilisma())
		}
		id := l.b.Nc(neume, pname, nc.Oct, opts...)
		l.identify(id, nc.ID, where)
	}
}

func (l *loader) anchor(xmlid, where string) score.NodeID {
	if xmlid == "" {
		return score.NoNode
	}
	id := l.b.Doc.ByXMLID(xmlid)
	if id == score.NoNode {
		l.fail(core.EMISSING, where, "unknown anchor %q", xmlid)
	}
	return id
}

func (l *loader) spanning(measure score.NodeID, sp Spanning, where string) {
	switch {
	case sp.Slur != nil || sp.Tie != nil:
		a, add := sp.Slur, l.b.Slur
		if a == nil {
			a, add = sp.Tie, l.b.Tie
		}
		var opts []score.SpanningOption
		switch strings.ToLower(a.CurveDir) {
		case "":
		case "above":
			opts = append(opts, score.WithCurveDir(score.CurveAbove))
		case "below":
			opts = append(opts, score.WithCurveDir(score.CurveBelow))
		default:
			l.fail(core.EINVALID, where, "unknown curve direction %q", a.CurveDir)
		}
		if a.Bulge != nil {
			opts = append(opts, score.WithBulge(*a.Bulge))
		}
		id := add(measure, l.anchor(a.Start, where), l.anchor(a.End, where), opts...)
		l.identify(id, a.ID, where)
	case sp.Syl != nil:
		s := sp.Syl
		var con score.Connector
		switch strings.ToLower(s.Con) {
		case "":
			con = score.ConNone
		case "d":
			con = score.ConDash
		case "u":
			con = score.ConUnderline
		default:
			l.fail(core.EINVALID, where, "unknown connector %q", s.Con)
		}
		verse := s.Verse
		if verse == 0 {
			verse = 1
		}
		id := l.b.Syl(measure, l.anchor(s.Start, where), l.anchor(s.End, where), s.Text, verse, con)
		l.identify(id, s.ID, where)
	default:
		l.fail(core.EINVALID, where, "empty spanning element")
	}
}

// --- Attribute values ------------------------------------------------------

var notations = map[string]score.NotationType{
	"cmn":            score.NotationCMN,
	"mensural":       score.NotationMensural,
	"mensural.white": score.NotationMensural,
	"mensural.black": score.NotationMensuralBlack,
	"neume":          score.NotationNeume,
}

var stemMods = map[string]score.StemModifier{
	"none":   score.StemModNoneExplicit,
	"1slash": score.StemMod1Slash,
	"2slash": score.StemMod2Slash,
	"3slash": score.StemMod3Slash,
	"4slash": score.StemMod4Slash,
	"5slash": score.StemMod5Slash,
	"6slash": score.StemMod6Slash,
	"sprech": score.StemModSprech,
	"z":      score.StemModZ,
}

func (l *loader) duration(s, where string) score.Duration {
	if s == "" {
		return score.Dur4
	}
	d, ok := score.ParseDuration(s)
	if !ok {
		l.fail(core.EINVALID, where, "unknown duration %q", s)
		return score.Dur4
	}
	return d
}

func (l *loader) stemDir(s, where string) score.StemDir {
	switch strings.ToLower(s) {
	case "up":
		return score.StemUp
	case "down":
		return score.StemDown
	}
	l.fail(core.EINVALID, where, "unknown stem direction %q", s)
	return score.StemNone
}

func (l *loader) stemMod(s, where string) score.StemModifier {
	if s == "" {
		return score.StemModNone
	}
	if mod, ok := stemMods[strings.ToLower(s)]; ok {
		return mod
	}
	l.fail(core.EINVALID, where, "unknown stem modifier %q", s)
	return score.StemModNone
}

func (l *loader) ligatureForm(s, where string) score.LigatureForm {
	switch strings.ToLower(s) {
	case "", "recta":
		return score.LigatureRecta
	case "obliqua":
		return score.LigatureObliqua
	}
	l.fail(core.EINVALID, where, "unknown ligature form %q", s)
	return score.LigatureRecta
}

func (l *loader) beamPlace(s, where string) score.BeamPlace {
	switch strings.ToLower(s) {
	case "":
		return score.BeamPlaceNone
	case "above":
		return score.BeamPlaceAbove
	case "below":
		return score.BeamPlaceBelow
	case "mixed":
		return score.BeamPlaceMixed
	}
	l.fail(core.EINVALID, where, "unknown beam place %q", s)
	return score.BeamPlaceNone
}
