package score

import (
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/option"
	"github.com/npillmayer/engrave/core/percent"
)

// Builder constructs score trees. It is used by input readers and tests.
//
// Vertical positions of notes are derived from their staff position (loc),
// horizontal positions are given explicitly, as horizontal alignment is
// performed upstream.
type Builder struct {
	Doc  *Document
	unit dimen.Dimen // drawing unit at 100% staff size
	page NodeID
}

// NewBuilder creates a builder for a new document.
func NewBuilder(unit dimen.Dimen) *Builder {
	return &Builder{Doc: NewDocument(), unit: unit, page: NoNode}
}

// NewStem creates a stem payload without authored attributes.
func NewStem() *Stem {
	return &Stem{Len: option.Int()}
}

// NewSpanning creates spanning attributes for two anchors.
func NewSpanning(start, end NodeID) Spanning {
	return Spanning{Start: start, End: end, Bulge: option.Int()}
}

// Page starts a new page.
func (b *Builder) Page() NodeID {
	b.page = b.Doc.Add(b.Doc.Root(), KindPage, nil)
	return b.page
}

// System adds a system to the current page, with its top at y.
func (b *Builder) System(y dimen.Dimen) NodeID {
	if b.page == NoNode {
		b.Page()
	}
	sys := b.Doc.Add(b.page, KindSystem, &System{})
	b.Doc.Node(sys).YRel = y
	return sys
}

// Measure adds a measure to a system.
func (b *Builder) Measure(system NodeID, x, width dimen.Dimen) NodeID {
	m := b.Doc.Add(system, KindMeasure, &Measure{
		N:            len(b.Doc.FindAllDescendants(b.Doc.Root(), KindMeasure)) + 1,
		RightBarline: width,
	})
	b.Doc.Node(m).XRel = x
	return m
}

// StaffOption configures a staff.
type StaffOption func(*Staff)

// WithStaffSize sets the staff size.
func WithStaffSize(size percent.Percent) StaffOption {
	return func(s *Staff) { s.Size = size }
}

// WithNotation sets the notation type of a staff.
func WithNotation(nt NotationType) StaffOption {
	return func(s *Staff) { s.Notation = nt }
}

// Staff adds staff n to a measure, with its top line at y relative to the
// system.
func (b *Builder) Staff(measure NodeID, n int, y dimen.Dimen, opts ...StaffOption) NodeID {
	s := &Staff{N: n, Size: percent.Full}
	for _, opt := range opts {
		opt(s)
	}
	st := b.Doc.Add(measure, KindStaff, s)
	b.Doc.Node(st).YRel = y
	return st
}

// Layer adds layer n to a staff.
func (b *Builder) Layer(staff NodeID, n int) NodeID {
	return b.Doc.Add(staff, KindLayer, &Layer{N: n})
}

// --- Notes -----------------------------------------------------------------

type noteSpec struct {
	note   Note
	stem   *Stem
	noStem bool
}

// NoteOption configures a note or chord.
type NoteOption func(*noteSpec)

// WithDots sets the number of augmentation dots.
func WithDots(n int) NoteOption {
	return func(s *noteSpec) { s.note.Dots = n }
}

// AsCue makes a note cue-sized.
func AsCue() NoteOption {
	return func(s *noteSpec) { s.note.Cue = true }
}

// AsGrace makes a note a grace note.
func AsGrace() NoteOption {
	return func(s *noteSpec) { s.note.Grace = true }
}

// WithLig sets the ligature form starting at a note.
func WithLig(form LigatureForm) NoteOption {
	return func(s *noteSpec) { s.note.Lig = form }
}

// WithStemDir sets the authored stem direction.
func WithStemDir(dir StemDir) NoteOption {
	return func(s *noteSpec) { s.stem.Dir = dir }
}

// WithStemLen sets the authored stem length in drawing units.
func WithStemLen(n int) NoteOption {
	return func(s *noteSpec) { s.stem.Len = option.SomeInt(n) }
}

// WithStemMod sets the authored stem modifier.
func WithStemMod(mod StemModifier) NoteOption {
	return func(s *noteSpec) { s.stem.Mod = mod }
}

// WithStemPos sets the authored stem position.
func WithStemPos(pos StemPos) NoteOption {
	return func(s *noteSpec) { s.stem.Pos = pos }
}

// WithHiddenStem marks the stem as invisible.
func WithHiddenStem() NoteOption {
	return func(s *noteSpec) { s.stem.Visible = option.False }
}

// WithoutStem suppresses the stem.
func WithoutStem() NoteOption {
	return func(s *noteSpec) { s.noStem = true }
}

// AsStemSameasSecondary marks a note as sharing the stem of another note.
func AsStemSameasSecondary() NoteOption {
	return func(s *noteSpec) { s.note.StemSameasSecondary = true }
}

func (b *Builder) staffUnit(parent NodeID) dimen.Dimen {
	staff := parent
	if !b.Doc.Is(staff, KindStaff) {
		staff = b.Doc.FirstAncestor(parent, KindStaff)
	}
	if s := b.Doc.Staff(staff); s != nil {
		return s.Size.Scale(b.unit)
	}
	return b.unit
}

// PitchFromLoc returns pitch name and octave for a staff position on a
// treble clef staff.
func PitchFromLoc(loc int) (pname, oct int) {
	d := 4*7 + 2 + loc // e4 on the bottom line
	pname, oct = d%7, d/7
	if pname < 0 {
		pname += 7
		oct--
	}
	return
}

func ledgerLines(loc int) (above, below int) {
	if loc >= 10 {
		above = (loc - 8) / 2
	}
	if loc <= -2 {
		below = -loc / 2
	}
	return
}

// Note adds a note at staff position loc. Unless suppressed, notes outside
// of chords and ligatures get a stem, and a flag for durations shorter than
// a quarter.
func (b *Builder) Note(parent NodeID, x dimen.Dimen, loc int, dur Duration, opts ...NoteOption) NodeID {
	spec := noteSpec{stem: NewStem()}
	for _, opt := range opts {
		opt(&spec)
	}
	note := spec.note
	note.Loc, note.Dur = loc, dur
	note.PName, note.Oct = PitchFromLoc(loc)
	note.LedgerAbove, note.LedgerBelow = ledgerLines(loc)
	id := b.Doc.Add(parent, KindNote, &note)
	n := b.Doc.Node(id)
	n.XRel = x
	n.YRel = dimen.Dimen(loc-8) * b.staffUnit(parent)
	if b.Doc.Is(parent, KindChord) {
		n.YRel -= b.Doc.Node(parent).YRel
		return id
	}
	if !spec.noStem && !b.Doc.Is(parent, KindLigature) {
		b.addStem(id, spec.stem, dur)
	}
	if note.Dots > 0 {
		b.Doc.Add(id, KindDots, &Dots{N: note.Dots})
	}
	return id
}

func (b *Builder) addStem(parent NodeID, stem *Stem, dur Duration) NodeID {
	st := b.Doc.Add(parent, KindStem, stem)
	if dur > Dur4 {
		b.Doc.Add(st, KindFlag, &Flag{})
	}
	return st
}

// Chord adds a chord with a stem. Notes are added with ChordNote.
func (b *Builder) Chord(parent NodeID, x dimen.Dimen, dur Duration, opts ...NoteOption) NodeID {
	spec := noteSpec{stem: NewStem()}
	for _, opt := range opts {
		opt(&spec)
	}
	id := b.Doc.Add(parent, KindChord, &Chord{
		Dur:   dur,
		Dots:  spec.note.Dots,
		Cue:   spec.note.Cue,
		Grace: spec.note.Grace,
	})
	b.Doc.Node(id).XRel = x
	if !spec.noStem {
		b.addStem(id, spec.stem, dur)
	}
	if spec.note.Dots > 0 {
		b.Doc.Add(id, KindDots, &Dots{N: spec.note.Dots})
	}
	return id
}

// ChordNote adds a note to a chord.
func (b *Builder) ChordNote(chord NodeID, loc int, opts ...NoteOption) NodeID {
	c := b.Doc.Chord(chord)
	if c == nil {
		panic("score: ChordNote requires a chord")
	}
	opts = append([]NoteOption{func(s *noteSpec) {
		s.note.Cue, s.note.Grace = c.Cue, c.Grace
	}}, opts...)
	return b.Note(chord, 0, loc, c.Dur, opts...)
}

// Rest adds a rest.
func (b *Builder) Rest(parent NodeID, x dimen.Dimen, loc int, dur Duration) NodeID {
	id := b.Doc.Add(parent, KindRest, &Rest{Dur: dur, Loc: loc})
	n := b.Doc.Node(id)
	n.XRel = x
	n.YRel = dimen.Dimen(loc-8) * b.staffUnit(parent)
	return id
}

// --- Containers ------------------------------------------------------------

// Beam adds a beam with precomputed geometry.
func (b *Builder) Beam(parent NodeID, seg BeamSegment, place BeamPlace) NodeID {
	return b.Doc.Add(parent, KindBeam, &Beam{Segment: seg, Place: place})
}

// BTrem adds a bowed tremolo.
func (b *Builder) BTrem(parent NodeID, mod StemModifier) NodeID {
	return b.Doc.Add(parent, KindBTrem, &BTrem{Mod: mod})
}

// Tuplet adds a tuplet.
func (b *Builder) Tuplet(parent NodeID, num, numBase int) NodeID {
	return b.Doc.Add(parent, KindTuplet, &Tuplet{
		Num:                num,
		NumBase:            numBase,
		DrawingLeft:        NoNode,
		DrawingRight:       NoNode,
		BracketAlignedBeam: NoNode,
		NumAlignedBeam:     NoNode,
	})
}

// TupletBracket adds a bracket to a tuplet, at y relative to its staff.
func (b *Builder) TupletBracket(tuplet NodeID, y dimen.Dimen, visible option.BoolT) NodeID {
	id := b.Doc.Add(tuplet, KindTupletBracket, &TupletBracket{Visible: visible, alignedNum: NoNode})
	b.Doc.Node(id).YRel = y
	return id
}

// TupletNum adds a number to a tuplet, at y relative to its staff.
func (b *Builder) TupletNum(tuplet NodeID, y dimen.Dimen, visible option.BoolT) NodeID {
	id := b.Doc.Add(tuplet, KindTupletNum, &TupletNum{Visible: visible, alignedBracket: NoNode})
	b.Doc.Node(id).YRel = y
	return id
}

// Ligature adds a mensural ligature. Notes are added with Note.
func (b *Builder) Ligature(parent NodeID, x dimen.Dimen, form LigatureForm) NodeID {
	id := b.Doc.Add(parent, KindLigature, &Ligature{Form: form})
	b.Doc.Node(id).XRel = x
	return id
}

// Neume adds a neume. Components are added with Nc.
func (b *Builder) Neume(parent NodeID, x dimen.Dimen) NodeID {
	id := b.Doc.Add(parent, KindNeume, &Neume{})
	b.Doc.Node(id).XRel = x
	return id
}

type ncSpec struct {
	nc      Nc
	markers []Kind
}

// NcOption configures a neume component.
type NcOption func(*ncSpec)

// WithTilt sets the tilt of a neume component.
func WithTilt(c Compass) NcOption {
	return func(s *ncSpec) { s.nc.Tilt = c }
}

// WithCurve sets the curvature of a neume component.
func WithCurve(c NcCurve) NcOption {
	return func(s *ncSpec) { s.nc.Curve = c }
}

// AsLigated marks a neume component as part of a ligature.
func AsLigated() NcOption {
	return func(s *ncSpec) { s.nc.Ligated = option.True }
}

// WithLiquescent adds a liquescent marker.
func WithLiquescent() NcOption {
	return func(s *ncSpec) { s.markers = append(s.markers, KindLiquescent) }
}

// WithOriscus adds an oriscus marker.
func WithOriscus() NcOption {
	return func(s *ncSpec) { s.markers = append(s.markers, KindOriscus) }
}

// WithQuilisma adds a quilisma marker.
func WithQuilisma() NcOption {
	return func(s *ncSpec) { s.markers = append(s.markers, KindQuilisma) }
}

// Nc adds a neume component with a given pitch.
func (b *Builder) Nc(neume NodeID, pname, oct int, opts ...NcOption) NodeID {
	spec := ncSpec{}
	for _, opt := range opts {
		opt(&spec)
	}
	nc := spec.nc
	nc.PName, nc.Oct = pname, oct
	id := b.Doc.Add(neume, KindNc, &nc)
	for _, k := range spec.markers {
		b.Doc.Add(id, k, nil)
	}
	return id
}

// --- Spanning elements -----------------------------------------------------

// SpanningOption configures a slur, tie or syllable.
type SpanningOption func(*Spanning)

// WithCurveDir sets the authored curve direction.
func WithCurveDir(d CurveDir) SpanningOption {
	return func(s *Spanning) { s.CurveDir = d }
}

// WithBulge sets the authored curve height in drawing units.
func WithBulge(n int) SpanningOption {
	return func(s *Spanning) { s.Bulge = option.SomeInt(n) }
}

func (b *Builder) spanning(start, end NodeID, opts []SpanningOption) Spanning {
	sp := NewSpanning(start, end)
	for _, opt := range opts {
		opt(&sp)
	}
	return sp
}

// Slur adds a slur to the measure it is encoded in.
func (b *Builder) Slur(measure, start, end NodeID, opts ...SpanningOption) NodeID {
	sp := b.spanning(start, end, opts)
	return b.Doc.Add(measure, KindSlur, &sp)
}

// Tie adds a tie to the measure it is encoded in.
func (b *Builder) Tie(measure, start, end NodeID, opts ...SpanningOption) NodeID {
	sp := b.spanning(start, end, opts)
	return b.Doc.Add(measure, KindTie, &sp)
}

// Syl adds a lyric syllable with a connector reaching from start to end.
func (b *Builder) Syl(measure, start, end NodeID, text string, verse int, con Connector) NodeID {
	return b.Doc.Add(measure, KindSyl, &Syl{
		Spanning: b.spanning(start, end, nil),
		Text:     text,
		Verse:    verse,
		Con:      con,
	})
}
