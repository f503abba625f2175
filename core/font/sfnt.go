package font

import (
	"os"
	"strings"
	"sync"

	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/percent"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SMuFLFont is a parsed OpenType music font.
type SMuFLFont struct {
	Fontname string
	Filepath string     // file path, if loaded from file
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// LoadSMuFLFont loads and parses a font file.
func LoadSMuFLFont(fontfile string) (*SMuFLFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseSMuFLFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseSMuFLFont parses font data in OpenType or TrueType format.
func ParseSMuFLFont(fbytes []byte) (f *SMuFLFont, err error) {
	f = &SMuFLFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font data")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// SFNTMetrics answers glyph metric queries from an OpenType font. Glyph
// anchors are not part of the font binary; they are taken from the built-in
// table. Glyphs missing from the font have zero extent.
//
// SFNTMetrics is safe for concurrent use.
type SFNTMetrics struct {
	Units
	font   *SMuFLFont
	upem   int
	mx     sync.Mutex
	buf    sfnt.Buffer
	bounds map[Glyph]BBox
}

var _ Metrics = &SFNTMetrics{}

// NewSFNTMetrics creates a metrics provider for a parsed font.
func NewSFNTMetrics(f *SMuFLFont, u Units) *SFNTMetrics {
	upem := int(f.SFNT.UnitsPerEm())
	if upem <= 0 {
		upem = 1000
	}
	return &SFNTMetrics{
		Units:  u,
		font:   f,
		upem:   upem,
		bounds: make(map[Glyph]BBox),
	}
}

// Font returns the underlying font.
func (m *SFNTMetrics) Font() *SMuFLFont {
	return m.font
}

// bbox returns the bounding box of a glyph in staff spaces. The font's em is
// four staff spaces.
func (m *SFNTMetrics) bbox(g Glyph) BBox {
	m.mx.Lock()
	defer m.mx.Unlock()
	if box, ok := m.bounds[g]; ok {
		return box
	}
	var box BBox
	inx, err := m.font.SFNT.GlyphIndex(&m.buf, rune(g))
	if err != nil || inx == 0 {
		tracer().Debugf("font %s has no glyph %s", m.font.Fontname, g)
		m.bounds[g] = box
		return box
	}
	ppem := fixed.I(m.upem)
	r, _, err := m.font.SFNT.GlyphBounds(&m.buf, inx, ppem, xfont.HintingNone)
	if err != nil {
		tracer().Errorf("cannot get bounds of glyph %s: %v", g, err)
		m.bounds[g] = box
		return box
	}
	// sfnt coordinates point downwards
	scale := 4.0 / float64(m.upem)
	box.SW = [2]float64{fix2float(r.Min.X) * scale, -fix2float(r.Max.Y) * scale}
	box.NE = [2]float64{fix2float(r.Max.X) * scale, -fix2float(r.Min.Y) * scale}
	m.bounds[g] = box
	return box
}

func fix2float(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

func (m *SFNTMetrics) GlyphWidth(g Glyph, staffSize percent.Percent, cue bool) dimen.Dimen {
	box := m.bbox(g)
	return m.spaces(box.NE[0]-box.SW[0], staffSize, cue)
}

func (m *SFNTMetrics) GlyphHeight(g Glyph, staffSize percent.Percent, cue bool) dimen.Dimen {
	box := m.bbox(g)
	return m.spaces(box.NE[1]-box.SW[1], staffSize, cue)
}

func (m *SFNTMetrics) GlyphTop(g Glyph, staffSize percent.Percent, cue bool) dimen.Dimen {
	return m.spaces(m.bbox(g).NE[1], staffSize, cue)
}

func (m *SFNTMetrics) GlyphBottom(g Glyph, staffSize percent.Percent, cue bool) dimen.Dimen {
	return m.spaces(m.bbox(g).SW[1], staffSize, cue)
}

func (m *SFNTMetrics) GlyphAnchor(g Glyph, a Anchor, staffSize percent.Percent, cue bool) (dimen.Point, bool) {
	return anchor(m.Units, g, a, staffSize, cue)
}

// --- Font Registry ---------------------------------------------------------

// Registry caches metrics providers by normalized font name.
type Registry struct {
	sync.Mutex
	metrics map[string]Metrics
}

var globalRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry returns the application-wide font registry.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{metrics: make(map[string]Metrics)}
}

// Store registers a metrics provider under a font name.
func (fr *Registry) Store(name string, m Metrics) {
	if m == nil {
		tracer().Errorf("registry cannot store null metrics")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	fname := NormalizeFontname(name)
	tracer().Debugf("registry stores font %s as %s", name, fname)
	fr.metrics[fname] = m
}

// Metrics returns the provider for a font name. If the registry does not
// know the font, the built-in table is returned together with an error.
func (fr *Registry) Metrics(name string, u Units) (Metrics, error) {
	fname := NormalizeFontname(name)
	fr.Lock()
	defer fr.Unlock()
	if m, ok := fr.metrics[fname]; ok {
		return m, nil
	}
	tracer().Infof("registry does not contain font %s, using built-in metrics", name)
	return NewStaticMetrics(u), core.Error(core.EMISSING, "font %s not found in registry", name)
}

// NormalizeFontname strips a font name of path suffix, blanks and case.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	return strings.ToLower(fname)
}
