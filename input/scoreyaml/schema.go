package scoreyaml

// Fixture is the top-level structure of a score fixture.
type Fixture struct {
	Unit    int      `yaml:"unit"` // drawing unit at 100% staff size, default from parameters
	Systems []System `yaml:"systems"`
}

// System is a line of music.
type System struct {
	Y        int               `yaml:"y"`
	Style    map[string]string `yaml:"style"`
	Measures []Measure         `yaml:"measures"`
}

// Measure holds staves and the spanning elements encoded in it.
type Measure struct {
	X        int        `yaml:"x"`
	Width    int        `yaml:"width"`
	Staves   []Staff    `yaml:"staves"`
	Spanning []Spanning `yaml:"spanning"`
}

// Staff is a staff within a measure.
type Staff struct {
	N        int     `yaml:"n"`
	Y        int     `yaml:"y"`
	Size     int     `yaml:"size"`     // percent, default 100
	Notation string  `yaml:"notation"` // cmn, mensural, mensural.black or neume
	Layers   []Layer `yaml:"layers"`
}

// Layer is a voice within a staff.
type Layer struct {
	N        int       `yaml:"n"`
	StemDir  string    `yaml:"stemdir"`
	Elements []Element `yaml:"elements"`
}

// Element is a layer element. Exactly one field must be set.
type Element struct {
	Note     *Note     `yaml:"note"`
	Chord    *Chord    `yaml:"chord"`
	Rest     *Rest     `yaml:"rest"`
	Beam     *Beam     `yaml:"beam"`
	BTrem    *BTrem    `yaml:"btrem"`
	Tuplet   *Tuplet   `yaml:"tuplet"`
	Ligature *Ligature `yaml:"ligature"`
	Neume    *Neume    `yaml:"neume"`
}

// Stem holds authored stem attributes.
type Stem struct {
	Dir     string `yaml:"dir"`
	Len     *int   `yaml:"len"`
	Mod     string `yaml:"mod"`
	Pos     string `yaml:"pos"`
	Visible *bool  `yaml:"visible"`
	SameAs  bool   `yaml:"sameas"` // stem shared with a secondary note
	None    bool   `yaml:"none"`   // no stem element at all
}

// Note is a note or a chord tone.
type Note struct {
	ID    string `yaml:"id"`
	X     int    `yaml:"x"`
	Loc   int    `yaml:"loc"`
	Dur   string `yaml:"dur"`
	Dots  int    `yaml:"dots"`
	Cue   bool   `yaml:"cue"`
	Grace bool   `yaml:"grace"`
	Lig   string `yaml:"lig"`
	Stem  *Stem  `yaml:"stem"`
}

// Chord is a chord with its notes.
type Chord struct {
	ID    string `yaml:"id"`
	X     int    `yaml:"x"`
	Dur   string `yaml:"dur"`
	Dots  int    `yaml:"dots"`
	Cue   bool   `yaml:"cue"`
	Grace bool   `yaml:"grace"`
	Stem  *Stem  `yaml:"stem"`
	Notes []Note `yaml:"notes"`
}

// Rest is a rest.
type Rest struct {
	ID  string `yaml:"id"`
	X   int    `yaml:"x"`
	Loc int    `yaml:"loc"`
	Dur string `yaml:"dur"`
}

// Beam is a beam with the geometry of its first segment.
type Beam struct {
	ID       string    `yaml:"id"`
	StartX   int       `yaml:"startx"`
	StartY   int       `yaml:"starty"`
	Slope    float64   `yaml:"slope"`
	Place    string    `yaml:"place"` // above, below or mixed
	Elements []Element `yaml:"elements"`
}

// BTrem is a bowed tremolo around a single note or chord.
type BTrem struct {
	Mod      string    `yaml:"mod"`
	Elements []Element `yaml:"elements"`
}

// TupletMark is the bracket or number of a tuplet.
type TupletMark struct {
	Y       int   `yaml:"y"`
	Visible *bool `yaml:"visible"`
}

// Tuplet is a tuplet with optional bracket and number.
type Tuplet struct {
	ID       string      `yaml:"id"`
	Num      int         `yaml:"num"`
	NumBase  int         `yaml:"numbase"`
	Bracket  *TupletMark `yaml:"bracket"`
	Number   *TupletMark `yaml:"number"`
	Elements []Element   `yaml:"elements"`
}

// Ligature is a mensural ligature.
type Ligature struct {
	ID    string `yaml:"id"`
	X     int    `yaml:"x"`
	Form  string `yaml:"form"` // recta or obliqua
	Notes []Note `yaml:"notes"`
}

// Nc is a neume component.
type Nc struct {
	ID         string `yaml:"id"`
	PName      string `yaml:"pname"`
	Oct        int    `yaml:"oct"`
	Tilt       string `yaml:"tilt"`
	Curve      string `yaml:"curve"`
	Ligated    bool   `yaml:"ligated"`
	Liquescent bool   `yaml:"liquescent"`
	Oriscus    bool   `yaml:"oriscus"`
	Quilisma   bool   `yaml:"quilisma"`
}

// Neume is a neume with its components.
type Neume struct {
	ID  string `yaml:"id"`
	X   int    `yaml:"x"`
	Ncs []Nc   `yaml:"ncs"`
}

// Anchors holds the attributes of slurs and ties.
type Anchors struct {
	ID       string `yaml:"id"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	CurveDir string `yaml:"curvedir"` // above or below
	Bulge    *int   `yaml:"bulge"`
}

// Syl is a lyric syllable with its connector.
type Syl struct {
	ID    string `yaml:"id"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Text  string `yaml:"text"`
	Verse int    `yaml:"verse"`
	Con   string `yaml:"con"` // d for dashes, u for an underline
}

// Spanning is a spanning element. Exactly one field must be set.
type Spanning struct {
	Slur *Anchors `yaml:"slur"`
	Tie  *Anchors `yaml:"tie"`
	Syl  *Syl     `yaml:"syl"`
}
