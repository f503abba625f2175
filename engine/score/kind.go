package score

import "fmt"

// Kind is the type tag of a node.
type Kind uint8

// Node kinds. The set is closed; layout passes dispatch over it.
const (
	KindNone Kind = iota
	KindDoc
	KindPage
	KindSystem
	KindMeasure
	KindStaff
	KindLayer
	KindNote
	KindChord
	KindRest
	KindBeam
	KindBTrem
	KindTuplet
	KindTupletBracket
	KindTupletNum
	KindStem
	KindFlag
	KindDots
	KindLigature
	KindNeume
	KindNc
	KindLiquescent
	KindOriscus
	KindQuilisma
	KindSlur
	KindTie
	KindSyl
	kindCount
)

var kindNames = [...]string{
	"none", "doc", "page", "system", "measure", "staff", "layer", "note",
	"chord", "rest", "beam", "bTrem", "tuplet", "bracket", "num", "stem",
	"flag", "dots", "ligature", "neume", "nc", "liquescent", "oriscus",
	"quilisma", "slur", "tie", "syl",
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsLayerElement is true for kinds which may appear as content of a layer.
func (k Kind) IsLayerElement() bool {
	return k >= KindNote && k <= KindQuilisma
}

// IsSpanning is true for slurs, ties and syllables.
func (k Kind) IsSpanning() bool {
	return k == KindSlur || k == KindTie || k == KindSyl
}

// KindFromString returns the kind for a kind name, or KindNone.
func KindFromString(s string) Kind {
	for k := KindDoc; k < kindCount; k++ {
		if kindNames[k] == s {
			return k
		}
	}
	return KindNone
}
