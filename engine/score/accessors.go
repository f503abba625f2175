package score

func payload[T any](doc *Document, id NodeID, k Kind) *T {
	n := doc.Node(id)
	if n == nil || n.Kind != k {
		return nil
	}
	p, _ := n.Payload.(*T)
	return p
}

// Typed payload accessors return nil if the node is not of the requested kind.

func (doc *Document) System(id NodeID) *System   { return payload[System](doc, id, KindSystem) }
func (doc *Document) Measure(id NodeID) *Measure { return payload[Measure](doc, id, KindMeasure) }
func (doc *Document) Staff(id NodeID) *Staff     { return payload[Staff](doc, id, KindStaff) }
func (doc *Document) Layer(id NodeID) *Layer     { return payload[Layer](doc, id, KindLayer) }
func (doc *Document) Note(id NodeID) *Note       { return payload[Note](doc, id, KindNote) }
func (doc *Document) Chord(id NodeID) *Chord     { return payload[Chord](doc, id, KindChord) }
func (doc *Document) Rest(id NodeID) *Rest       { return payload[Rest](doc, id, KindRest) }
func (doc *Document) Beam(id NodeID) *Beam       { return payload[Beam](doc, id, KindBeam) }
func (doc *Document) BTrem(id NodeID) *BTrem     { return payload[BTrem](doc, id, KindBTrem) }
func (doc *Document) Tuplet(id NodeID) *Tuplet   { return payload[Tuplet](doc, id, KindTuplet) }
func (doc *Document) Stem(id NodeID) *Stem       { return payload[Stem](doc, id, KindStem) }
func (doc *Document) Flag(id NodeID) *Flag       { return payload[Flag](doc, id, KindFlag) }
func (doc *Document) Dots(id NodeID) *Dots       { return payload[Dots](doc, id, KindDots) }
func (doc *Document) Neume(id NodeID) *Neume     { return payload[Neume](doc, id, KindNeume) }
func (doc *Document) Nc(id NodeID) *Nc           { return payload[Nc](doc, id, KindNc) }
func (doc *Document) Syl(id NodeID) *Syl         { return payload[Syl](doc, id, KindSyl) }

func (doc *Document) Ligature(id NodeID) *Ligature {
	return payload[Ligature](doc, id, KindLigature)
}

func (doc *Document) TupletBracket(id NodeID) *TupletBracket {
	return payload[TupletBracket](doc, id, KindTupletBracket)
}

func (doc *Document) TupletNum(id NodeID) *TupletNum {
	return payload[TupletNum](doc, id, KindTupletNum)
}

// Spanning returns the spanning attributes of a slur, tie or syllable.
func (doc *Document) Spanning(id NodeID) *Spanning {
	switch doc.Kind(id) {
	case KindSlur, KindTie:
		return payload[Spanning](doc, id, doc.Kind(id))
	case KindSyl:
		if syl := doc.Syl(id); syl != nil {
			return &syl.Spanning
		}
	}
	return nil
}

// Duration returns the duration of a note, chord or rest.
func (doc *Document) Duration(id NodeID) (Duration, bool) {
	switch doc.Kind(id) {
	case KindNote:
		return doc.Note(id).Dur, true
	case KindChord:
		return doc.Chord(id).Dur, true
	case KindRest:
		return doc.Rest(id).Dur, true
	}
	return Dur4, false
}

// IsCue is true for cue-sized or grace notes, chords and rests.
func (doc *Document) IsCue(id NodeID) bool {
	switch doc.Kind(id) {
	case KindNote:
		n := doc.Note(id)
		return n.Cue || n.Grace
	case KindChord:
		c := doc.Chord(id)
		return c.Cue || c.Grace
	case KindRest:
		return doc.Rest(id).Cue
	}
	return false
}
