/*
Package scoredebug writes score trees in Graphviz DOT format.

Owned parent-child edges are drawn solid, the non-owning references of
slurs, ties and syllables to their anchors are drawn dashed.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scoredebug

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/engrave/engine/score"
	"github.com/npillmayer/schuko/tracing"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
	cnt      int
}

// MaxNodes limits the number of nodes written, guarding against cycles in
// malformed trees.
const MaxNodes = 4096

// ToGraphViz creates a graphical representation of a score tree.
// It produces a DOT file format suitable as input for Graphviz, given a Writer.
func ToGraphViz(doc *score.Document, w io.Writer, tracer tracing.Trace) error {
	header, err := template.New("scoreTree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("node").Funcs(
		template.FuncMap{
			"label": label,
			"fill":  fill,
		}).Parse(nodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	if err = header.Execute(w, gparams); err != nil {
		return err
	}
	var refs []cedge
	if err = nodes(doc, doc.Root(), w, &gparams, &refs, tracer); err != nil {
		return err
	}
	for _, e := range refs {
		if err = gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

func nodes(doc *score.Document, id score.NodeID, w io.Writer, gparams *graphParamsType,
	refs *[]cedge, tracer tracing.Trace) error {
	//
	gparams.cnt++
	if gparams.cnt > MaxNodes {
		return nil
	}
	n := doc.Node(id)
	if err := gparams.NodeTmpl.Execute(w, &cnode{Doc: doc, N: n}); err != nil {
		return err
	}
	tracer.Debugf("node = %v", n)
	if sp := doc.Spanning(id); sp != nil {
		for _, anchor := range []score.NodeID{sp.Start, sp.End} {
			if anchor != score.NoNode {
				*refs = append(*refs, cedge{From: name(id), To: name(anchor), Style: "dashed"})
			}
		}
	}
	for _, ch := range doc.Children(id) {
		if err := nodes(doc, ch, w, gparams, refs, tracer); err != nil {
			return err
		}
		e := cedge{From: name(id), To: name(ch), Style: "solid"}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

func name(id score.NodeID) string {
	return fmt.Sprintf("node%05d", id)
}

// Helper structs
type cnode struct {
	Doc *score.Document
	N   *score.Node
}

func (c *cnode) Name() string {
	return name(c.N.ID)
}

type cedge struct {
	From, To string
	Style    string
}

// ---------------------------------------------------------------------------

func label(c *cnode) string {
	doc, n := c.Doc, c.N
	s := n.Kind.String()
	switch n.Kind {
	case score.KindNote:
		note := doc.Note(n.ID)
		s += fmt.Sprintf(" %s loc=%d", note.Dur, note.Loc)
	case score.KindStem:
		stem := doc.Stem(n.ID)
		s += fmt.Sprintf(" %s len=%d", stem.DrawingDir, stem.DrawingLen)
	case score.KindSyl:
		s += " " + shortText(doc.Syl(n.ID).Text)
	case score.KindLigature:
		s += fmt.Sprintf(" %v", doc.Ligature(n.ID).Shapes)
	}
	if n.Kind > score.KindPage {
		s += fmt.Sprintf("\n(%d,%d)", doc.DrawingX(n.ID), doc.DrawingY(n.ID))
	}
	return fmt.Sprintf("%q", s)
}

func shortText(txt string) string {
	if len([]rune(txt)) > 10 {
		txt = string([]rune(txt)[:10]) + "…"
	}
	return strings.Replace(txt, " ", "␣", -1)
}

func fill(c *cnode) string {
	switch {
	case c.N.Kind <= score.KindLayer:
		return "lightblue3"
	case c.N.Kind.IsSpanning():
		return "grey95"
	}
	return "white"
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=12] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`

const nodeTmpl = `{{ .Name }}	[ label={{ label . }} shape=box style=filled fillcolor={{ fill . }} ] ;
`

const edgeTmpl = `{{ .From }} -> {{ .To }} [style={{ .Style }} weight=1] ;
`
