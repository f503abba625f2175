package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/engine/score"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout <fixture>",
		Short: "Run the layout passes on a score fixture and list the stems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, _, err := laidOut(args[0])
			if err != nil {
				return err
			}
			return stemTable(doc).Render()
		},
	}
}

// stemTable lists every stem with its derived direction and length.
func stemTable(doc *score.Document) *pterm.TablePrinter {
	data := pterm.TableData{{"element", "x", "y", "dir", "len", "flags"}}
	for _, stem := range doc.FindAllDescendants(doc.Root(), score.KindStem) {
		parent := doc.Parent(stem)
		s := doc.Stem(stem)
		flags := 0
		if f := doc.Flag(doc.FirstChild(stem, score.KindFlag)); f != nil {
			flags = f.Count
		}
		data = append(data, []string{
			doc.Node(parent).XMLID,
			fmt.Sprint(doc.DrawingX(parent)),
			fmt.Sprint(doc.DrawingY(parent)),
			s.DrawingDir.String(),
			fmt.Sprint(s.DrawingLen),
			fmt.Sprint(flags),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data)
}

// reportAdvisories prints the advisories of a pipeline stage.
func reportAdvisories(stage string, err error) {
	if err == nil {
		pterm.Success.Printfln("%s: no advisories", stage)
		return
	}
	for _, line := range advisoryLines(stage, err) {
		pterm.Warning.Println(line)
	}
}

// advisoryLines formats each error of an advisory list as
// "stage: [code] message".
func advisoryLines(stage string, err error) []string {
	errs := []error{err}
	if merr, ok := err.(*multierror.Error); ok {
		errs = merr.Errors
	}
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, fmt.Sprintf("%s: [%d] %s", stage, core.Code(e), core.UserMessage(e)))
	}
	return lines
}
