package main

import (
	"os"

	"github.com/npillmayer/engrave/engine/score/scoredebug"
	"github.com/spf13/cobra"
)

func newDotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dot <fixture>",
		Short: "Write the laid-out score tree in Graphviz DOT format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, _, err := laidOut(args[0])
			if err != nil {
				return err
			}
			return scoredebug.ToGraphViz(doc, os.Stdout, tracer())
		},
	}
}
