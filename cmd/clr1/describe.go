package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rgrund/clr1/grammar"
	"github.com/rgrund/clr1/report"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe <fixture path>",
		Short:   "Print the grammar, states, tables, and conflicts in readable form",
		Example: `  clr1 describe grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	fx, err := readFixture(args[0])
	if err != nil {
		return err
	}

	g, err := grammar.Construct(fx.rules(), fx.Start)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}

	c, tab, first, follow, err := grammar.Analyze(g)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}

	if n := len(tab.Conflicts); n > 0 {
		pterm.Warning.Printfln("%v conflict(s) detected", n)
	} else {
		pterm.Info.Println("no conflicts detected")
	}

	return report.Write(os.Stdout, g, c, tab, first, follow)
}
