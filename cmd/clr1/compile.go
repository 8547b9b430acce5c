package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rgrund/clr1/grammar"
)

func init() {
	cmd := &cobra.Command{
		Use:     "compile <fixture path>",
		Short:   "Validate a fixture's grammar and build its tables, reporting success or failure only",
		Example: `  clr1 compile grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCompile,
	}
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	fx, err := readFixture(args[0])
	if err != nil {
		return err
	}

	g, err := grammar.Construct(fx.rules(), fx.Start)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}

	_, tab, _, _, err := grammar.Analyze(g)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}

	if n := len(tab.Conflicts); n > 0 {
		pterm.Warning.Printfln("grammar %q compiled with %v conflict(s); run 'describe' for details", fx.Start, n)
		return nil
	}
	pterm.Info.Printfln("grammar %q compiled without conflicts", fx.Start)
	return nil
}
