package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clr1",
	Short: "Build canonical LR(1) parsing tables and drive them against a token stream",
	Long: `clr1 builds a canonical LR(1) grammar from a JSON production list and:
- compiles it, reporting success or conflicts,
- describes its tables and conflicts,
- shows its canonical collection, or
- parses a token stream against it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
