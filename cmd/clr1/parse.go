package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rgrund/clr1/driver"
	"github.com/rgrund/clr1/grammar"
)

var parseFlags = struct {
	tree *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <fixture path>",
		Short:   "Parse the fixture's token stream against its grammar",
		Example: `  clr1 parse grammar.json --tree`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.tree = cmd.Flags().Bool("tree", false, "render the parse tree with pterm instead of plain text")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
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

	p := driver.NewParser(g, tab)
	tree, derivation, err := p.Parse(fx.Tokens)
	if err != nil {
		var perr *driver.ParseError
		if errors.As(err, &perr) {
			pterm.Error.Printfln("rejected at position %v: unexpected %q in state %v (expected one of %v)",
				perr.Position, perr.Token, perr.State, perr.Expected)
			return err
		}
		pterm.Error.Println(err.Error())
		return err
	}

	ids := make([]int, len(derivation))
	for i, id := range derivation {
		ids[i] = id.Int()
	}
	pterm.Info.Printfln("accepted; derivation: %v", ids)

	if *parseFlags.tree {
		return pterm.DefaultTree.WithRoot(nodeTree(g, tree)).Render()
	}
	driver.PrintTree(os.Stdout, g, tree)
	return nil
}

func nodeTree(g *grammar.Grammar, n *driver.Node) pterm.TreeNode {
	text, ok := g.SymbolTable().ToText(n.Symbol)
	if !ok {
		text = n.Symbol.String()
	}
	if n.IsLeaf() {
		return pterm.TreeNode{Text: fmt.Sprintf("%v %q", text, n.Text)}
	}
	node := pterm.TreeNode{Text: text}
	for _, c := range n.Children {
		node.Children = append(node.Children, nodeTree(g, c))
	}
	return node
}
