package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rgrund/clr1/grammar"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <fixture path>",
		Short:   "Render the canonical LR(1) collection as a tree of states",
		Example: `  clr1 show grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	fx, err := readFixture(args[0])
	if err != nil {
		return err
	}

	g, err := grammar.Construct(fx.rules(), fx.Start)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}

	c, _, _, _, err := grammar.Analyze(g)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}

	root := stateTree(g, c, c.States()[0].Index, map[int]bool{})
	return pterm.DefaultTree.WithRoot(root).Render()
}

// stateTree walks the canonical collection's transitions from state idx,
// building a display tree. The collection is a general graph — states can
// transition back to an ancestor (a self-loop, for instance) — so visited
// guards against re-expanding a state already shown elsewhere in the tree;
// a repeated state is rendered as a leaf pointing back to its number.
func stateTree(g *grammar.Grammar, c *grammar.Collection, idx int, visited map[int]bool) pterm.TreeNode {
	node := pterm.TreeNode{Text: fmt.Sprintf("I%v", idx)}
	if visited[idx] {
		node.Text += " (see above)"
		return node
	}
	visited[idx] = true

	for _, edge := range c.Edges() {
		if edge.From != idx {
			continue
		}
		text, ok := g.SymbolTable().ToText(edge.Symbol)
		if !ok {
			text = edge.Symbol.String()
		}
		child := stateTree(g, c, edge.To, visited)
		child.Text = fmt.Sprintf("%v  [on %v]", child.Text, text)
		node.Children = append(node.Children, child)
	}
	return node
}
