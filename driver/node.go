package driver

import (
	"fmt"
	"io"

	"github.com/rgrund/clr1/grammar"
	"github.com/rgrund/clr1/grammar/symbol"
)

// Node is one vertex of a parse tree (spec §3's "parse-tree root"). A leaf
// node represents a shifted terminal and carries its token text; an
// interior node represents a reduce and carries the production applied.
type Node struct {
	Symbol     symbol.Symbol
	Text       string
	Production *grammar.Production
	Children   []*Node
}

// IsLeaf reports whether n was built by a shift rather than a reduce.
func (n *Node) IsLeaf() bool {
	return n.Production == nil
}

// Yield returns the terminal text of n's leaves, left to right — the
// original token stream, reconstructed from the tree (spec §8's driver
// soundness property: the yield of the returned tree equals the input).
func (n *Node) Yield() []string {
	var out []string
	n.collectYield(&out)
	return out
}

func (n *Node) collectYield(out *[]string) {
	if n.IsLeaf() {
		*out = append(*out, n.Text)
		return
	}
	for _, c := range n.Children {
		c.collectYield(out)
	}
}

// PrintTree renders n as an indented tree using the symbol table of g for
// display text, one line per node.
func PrintTree(w io.Writer, g *grammar.Grammar, n *Node) {
	printTree(w, g, n, "", true)
}

func printTree(w io.Writer, g *grammar.Grammar, n *Node, prefix string, last bool) {
	connector := "├─ "
	childPrefix := prefix + "│  "
	if last {
		connector = "└─ "
		childPrefix = prefix + "   "
	}

	text, ok := g.SymbolTable().ToText(n.Symbol)
	if !ok {
		text = n.Symbol.String()
	}
	if n.IsLeaf() {
		fmt.Fprintf(w, "%v%v%v %q\n", prefix, connector, text, n.Text)
	} else {
		fmt.Fprintf(w, "%v%v%v\n", prefix, connector, text)
	}

	for i, c := range n.Children {
		printTree(w, g, c, childPrefix, i == len(n.Children)-1)
	}
}
