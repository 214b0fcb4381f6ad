package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// QueryAll returns all logical descendants of n matching a CSS selector, in
// document order. n itself is never part of the result, and shadow roots of
// hosts in the subtree are not entered.
func QueryAll(n *Node, selector string) ([]*Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	index := make(map[*html.Node]*Node)
	m := mirror(n, LogicalView, false, index)
	var result []*Node
	for _, h := range sel.MatchAll(m) {
		if h == m {
			continue
		}
		if d, ok := index[h]; ok {
			result = append(result, d)
		}
	}
	return result, nil
}

// MustQueryAll is like QueryAll, but panics on invalid selectors.
func MustQueryAll(n *Node, selector string) []*Node {
	nodes, err := QueryAll(n, selector)
	if err != nil {
		panic(err)
	}
	return nodes
}
