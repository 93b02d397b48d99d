package parser

import (
	"fmt"
	"text/template/parse"
)

// LiteralCalls returns the string-literal first arguments of every call to
// fn in text, in source order. Calls whose argument is computed are skipped.
// The text is parsed without checking function names.
func LiteralCalls(text, fn string) ([]string, error) {
	tree := parse.New("scan")
	tree.Mode = parse.SkipFuncCheck
	trees := map[string]*parse.Tree{}
	if _, err := tree.Parse(text, LeftDelim, RightDelim, trees); err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}

	var found []string
	var walk func(n parse.Node)
	walk = func(n parse.Node) {
		switch n := n.(type) {
		case *parse.ListNode:
			if n == nil {
				return
			}
			for _, c := range n.Nodes {
				walk(c)
			}
		case *parse.ActionNode:
			walk(n.Pipe)
		case *parse.PipeNode:
			if n == nil {
				return
			}
			for _, c := range n.Cmds {
				walk(c)
			}
		case *parse.CommandNode:
			if len(n.Args) > 1 {
				if id, ok := n.Args[0].(*parse.IdentifierNode); ok && id.Ident == fn {
					if s, ok := n.Args[1].(*parse.StringNode); ok {
						found = append(found, s.Text)
					}
				}
			}
			for _, a := range n.Args {
				walk(a)
			}
		case *parse.IfNode:
			walkBranch(&n.BranchNode, walk)
		case *parse.RangeNode:
			walkBranch(&n.BranchNode, walk)
		case *parse.WithNode:
			walkBranch(&n.BranchNode, walk)
		case *parse.TemplateNode:
			walk(n.Pipe)
		}
	}

	// The root tree first, then any {{define}} blocks.
	if root, ok := trees["scan"]; ok && root.Root != nil {
		walk(root.Root)
	}
	for name, t := range trees {
		if name != "scan" && t.Root != nil {
			walk(t.Root)
		}
	}
	return found, nil
}

func walkBranch(b *parse.BranchNode, walk func(parse.Node)) {
	walk(b.Pipe)
	walk(b.List)
	if b.ElseList != nil {
		walk(b.ElseList)
	}
}
