package discovery

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// collectCalls returns every call expression in the tree in source order.
func collectCalls(root *sitter.Node) []*sitter.Node {
	calls := []*sitter.Node{}
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node.Type() == "call_expression" {
			calls = append(calls, node)
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}
	walk(root)
	return calls
}

// calleeName returns the source text of the call's function expression,
// e.g. "test" or "test.describe".
func calleeName(call *sitter.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	return string(source[fn.StartByte():fn.EndByte()])
}

// callArguments returns the call's named argument nodes.
func callArguments(call *sitter.Node) []*sitter.Node {
	argsNode := call.ChildByFieldName("arguments")
	if argsNode == nil || argsNode.Type() != "arguments" {
		// tagged template invocations carry a template literal in place of
		// an argument list
		return nil
	}
	args := []*sitter.Node{}
	for i := 0; i < int(argsNode.NamedChildCount()); i++ {
		child := argsNode.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		args = append(args, child)
	}
	return args
}

// literalTitle returns the call title when the first argument is a plain
// string or a template string without substitutions. Any other shape has
// no title.
func literalTitle(call *sitter.Node, source []byte) (string, bool) {
	args := callArguments(call)
	if len(args) == 0 {
		return "", false
	}
	first := args[0]
	switch first.Type() {
	case "string":
		return stringText(first, source), true
	case "template_string":
		var b strings.Builder
		for i := 0; i < int(first.NamedChildCount()); i++ {
			child := first.NamedChild(i)
			switch child.Type() {
			case "template_substitution":
				return "", false
			case "string_fragment", "escape_sequence":
				b.Write(source[child.StartByte():child.EndByte()])
			}
		}
		return b.String(), true
	}
	return "", false
}

func stringText(node *sitter.Node, source []byte) string {
	var b strings.Builder
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "string_fragment", "escape_sequence":
			b.Write(source[child.StartByte():child.EndByte()])
		}
	}
	return b.String()
}

func isFunctionLiteral(node *sitter.Node) bool {
	switch node.Type() {
	case "arrow_function", "function", "function_expression":
		return true
	}
	return false
}

// functionBody returns the block body of an inline function literal. Arrow
// functions with a bare expression body have no block to skip.
func functionBody(node *sitter.Node) *sitter.Node {
	body := node.ChildByFieldName("body")
	if body == nil || body.Type() != "statement_block" {
		return nil
	}
	return body
}

// enclosingBlock returns the nearest statement block containing the node.
func enclosingBlock(node *sitter.Node) *sitter.Node {
	for anc := node.Parent(); anc != nil; anc = anc.Parent() {
		if anc.Type() == "statement_block" {
			return anc
		}
	}
	return nil
}
