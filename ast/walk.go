package ast

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order: It starts by calling
// v.Visit(node); node must not be nil. If the visitor w returned by
// v.Visit(node) is not nil, Walk is invoked recursively with visitor
// w for each of the non-nil children of node, followed by a call of
// w.Visit(nil).
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, unit := range n.Units {
			Walk(v, unit)
		}

	case *ProgramBlock:
		for _, stmt := range n.Body {
			Walk(v, stmt)
		}

	case *Subroutine:
		for _, stmt := range n.Body {
			Walk(v, stmt)
		}

	case *Function:
		for _, stmt := range n.Body {
			Walk(v, stmt)
		}

	case *Module:
		for _, stmt := range n.Body {
			Walk(v, stmt)
		}
		for _, proc := range n.Contains {
			Walk(v, proc)
		}

	case *BlockData:
		for _, stmt := range n.Body {
			Walk(v, stmt)
		}

	case *TypeDeclaration:
		for _, entity := range n.Entities {
			walkDeclEntity(v, entity)
		}

	case *ImplicitStatement:
		// no child expression nodes

	case *UseStatement:
		// no child nodes

	case *DerivedTypeStmt:
		for _, entity := range n.Components {
			walkDeclEntity(v, entity)
		}

	case *EntryStmt:
		// parameter list carries no expression nodes

	case *InterfaceStmt:
		// no child nodes; ProcNames are plain strings

	case *TemplateStmt:
		for _, stmt := range n.Body {
			Walk(v, stmt)
		}

	case *RequirementStmt:
		for _, stmt := range n.Body {
			Walk(v, stmt)
		}

	case *InstantiateStmt:
		// Args are plain strings, no child nodes

	case *EnumStmt:
		for _, m := range n.Enumerators {
			if m.Value != nil {
				Walk(v, m.Value)
			}
		}

	case *Identifier:
		// leaf

	case *IntegerLiteral:
		// leaf

	case *RealLiteral:
		// leaf

	case *StringLiteral:
		// leaf

	case *LogicalLiteral:
		// leaf

	case *BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *UnaryExpr:
		Walk(v, n.Operand)

	case *FunctionCall:
		for _, arg := range n.Args {
			Walk(v, arg)
		}

	case *ArrayRef:
		for _, subscript := range n.Subscripts {
			Walk(v, subscript)
		}

	case *ParenExpr:
		Walk(v, n.Expr)
	}

	v.Visit(nil)
}

func walkDeclEntity(v Visitor, entity DeclEntity) {
	if entity.ArraySpec == nil {
		return
	}
	for _, bound := range entity.ArraySpec.Bounds {
		if bound.Lower != nil {
			Walk(v, bound.Lower)
		}
		if bound.Upper != nil {
			Walk(v, bound.Upper)
		}
	}
}

// Inspect traverses an AST in depth-first order: It starts by calling
// f(node); node must not be nil. If f returns true, Inspect invokes f
// recursively for each of the non-nil children of node, followed by a
// call of f(nil).
//
// Inspect is a convenience wrapper around Walk that allows using a
// simple function instead of implementing the Visitor interface.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}
