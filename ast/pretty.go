package ast

import (
	"bytes"
	"fmt"
)

// PrettyPrint generates a formatted Fortran source code string from an AST node.
func PrettyPrint(node Node) string {
	var buf bytes.Buffer
	pp(&buf, node, 0)
	return buf.String()
}

func pp(buf *bytes.Buffer, node Node, indent int) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for i, unit := range n.Units {
			if i > 0 {
				buf.WriteString("\n\n")
			}
			pp(buf, unit, indent)
		}

	case *ProgramBlock:
		writeIndent(buf, indent)
		buf.WriteString("PROGRAM ")
		buf.WriteString(n.Name)
		buf.WriteString("\n")
		for _, stmt := range n.Body {
			pp(buf, stmt, indent+1)
		}
		writeIndent(buf, indent)
		buf.WriteString("END PROGRAM ")
		buf.WriteString(n.Name)
		buf.WriteString("\n")

	case *Subroutine:
		writeIndent(buf, indent)
		buf.WriteString("SUBROUTINE ")
		buf.WriteString(n.Name)
		if len(n.Parameters) > 0 {
			buf.WriteString("(")
			for i, p := range n.Parameters {
				if i > 0 {
					buf.WriteString(", ")
				}
				buf.WriteString(p.Name)
			}
			buf.WriteString(")")
		}
		buf.WriteString("\n")
		for _, stmt := range n.Body {
			pp(buf, stmt, indent+1)
		}
		writeIndent(buf, indent)
		buf.WriteString("END SUBROUTINE ")
		buf.WriteString(n.Name)
		buf.WriteString("\n")

	case *Function:
		writeIndent(buf, indent)
		if n.ResultType != "" {
			buf.WriteString(n.ResultType)
			buf.WriteString(" ")
		}
		buf.WriteString("FUNCTION ")
		buf.WriteString(n.Name)
		buf.WriteString("(")
		for i, p := range n.Parameters {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(p.Name)
		}
		buf.WriteString(")")
		if n.ResultVariable != "" {
			fmt.Fprintf(buf, " RESULT(%s)", n.ResultVariable)
		}
		buf.WriteString("\n")
		for _, stmt := range n.Body {
			pp(buf, stmt, indent+1)
		}
		writeIndent(buf, indent)
		buf.WriteString("END FUNCTION ")
		buf.WriteString(n.Name)
		buf.WriteString("\n")

	case *Module:
		writeIndent(buf, indent)
		buf.WriteString("MODULE ")
		buf.WriteString(n.Name)
		buf.WriteString("\n")
		for _, stmt := range n.Body {
			pp(buf, stmt, indent+1)
		}
		if len(n.Contains) > 0 {
			writeIndent(buf, indent)
			buf.WriteString("CONTAINS\n")
			for _, proc := range n.Contains {
				pp(buf, proc, indent+1)
			}
		}
		writeIndent(buf, indent)
		buf.WriteString("END MODULE ")
		buf.WriteString(n.Name)
		buf.WriteString("\n")

	case *BlockData:
		writeIndent(buf, indent)
		buf.WriteString("BLOCK DATA")
		if n.Name != "" {
			buf.WriteString(" ")
			buf.WriteString(n.Name)
		}
		buf.WriteString("\n")
		for _, stmt := range n.Body {
			pp(buf, stmt, indent+1)
		}
		writeIndent(buf, indent)
		buf.WriteString("END BLOCK DATA\n")

	case *ImplicitStatement:
		writeIndent(buf, indent)
		if n.IsNone {
			buf.WriteString("IMPLICIT NONE\n")
		} else {
			buf.WriteString("IMPLICIT\n")
		}

	case *UseStatement:
		writeIndent(buf, indent)
		buf.WriteString("USE ")
		buf.WriteString(n.ModuleName)
		if len(n.Only) > 0 {
			buf.WriteString(", ONLY: ")
			for i, name := range n.Only {
				if i > 0 {
					buf.WriteString(", ")
				}
				buf.WriteString(name)
			}
		}
		buf.WriteString("\n")

	case *TypeDeclaration:
		writeIndent(buf, indent)
		buf.WriteString(n.TypeSpec)
		if len(n.Attributes) > 0 {
			for _, attr := range n.Attributes {
				buf.WriteString(", ")
				buf.WriteString(attr.String())
			}
		}
		buf.WriteString(" :: ")
		for i, entity := range n.Entities {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(entity.Name)
		}
		buf.WriteString("\n")

	// Expression printing
	case *Identifier:
		buf.WriteString(n.Value)
	case *IntegerLiteral:
		buf.WriteString(n.Raw)
	case *RealLiteral:
		buf.WriteString(n.Raw)
	case *StringLiteral:
		fmt.Fprintf(buf, "%q", n.Value)
	case *LogicalLiteral:
		if n.Value {
			buf.WriteString(".TRUE.")
		} else {
			buf.WriteString(".FALSE.")
		}
	case *BinaryExpr:
		pp(buf, n.Left, 0)
		fmt.Fprintf(buf, " %s ", n.Op)
		pp(buf, n.Right, 0)
	case *UnaryExpr:
		buf.WriteString(n.Op.String())
		pp(buf, n.Operand, 0)
	case *FunctionCall:
		buf.WriteString(n.Name)
		buf.WriteString("(")
		for i, arg := range n.Args {
			if i > 0 {
				buf.WriteString(", ")
			}
			pp(buf, arg, 0)
		}
		buf.WriteString(")")
	case *ArrayRef:
		buf.WriteString(n.Name)
		buf.WriteString("(")
		for i, sub := range n.Subscripts {
			if i > 0 {
				buf.WriteString(", ")
			}
			pp(buf, sub, 0)
		}
		buf.WriteString(")")
	case *ParenExpr:
		buf.WriteString("(")
		pp(buf, n.Expr, 0)
		buf.WriteString(")")

	default:
		fmt.Fprintf(buf, "[UNHANDLED: %T]\n", node)
	}
}

func writeIndent(buf *bytes.Buffer, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteString("  ")
	}
}
