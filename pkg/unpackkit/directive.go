package unpackkit

import (
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"
)

// Directive marks a line comment that carries the destructuring target of a Go call site.
//
//	pair, err := digits(7) //spread:(a, b, c), rest
const Directive = "//spread:"

// ClassifyLine classifies a physical source line.
//
// When the line has a Directive comment, the Go code before it must be a single assignment
// of one call expression, and the directive text is classified as the assignment target.
// Otherwise the whole line is classified as an assignment statement with Classify.
func ClassifyLine(line string) Count {
	code, pattern, ok := CutDirective(line)
	if !ok {
		return Classify(line)
	}
	if !isCallAssignment(code) {
		return Unclassifiable
	}
	return ClassifyTarget(pattern)
}

// CutDirective splits a Go source line into its code and the text of its Directive comment.
func CutDirective(line string) (code, pattern string, found bool) {
	var (
		s    scanner.Scanner
		fset = token.NewFileSet()
		file = fset.AddFile("", fset.Base(), len(line))
	)
	s.Init(file, []byte(line), nil, scanner.ScanComments)
	for {
		pos, tok, lit := s.Scan()
		switch tok {
		case token.EOF:
			return line, "", false
		case token.COMMENT:
			if strings.HasPrefix(lit, Directive) {
				return line[:file.Offset(pos)], strings.TrimPrefix(lit, Directive), true
			}
		}
	}
}

func isCallAssignment(code string) bool {
	src := "package p\nfunc _() {\n" + code + "\n}\n"
	f, err := parser.ParseFile(token.NewFileSet(), "", src, parser.SkipObjectResolution)
	if err != nil || len(f.Decls) != 1 {
		return false
	}
	fn, ok := f.Decls[0].(*ast.FuncDecl)
	if !ok || fn.Body == nil || len(fn.Body.List) != 1 {
		return false
	}
	switch stmt := fn.Body.List[0].(type) {
	case *ast.AssignStmt:
		if stmt.Tok != token.ASSIGN && stmt.Tok != token.DEFINE {
			return false
		}
		return len(stmt.Rhs) == 1 && isCall(stmt.Rhs[0])
	case *ast.DeclStmt:
		gen, ok := stmt.Decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR || len(gen.Specs) != 1 {
			return false
		}
		spec, ok := gen.Specs[0].(*ast.ValueSpec)
		return ok && len(spec.Values) == 1 && isCall(spec.Values[0])
	default:
		return false
	}
}

func isCall(expr ast.Expr) bool {
	_, ok := ast.Unparen(expr).(*ast.CallExpr)
	return ok
}
