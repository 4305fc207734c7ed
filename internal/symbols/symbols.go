// Package symbols walks a set of parsed files and produces a flat,
// order-preserving symbol collection keyed by fully-qualified name, per
// spec.md §4.4.
package symbols

import (
	"strings"

	"github.com/cwbudde/daedalus-dc/internal/ast"
	"github.com/cwbudde/daedalus-dc/internal/source"
	"github.com/cwbudde/daedalus-dc/internal/token"
)

// Kind mirrors the declaration kinds of spec.md §3's "Symbol" entry.
type Kind int

const (
	KindFunc Kind = iota
	KindParam
	KindClass
	KindClassMember
	KindInstance
	KindPrototype
	KindVar
	KindConst
	KindConstArray
)

func (k Kind) String() string {
	switch k {
	case KindFunc:
		return "function"
	case KindParam:
		return "parameter"
	case KindClass:
		return "class"
	case KindClassMember:
		return "class member"
	case KindInstance:
		return "instance"
	case KindPrototype:
		return "prototype"
	case KindVar:
		return "var"
	case KindConst:
		return "const"
	case KindConstArray:
		return "const array"
	default:
		return "symbol"
	}
}

// Symbol is a named, typed-later entity with an optional scope and the
// span of its declaration site.
type Symbol struct {
	Name   string // as-cased source spelling
	Scope  string // enclosing function/class/instance/prototype name, "" for global
	FQN    string // Scope+"."+Name, or just Name when Scope == ""
	Kind   Kind
	File   source.FileId
	Span   token.Span
	Decl   ast.Node // the declaring AST node (VarSpec-level nodes point at their own span-bearing wrapper)
	TypeID *ast.Ident
	Size   ast.ArraySize // set for array var/const declarations
}

// FQNKey returns the case-folded key used for lookup.
func FQNKey(fqn string) string { return strings.ToLower(fqn) }

func fqn(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}

// FileAST pairs a parsed declaration list with the file it came from, the
// unit the Collector and Checker both operate over.
type FileAST struct {
	Id    source.FileId
	Decls []ast.Decl
}

// Collection is the order-preserving symbol table produced by Collect.
// Lookup is case-insensitive on the fully-qualified name; duplicates are
// retained in order of appearance and lookup returns the first match,
// per spec.md §4.4 "Collisions" (diagnosing duplicates is left as a
// planned concern per the spec's open question).
type Collection struct {
	ordered []*Symbol
	index   map[string]int // FQNKey -> first index in ordered
}

// NewCollection returns an empty symbol collection.
func NewCollection() *Collection {
	return &Collection{index: make(map[string]int)}
}

func (c *Collection) add(s *Symbol) {
	key := FQNKey(s.FQN)
	if _, exists := c.index[key]; !exists {
		c.index[key] = len(c.ordered)
	}
	c.ordered = append(c.ordered, s)
}

// All returns every symbol in order of appearance, including duplicates.
func (c *Collection) All() []*Symbol { return c.ordered }

// GetByName performs a case-insensitive lookup by fully-qualified name and
// returns the first declaration site, or nil if none exists.
func (c *Collection) GetByName(fqn string) *Symbol {
	if i, ok := c.index[FQNKey(fqn)]; ok {
		return c.ordered[i]
	}
	return nil
}

// Collect performs a single traversal of every file's declaration list,
// appending one symbol per declaration site. Scoping follows spec.md §4.4:
// globals have no scope prefix; function/class/instance/prototype bodies
// scope their children under the enclosing name.
func Collect(files []FileAST) *Collection {
	coll := NewCollection()
	for _, f := range files {
		for _, d := range f.Decls {
			collectDecl(coll, f.Id, "", d)
		}
	}
	return coll
}

func collectDecl(coll *Collection, file source.FileId, scope string, d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FuncDecl:
		coll.add(&Symbol{
			Name: decl.Name.Name, Scope: scope, FQN: fqn(scope, decl.Name.Name),
			Kind: KindFunc, File: file, Span: decl.Name.Span(), Decl: decl, TypeID: decl.ReturnType,
		})
		for _, param := range decl.Params {
			coll.add(&Symbol{
				Name: param.Name.Name, Scope: decl.Name.Name, FQN: fqn(decl.Name.Name, param.Name.Name),
				Kind: KindParam, File: file, Span: param.Name.Span(), Decl: decl, TypeID: param.Type, Size: param.Size,
			})
		}
		collectStmts(coll, file, decl.Name.Name, decl.Body)

	case *ast.ClassDecl:
		coll.add(&Symbol{
			Name: decl.Name.Name, Scope: scope, FQN: fqn(scope, decl.Name.Name),
			Kind: KindClass, File: file, Span: decl.Name.Span(), Decl: decl,
		})
		for _, m := range decl.Members {
			coll.add(&Symbol{
				Name: m.Name.Name, Scope: decl.Name.Name, FQN: fqn(decl.Name.Name, m.Name.Name),
				Kind: KindClassMember, File: file, Span: m.Name.Span(), Decl: m, TypeID: m.Type, Size: m.Size,
			})
		}

	case *ast.InstanceDecl:
		for _, name := range decl.Names {
			coll.add(&Symbol{
				Name: name.Name, Scope: scope, FQN: fqn(scope, name.Name),
				Kind: KindInstance, File: file, Span: name.Span(), Decl: decl, TypeID: decl.Parent,
			})
			collectStmts(coll, file, name.Name, decl.Body)
		}

	case *ast.PrototypeDecl:
		coll.add(&Symbol{
			Name: decl.Name.Name, Scope: scope, FQN: fqn(scope, decl.Name.Name),
			Kind: KindPrototype, File: file, Span: decl.Name.Span(), Decl: decl, TypeID: decl.Parent,
		})
		collectStmts(coll, file, decl.Name.Name, decl.Body)

	case *ast.VarDeclStmt:
		for _, spec := range decl.Names {
			coll.add(&Symbol{
				Name: spec.Name.Name, Scope: scope, FQN: fqn(scope, spec.Name.Name),
				Kind: KindVar, File: file, Span: spec.Name.Span(), Decl: decl, TypeID: decl.Type, Size: spec.Size,
			})
		}

	case *ast.ConstDeclStmt:
		coll.add(&Symbol{
			Name: decl.Name.Name, Scope: scope, FQN: fqn(scope, decl.Name.Name),
			Kind: KindConst, File: file, Span: decl.Name.Span(), Decl: decl, TypeID: decl.Type,
		})

	case *ast.ConstArrayDeclStmt:
		coll.add(&Symbol{
			Name: decl.Name.Name, Scope: scope, FQN: fqn(scope, decl.Name.Name),
			Kind: KindConstArray, File: file, Span: decl.Name.Span(), Decl: decl, TypeID: decl.Type,
			Size: ast.ArraySize{Expr: decl.Size},
		})
	}
}

// collectStmts recurses into a body's statement list, descending into
// if-branches (both then- and else-) so nested var/const declarations are
// collected too (spec.md §4.4 "Visitor discipline").
func collectStmts(coll *Collection, file source.FileId, scope string, stmts []ast.Stmt) {
	for _, s := range stmts {
		switch stmt := s.(type) {
		case *ast.VarDeclStmt:
			collectDecl(coll, file, scope, stmt)
		case *ast.ConstDeclStmt:
			collectDecl(coll, file, scope, stmt)
		case *ast.ConstArrayDeclStmt:
			collectDecl(coll, file, scope, stmt)
		case *ast.IfStmt:
			for _, branch := range stmt.Branches {
				collectStmts(coll, file, scope, branch.Body)
			}
			collectStmts(coll, file, scope, stmt.Else)
		}
	}
}
