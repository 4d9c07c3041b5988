package sema

import (
	"github.com/gogpu/wgslc/diag"
	"github.com/gogpu/wgslc/wgsl"
)

// Diagnostic message templates. These are observable contract strings:
// external tooling matches on the literal text, so the wording
// (including the grammatical slip in msgNotStructOrAlias) is preserved
// verbatim rather than edited.
const (
	msgRedeclaration       = "redeclaration of '%s'"
	msgOtherDeclaration    = "other declaration here"
	msgUndeclared          = "use of undeclared identifier '%s'"
	msgNotStructOrAlias    = "'%s' is neither an struct or type alias"
	msgRuntimeSizedNotLast = "struct member with runtime-sized array type, must be the last member of the structure"
	msgInvalidMemberType   = "invalid struct member type '%s'"
)

// Analyser validates a parsed tree against the language's semantic
// rules. Unlike the parser it is exhaustive: every rule is checked for
// every declaration and all diagnostics are returned together.
type Analyser struct {
	tree *wgsl.Tree

	// symbols maps each declared global name to its declaring node.
	// The first declaration wins; duplicates are diagnosed, not stored.
	symbols map[string]wgsl.NodeIndex
	// reported tracks names whose duplication was already diagnosed,
	// so a third declaration of the same name stays silent.
	reported map[string]bool

	diags diag.List
}

// Analyse walks the tree, builds the global symbol environment and
// validates semantic rules. It returns nil when the tree is valid, or
// a non-empty diagnostic list. Analysis never mutates the tree, so
// analysing the same tree twice yields the same result.
func Analyse(tree *wgsl.Tree) diag.List {
	a := &Analyser{
		tree:     tree,
		symbols:  make(map[string]wgsl.NodeIndex),
		reported: make(map[string]bool),
	}

	a.collectGlobals()
	a.validateDecls()

	return a.diags
}

// collectGlobals records every top-level declaration's name, in source
// order. A name already present triggers a redeclaration diagnostic
// anchored at the second occurrence, carrying a note pointing at the
// first.
func (a *Analyser) collectGlobals() {
	for _, decl := range a.tree.RootDecls() {
		switch a.tree.NodeKind(decl) {
		case wgsl.NodeVarDecl, wgsl.NodeConstDecl, wgsl.NodeStructDecl,
			wgsl.NodeTypeAlias, wgsl.NodeFnDecl:
		default:
			continue
		}

		nameTok := a.tree.DeclNameToken(decl)
		name := a.tree.TokenText(nameTok)

		first, exists := a.symbols[name]
		if !exists {
			a.symbols[name] = decl
			continue
		}
		if a.reported[name] {
			continue
		}
		a.reported[name] = true

		d := diag.Newf(a.tree.TokenLoc(nameTok), msgRedeclaration, name)
		a.diags.Add(d.WithNote(msgOtherDeclaration, a.tree.TokenLoc(a.tree.DeclNameToken(first))))
	}
}

// validateDecls runs the per-declaration rules over the whole tree.
func (a *Analyser) validateDecls() {
	for _, decl := range a.tree.RootDecls() {
		switch a.tree.NodeKind(decl) {
		case wgsl.NodeStructDecl:
			a.validateStruct(decl)
		case wgsl.NodeTypeAlias:
			_, target := a.tree.NodeData(decl)
			a.checkTypeExpr(target)
		case wgsl.NodeVarDecl, wgsl.NodeConstDecl:
			if rec := a.tree.VarDecl(decl); rec.TypeNode != 0 {
				a.checkTypeExpr(rec.TypeNode)
			}
		case wgsl.NodeFnDecl:
			a.validateFnTypes(decl)
		}
	}
}

// validateStruct checks every member of a struct declaration.
func (a *Analyser) validateStruct(decl wgsl.NodeIndex) {
	members := a.tree.StructMembers(decl)

	for i, member := range members {
		typeNode, _ := a.tree.NodeData(member)
		last := i == len(members)-1

		// Runtime-sized arrays may only close the struct.
		if a.tree.NodeKind(typeNode) == wgsl.NodeArrayType {
			if _, size := a.tree.NodeData(typeNode); size == 0 && !last {
				a.addError(msgRuntimeSizedNotLast, a.tree.NodeLoc(typeNode))
			}
		}

		// Resolution first, legality second; a member whose type does
		// not even resolve gets no second diagnostic about legality.
		if !a.checkTypeExpr(typeNode) {
			continue
		}
		a.checkMemberLegality(typeNode)
	}
}

// validateFnTypes checks a function's parameter and return types.
// Bodies are not resolved; local scoping is outside the analyser's
// rule set.
func (a *Analyser) validateFnTypes(decl wgsl.NodeIndex) {
	proto := a.tree.FnProto(decl)
	for _, param := range a.tree.Span(proto.ParamsStart, proto.ParamsEnd) {
		typeNode, _ := a.tree.NodeData(param)
		a.checkTypeExpr(typeNode)
	}
	if proto.ReturnType != 0 {
		a.checkTypeExpr(proto.ReturnType)
	}
}

// checkTypeExpr validates that every named type referenced by the type
// expression resolves to a struct or type alias. It reports false if
// any diagnostic was emitted for the expression.
func (a *Analyser) checkTypeExpr(typeNode wgsl.NodeIndex) bool {
	ok := true

	switch a.tree.NodeKind(typeNode) {
	case wgsl.NodeNamedType:
		mainTok := a.tree.MainToken(typeNode)
		if a.tree.TokenKind(mainTok) == wgsl.TokenIdent {
			ok = a.checkNamedRef(mainTok)
		}
		start, end := a.tree.NodeData(typeNode)
		for _, param := range a.tree.Span(start, end) {
			if !a.checkTypeExpr(param) {
				ok = false
			}
		}

	case wgsl.NodeArrayType:
		elem, _ := a.tree.NodeData(typeNode)
		ok = a.checkTypeExpr(elem)

	case wgsl.NodePtrType:
		pointee, _ := a.tree.NodeData(typeNode)
		ok = a.checkTypeExpr(pointee)
	}

	return ok
}

// checkNamedRef validates one identifier used in type position: it must
// be declared, and its declaration must be a struct or a type alias.
func (a *Analyser) checkNamedRef(identTok wgsl.TokenIndex) bool {
	name := a.tree.TokenText(identTok)

	decl, exists := a.symbols[name]
	if !exists {
		a.addErrorf(a.tree.TokenLoc(identTok), msgUndeclared, name)
		return false
	}

	switch a.tree.NodeKind(decl) {
	case wgsl.NodeStructDecl, wgsl.NodeTypeAlias:
		return true
	default:
		a.addErrorf(a.tree.TokenLoc(identTok), msgNotStructOrAlias, name)
		return false
	}
}

// checkMemberLegality rejects member types that resolve, through any
// chain of aliases, to an opaque handle type (samplers, textures).
// The diagnostic names the type as written, not its resolution.
func (a *Analyser) checkMemberLegality(typeNode wgsl.NodeIndex) {
	if a.tree.NodeKind(typeNode) != wgsl.NodeNamedType {
		return
	}
	writtenTok := a.tree.MainToken(typeNode)

	if a.resolvesToOpaque(typeNode, 0) {
		a.addErrorf(a.tree.TokenLoc(writtenTok), msgInvalidMemberType, a.tree.TokenText(writtenTok))
	}
}

// resolvesToOpaque follows alias chains from a named type to decide
// whether it denotes an opaque handle type. Alias cycles terminate via
// the depth guard; the redeclaration pass makes real cycles impossible
// to express without a duplicate name anyway.
func (a *Analyser) resolvesToOpaque(typeNode wgsl.NodeIndex, depth int) bool {
	const maxAliasDepth = 64
	if depth > maxAliasDepth {
		return false
	}
	if a.tree.NodeKind(typeNode) != wgsl.NodeNamedType {
		return false
	}

	mainTok := a.tree.MainToken(typeNode)
	kind := a.tree.TokenKind(mainTok)
	if kind.IsOpaqueType() {
		return true
	}
	if kind != wgsl.TokenIdent {
		return false
	}

	decl, exists := a.symbols[a.tree.TokenText(mainTok)]
	if !exists || a.tree.NodeKind(decl) != wgsl.NodeTypeAlias {
		return false
	}
	_, target := a.tree.NodeData(decl)
	return a.resolvesToOpaque(target, depth+1)
}

func (a *Analyser) addError(msg string, loc diag.Loc) {
	a.diags.Add(diag.New(msg, loc))
}

func (a *Analyser) addErrorf(loc diag.Loc, format string, args ...any) {
	a.diags.Addf(loc, format, args...)
}
