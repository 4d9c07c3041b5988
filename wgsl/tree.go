package wgsl

import "github.com/gogpu/wgslc/diag"

// The syntax tree is not a pointer graph. Nodes live in one dense array
// and refer to each other by index; variable-length payloads live in a
// companion extra array shared by all nodes. This keeps the whole tree
// in three flat allocations, cheap to walk and free.

// NodeIndex identifies a node by its position in the node array.
// Index 0 is always the root; 0 therefore doubles as "absent" for
// optional child references.
type NodeIndex = uint32

// ExtraIndex is an index into the tree's extra-data array.
type ExtraIndex = uint32

// NodeKind tags a node with its syntax construct. The comment next to
// each kind is the authoritative field layout: it defines what the
// node's MainToken, LHS and RHS mean, for both the parser writing the
// node and the query API reading it back.
type NodeKind uint8

const (
	// NodeRoot: the ordered list of top-level declarations.
	// lhs..rhs = span of declaration node indices in extra.
	NodeRoot NodeKind = iota

	// NodeVarDecl: global or local `var` declaration.
	// main = `var` keyword. lhs = extra index of a VarDeclRecord.
	// rhs = extra index of a SubRange of attribute nodes, 0 if none.
	NodeVarDecl
	// NodeConstDecl: `const` or `let` declaration; layout as NodeVarDecl.
	NodeConstDecl
	// NodeTypeAlias: `type Name = T;` (or `alias Name = T;`).
	// main = keyword. lhs = name token. rhs = aliased type node.
	NodeTypeAlias
	// NodeStructDecl: main = `struct` keyword, name token = main+1.
	// lhs = member SubRange extra index, 0 if the struct is empty.
	// rhs = attribute SubRange extra index, 0 if none.
	NodeStructDecl
	// NodeStructMember: main = name token. lhs = type node.
	// rhs = attribute SubRange extra index, 0 if none.
	NodeStructMember
	// NodeFnDecl: main = `fn` keyword, name token = main+1.
	// lhs = extra index of an FnProtoRecord. rhs = body block node.
	NodeFnDecl
	// NodeParam: main = name token. lhs = type node.
	// rhs = attribute SubRange extra index, 0 if none.
	NodeParam
	// NodeAttribute: main = attribute name token.
	// lhs..rhs = span of argument expression nodes in extra.
	NodeAttribute

	// NodeNamedType: main = identifier or type keyword token.
	// lhs..rhs = span of type parameter nodes in extra (empty if none).
	NodeNamedType
	// NodeArrayType: main = `array` keyword. lhs = element type node.
	// rhs = size expression node, 0 for runtime-sized arrays.
	NodeArrayType
	// NodePtrType: main = `ptr` keyword. lhs = pointee type node.
	// rhs = extra index of a PtrTypeRecord.
	NodePtrType

	// Binary expressions: main = operator token, lhs/rhs = operands.
	NodeAdd
	NodeSub
	NodeMul
	NodeDiv
	NodeMod
	NodeShiftLeft
	NodeShiftRight
	NodeLess
	NodeLessEqual
	NodeGreater
	NodeGreaterEqual
	NodeEqual
	NodeNotEqual
	NodeBitAnd
	NodeBitOr
	NodeBitXor
	NodeLogicalAnd
	NodeLogicalOr

	// Unary expressions: main = operator token, lhs = operand, rhs = 0.
	NodeNegate
	NodeNot
	NodeComplement
	NodeAddressOf
	NodeDeref

	// Leaf expressions: main = the literal/identifier token.
	NodeIntLiteral
	NodeFloatLiteral
	NodeBoolLiteral
	NodeIdentExpr

	// NodeCall: main = `(` token. lhs = callee node (identifier
	// expression or named type). rhs = argument SubRange extra index.
	NodeCall
	// NodeIndexExpr: main = `[` token. lhs = object, rhs = index.
	NodeIndexExpr
	// NodeFieldAccess: main = member name token. lhs = object, rhs = 0.
	NodeFieldAccess

	// NodeBlock: main = `{` token. lhs..rhs = statement span in extra.
	NodeBlock
	// NodeReturn: main = `return`. lhs = value node, 0 if none.
	NodeReturn
	// NodeIf: main = `if`. lhs = condition node.
	// rhs = extra index of an IfRecord.
	NodeIf
	// NodeFor: main = `for`. lhs = extra index of a ForRecord.
	// rhs = body block node.
	NodeFor
	// NodeWhile: main = `while`. lhs = condition, rhs = body block.
	NodeWhile
	// NodeLoop: main = `loop`. lhs = body block.
	// rhs = continuing block node, 0 if none.
	NodeLoop
	// NodeBreak, NodeContinue, NodeDiscard: main = keyword token.
	NodeBreak
	NodeContinue
	NodeDiscard
	// NodeAssign: main = assignment operator token (`=`, `+=`, ...).
	// lhs = target, rhs = value.
	NodeAssign
	// NodeSwitch: main = `switch`. lhs = selector node.
	// rhs = case-clause SubRange extra index.
	NodeSwitch
	// NodeCase: main = `case` or `default` keyword.
	// lhs = selector SubRange extra index, 0 for default clauses.
	// rhs = body block node.
	NodeCase
)

// String returns a debug name for the node kind.
func (k NodeKind) String() string {
	names := [...]string{
		NodeRoot:         "Root",
		NodeVarDecl:      "VarDecl",
		NodeConstDecl:    "ConstDecl",
		NodeTypeAlias:    "TypeAlias",
		NodeStructDecl:   "StructDecl",
		NodeStructMember: "StructMember",
		NodeFnDecl:       "FnDecl",
		NodeParam:        "Param",
		NodeAttribute:    "Attribute",
		NodeNamedType:    "NamedType",
		NodeArrayType:    "ArrayType",
		NodePtrType:      "PtrType",
		NodeAdd:          "Add",
		NodeSub:          "Sub",
		NodeMul:          "Mul",
		NodeDiv:          "Div",
		NodeMod:          "Mod",
		NodeShiftLeft:    "ShiftLeft",
		NodeShiftRight:   "ShiftRight",
		NodeLess:         "Less",
		NodeLessEqual:    "LessEqual",
		NodeGreater:      "Greater",
		NodeGreaterEqual: "GreaterEqual",
		NodeEqual:        "Equal",
		NodeNotEqual:     "NotEqual",
		NodeBitAnd:       "BitAnd",
		NodeBitOr:        "BitOr",
		NodeBitXor:       "BitXor",
		NodeLogicalAnd:   "LogicalAnd",
		NodeLogicalOr:    "LogicalOr",
		NodeNegate:       "Negate",
		NodeNot:          "Not",
		NodeComplement:   "Complement",
		NodeAddressOf:    "AddressOf",
		NodeDeref:        "Deref",
		NodeIntLiteral:   "IntLiteral",
		NodeFloatLiteral: "FloatLiteral",
		NodeBoolLiteral:  "BoolLiteral",
		NodeIdentExpr:    "IdentExpr",
		NodeCall:         "Call",
		NodeIndexExpr:    "IndexExpr",
		NodeFieldAccess:  "FieldAccess",
		NodeBlock:        "Block",
		NodeReturn:       "Return",
		NodeIf:           "If",
		NodeFor:          "For",
		NodeWhile:        "While",
		NodeLoop:         "Loop",
		NodeBreak:        "Break",
		NodeContinue:     "Continue",
		NodeDiscard:      "Discard",
		NodeAssign:       "Assign",
		NodeSwitch:       "Switch",
		NodeCase:         "Case",
	}
	if int(k) < len(names) && names[k] != "" {
		return names[k]
	}
	return "Unknown"
}

// Node is one entry in the flat syntax tree. MainToken anchors the node
// in source; the meaning of LHS and RHS depends on Kind (see the
// NodeKind constants for the layout table).
type Node struct {
	Kind      NodeKind
	MainToken TokenIndex
	LHS       uint32
	RHS       uint32
}

// VarDeclRecord is the extra-data record behind NodeVarDecl and
// NodeConstDecl: the declared name, the optional address-space template
// tokens, and the optional type and initializer nodes (0 = absent).
type VarDeclRecord struct {
	NameToken      TokenIndex
	TypeNode       NodeIndex
	InitNode       NodeIndex
	AddrSpaceToken TokenIndex // 0 = no <address_space> template
	AccessToken    TokenIndex // 0 = no access mode
}

// FnProtoRecord is the extra-data record behind NodeFnDecl.
// The three spans index into extra; ReturnType is 0 when the function
// returns nothing.
type FnProtoRecord struct {
	AttrsStart, AttrsEnd             ExtraIndex
	ParamsStart, ParamsEnd           ExtraIndex
	ReturnAttrsStart, ReturnAttrsEnd ExtraIndex
	ReturnType                       NodeIndex
}

// PtrTypeRecord is the extra-data record behind NodePtrType.
type PtrTypeRecord struct {
	AddrSpaceToken TokenIndex
	AccessToken    TokenIndex // 0 = default access
}

// IfRecord is the extra-data record behind NodeIf.
type IfRecord struct {
	Then NodeIndex
	Else NodeIndex // block or nested if, 0 = no else
}

// ForRecord is the extra-data record behind NodeFor. Each field is a
// statement/expression node index, 0 = that clause is absent.
type ForRecord struct {
	Init   NodeIndex
	Cond   NodeIndex
	Update NodeIndex
}

// Tree is the parsed syntax tree: the original source, the token
// sequence, the node array and the shared extra-data array. It is
// immutable after parsing; all methods are read-only.
type Tree struct {
	Source string

	tokens []Token
	nodes  []Node
	extra  []uint32
}

// NodeCount returns the number of nodes, including the root.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// NodeKind returns the kind tag of node i.
func (t *Tree) NodeKind(i NodeIndex) NodeKind { return t.nodes[i].Kind }

// NodeData returns the raw lhs/rhs fields of node i. Their meaning is
// kind-dependent; prefer the typed accessors below.
func (t *Tree) NodeData(i NodeIndex) (lhs, rhs uint32) {
	n := t.nodes[i]
	return n.LHS, n.RHS
}

// MainToken returns the token anchoring node i.
func (t *Tree) MainToken(i NodeIndex) TokenIndex { return t.nodes[i].MainToken }

// TokenKind returns the lexical kind of token ti.
func (t *Tree) TokenKind(ti TokenIndex) TokenKind { return t.tokens[ti].Kind }

// TokenLoc returns the byte span of token ti.
func (t *Tree) TokenLoc(ti TokenIndex) diag.Loc { return t.tokens[ti].Loc }

// TokenText returns the source text of token ti.
func (t *Tree) TokenText(ti TokenIndex) string {
	return t.tokens[ti].Loc.Text(t.Source)
}

// NodeLoc returns the byte span of the node's main token. For the root
// it covers the whole buffer.
func (t *Tree) NodeLoc(i NodeIndex) diag.Loc {
	if t.nodes[i].Kind == NodeRoot {
		return diag.Loc{Start: 0, End: uint32(len(t.Source))}
	}
	return t.TokenLoc(t.nodes[i].MainToken)
}

// RootDecls returns the ordered top-level declaration nodes.
func (t *Tree) RootDecls() []NodeIndex {
	root := t.nodes[0]
	return t.Span(root.LHS, root.RHS)
}

// Span resolves [start, end) bounds into the extra array to the ordered
// node indices stored there. The returned slice aliases the tree's
// storage and must not be modified.
func (t *Tree) Span(start, end ExtraIndex) []NodeIndex {
	return t.extra[start:end]
}

// SubRange resolves a {start, end} pair stored at extra[at] to its
// ordered node indices. at = 0 yields nil (no range recorded).
func (t *Tree) SubRange(at ExtraIndex) []NodeIndex {
	if at == 0 {
		return nil
	}
	return t.Span(t.extra[at], t.extra[at+1])
}

// StructMembers returns the ordered member nodes of a NodeStructDecl.
func (t *Tree) StructMembers(i NodeIndex) []NodeIndex {
	return t.SubRange(t.nodes[i].LHS)
}

// VarDecl decodes the VarDeclRecord of a NodeVarDecl or NodeConstDecl.
func (t *Tree) VarDecl(i NodeIndex) VarDeclRecord {
	e := t.nodes[i].LHS
	return VarDeclRecord{
		NameToken:      t.extra[e],
		TypeNode:       t.extra[e+1],
		InitNode:       t.extra[e+2],
		AddrSpaceToken: t.extra[e+3],
		AccessToken:    t.extra[e+4],
	}
}

// FnProto decodes the FnProtoRecord of a NodeFnDecl.
func (t *Tree) FnProto(i NodeIndex) FnProtoRecord {
	e := t.nodes[i].LHS
	return FnProtoRecord{
		AttrsStart:       t.extra[e],
		AttrsEnd:         t.extra[e+1],
		ParamsStart:      t.extra[e+2],
		ParamsEnd:        t.extra[e+3],
		ReturnAttrsStart: t.extra[e+4],
		ReturnAttrsEnd:   t.extra[e+5],
		ReturnType:       t.extra[e+6],
	}
}

// PtrType decodes the PtrTypeRecord of a NodePtrType.
func (t *Tree) PtrType(i NodeIndex) PtrTypeRecord {
	e := t.nodes[i].RHS
	return PtrTypeRecord{
		AddrSpaceToken: t.extra[e],
		AccessToken:    t.extra[e+1],
	}
}

// IfParts decodes the IfRecord of a NodeIf.
func (t *Tree) IfParts(i NodeIndex) IfRecord {
	e := t.nodes[i].RHS
	return IfRecord{Then: t.extra[e], Else: t.extra[e+1]}
}

// ForParts decodes the ForRecord of a NodeFor.
func (t *Tree) ForParts(i NodeIndex) ForRecord {
	e := t.nodes[i].LHS
	return ForRecord{Init: t.extra[e], Cond: t.extra[e+1], Update: t.extra[e+2]}
}

// DeclNameToken returns the token holding a declaration's name.
// Valid for var/const, alias, struct, fn, param and member nodes.
func (t *Tree) DeclNameToken(i NodeIndex) TokenIndex {
	n := t.nodes[i]
	switch n.Kind {
	case NodeVarDecl, NodeConstDecl:
		return t.extra[n.LHS]
	case NodeTypeAlias:
		return n.LHS
	case NodeStructDecl, NodeFnDecl:
		return n.MainToken + 1
	case NodeStructMember, NodeParam:
		return n.MainToken
	}
	return n.MainToken
}

// DeclName returns a declaration's name text.
func (t *Tree) DeclName(i NodeIndex) string {
	return t.TokenText(t.DeclNameToken(i))
}
