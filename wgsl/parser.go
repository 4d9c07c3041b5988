package wgsl

import (
	"fmt"

	"github.com/gogpu/wgslc/diag"
)

// Parser parses WGSL tokens into a flat syntax tree.
//
// Parsing is fail-fast: the first token that cannot begin an expected
// construct produces a diagnostic and abandons the run. Parse therefore
// returns either a completed tree or diagnostics, never both.
type Parser struct {
	source string
	tokens []Token
	tok    TokenIndex

	nodes []Node
	extra []uint32
}

// Parse tokenizes and parses WGSL source. Exactly one of the results is
// set: a completed tree, or a non-empty diagnostic list.
func Parse(source string) (*Tree, diag.List) {
	tokens := NewLexer(source).Tokenize()

	p := &Parser{
		source: source,
		tokens: tokens,
		// Node estimate: roughly one node per two tokens.
		nodes: make([]Node, 0, len(tokens)/2+4),
		extra: make([]uint32, 0, len(tokens)/2+4),
	}
	return p.parse()
}

func (p *Parser) parse() (*Tree, diag.List) {
	// Node 0 is the root; extra[0] is a sentinel so that extra index 0
	// can mean "absent" everywhere else.
	p.nodes = append(p.nodes, Node{Kind: NodeRoot})
	p.extra = append(p.extra, 0)

	var decls []NodeIndex
	for p.kind() != TokenEOF {
		if p.kind() == TokenEnable {
			p.skipDirective()
			continue
		}
		decl, err := p.globalDecl()
		if err != nil {
			return nil, diag.List{*err}
		}
		decls = append(decls, decl)
	}

	start, end := p.addSpan(decls)
	p.nodes[0].LHS = start
	p.nodes[0].RHS = end

	return &Tree{
		Source: p.source,
		tokens: p.tokens,
		nodes:  p.nodes,
		extra:  p.extra,
	}, nil
}

// skipDirective consumes an enable directive up to and including the
// terminating semicolon. Directives produce no node.
func (p *Parser) skipDirective() {
	p.advance()
	for p.kind() != TokenSemicolon && p.kind() != TokenEOF {
		p.advance()
	}
	if p.kind() == TokenSemicolon {
		p.advance()
	}
}

// globalDecl parses one top-level declaration.
func (p *Parser) globalDecl() (NodeIndex, *diag.Diagnostic) {
	attrs, err := p.attributes()
	if err != nil {
		return 0, err
	}

	switch p.kind() {
	case TokenFn:
		return p.fnDecl(attrs)
	case TokenStruct:
		return p.structDecl(attrs)
	case TokenVar:
		return p.varDecl(attrs)
	case TokenConst, TokenLet:
		return p.constDecl(attrs)
	case TokenType, TokenAlias:
		if len(attrs) > 0 {
			return 0, p.errHere("expected declaration after attributes, found '%s'")
		}
		return p.aliasDecl()
	default:
		return 0, p.errHere("expected global declaration, found '%s'")
	}
}

// attributes parses a possibly empty run of attributes (@vertex,
// @location(0), ...) and returns their node indices.
func (p *Parser) attributes() ([]NodeIndex, *diag.Diagnostic) {
	var attrs []NodeIndex

	for p.kind() == TokenAt {
		p.advance() // consume @
		if p.kind() != TokenIdent {
			return nil, p.errHere("expected attribute name, found '%s'")
		}
		nameTok := p.advanceTok()

		var args []NodeIndex
		if p.accept(TokenLeftParen) {
			for p.kind() != TokenRightParen && p.kind() != TokenEOF {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.accept(TokenComma) {
					break
				}
			}
			if err := p.expect(TokenRightParen, "expected ')', found '%s'"); err != nil {
				return nil, err
			}
		}

		start, end := p.addSpan(args)
		attrs = append(attrs, p.addNode(Node{
			Kind:      NodeAttribute,
			MainToken: nameTok,
			LHS:       start,
			RHS:       end,
		}))
	}

	return attrs, nil
}

// fnDecl parses a function declaration.
func (p *Parser) fnDecl(attrs []NodeIndex) (NodeIndex, *diag.Diagnostic) {
	fnTok := p.advanceTok() // consume 'fn'

	// The name token is pinned at fnTok+1 by the grammar.
	if p.kind() != TokenIdent {
		return 0, p.errHere("expected function name, found '%s'")
	}
	p.advance()

	if err := p.expect(TokenLeftParen, "expected '(', found '%s'"); err != nil {
		return 0, err
	}

	var params []NodeIndex
	for p.kind() != TokenRightParen && p.kind() != TokenEOF {
		param, err := p.parameter()
		if err != nil {
			return 0, err
		}
		params = append(params, param)
		if !p.accept(TokenComma) {
			break
		}
	}
	if err := p.expect(TokenRightParen, "expected ')', found '%s'"); err != nil {
		return 0, err
	}

	var returnType NodeIndex
	var returnAttrs []NodeIndex
	if p.accept(TokenArrow) {
		ra, err := p.attributes()
		if err != nil {
			return 0, err
		}
		returnAttrs = ra
		rt, err := p.typeSpec()
		if err != nil {
			return 0, err
		}
		returnType = rt
	}

	body, err := p.block()
	if err != nil {
		return 0, err
	}

	attrsStart, attrsEnd := p.addSpan(attrs)
	paramsStart, paramsEnd := p.addSpan(params)
	retAttrsStart, retAttrsEnd := p.addSpan(returnAttrs)
	record := p.addExtra(
		attrsStart, attrsEnd,
		paramsStart, paramsEnd,
		retAttrsStart, retAttrsEnd,
		returnType,
	)

	return p.addNode(Node{
		Kind:      NodeFnDecl,
		MainToken: fnTok,
		LHS:       record,
		RHS:       body,
	}), nil
}

// parameter parses one function parameter.
func (p *Parser) parameter() (NodeIndex, *diag.Diagnostic) {
	attrs, err := p.attributes()
	if err != nil {
		return 0, err
	}

	if p.kind() != TokenIdent {
		return 0, p.errHere("expected parameter name, found '%s'")
	}
	nameTok := p.advanceTok()

	if err := p.expect(TokenColon, "expected ':', found '%s'"); err != nil {
		return 0, err
	}
	typeNode, err := p.typeSpec()
	if err != nil {
		return 0, err
	}

	return p.addNode(Node{
		Kind:      NodeParam,
		MainToken: nameTok,
		LHS:       typeNode,
		RHS:       p.addSubRange(attrs),
	}), nil
}

// structDecl parses a struct declaration. Member layout rules
// (runtime-sized array placement, member type legality) are the
// analyser's business; anything that parses is accepted here.
func (p *Parser) structDecl(attrs []NodeIndex) (NodeIndex, *diag.Diagnostic) {
	structTok := p.advanceTok() // consume 'struct'

	if p.kind() != TokenIdent {
		return 0, p.errHere("expected struct name, found '%s'")
	}
	p.advance() // name token is structTok+1

	if err := p.expect(TokenLeftBrace, "expected '{', found '%s'"); err != nil {
		return 0, err
	}

	var members []NodeIndex
	for p.kind() != TokenRightBrace && p.kind() != TokenEOF {
		member, err := p.structMember()
		if err != nil {
			return 0, err
		}
		members = append(members, member)
		// Comma between members, optional before '}'.
		if !p.accept(TokenComma) {
			break
		}
	}
	if err := p.expect(TokenRightBrace, "expected '}', found '%s'"); err != nil {
		return 0, err
	}

	return p.addNode(Node{
		Kind:      NodeStructDecl,
		MainToken: structTok,
		LHS:       p.addSubRange(members),
		RHS:       p.addSubRange(attrs),
	}), nil
}

// structMember parses one struct member: attributes, name, ':', type.
func (p *Parser) structMember() (NodeIndex, *diag.Diagnostic) {
	attrs, err := p.attributes()
	if err != nil {
		return 0, err
	}

	if p.kind() != TokenIdent {
		return 0, p.errHere("expected member name, found '%s'")
	}
	nameTok := p.advanceTok()

	if err := p.expect(TokenColon, "expected ':', found '%s'"); err != nil {
		return 0, err
	}
	typeNode, err := p.typeSpec()
	if err != nil {
		return 0, err
	}

	return p.addNode(Node{
		Kind:      NodeStructMember,
		MainToken: nameTok,
		LHS:       typeNode,
		RHS:       p.addSubRange(attrs),
	}), nil
}

// varDecl parses a var declaration (global or local).
func (p *Parser) varDecl(attrs []NodeIndex) (NodeIndex, *diag.Diagnostic) {
	varTok := p.advanceTok() // consume 'var'

	// Optional address space template: var<storage, read_write>
	var addrTok, accessTok TokenIndex
	if p.accept(TokenLess) {
		if p.kind() != TokenIdent {
			return 0, p.errHere("expected address space, found '%s'")
		}
		addrTok = p.advanceTok()
		if p.accept(TokenComma) {
			if p.kind() != TokenIdent {
				return 0, p.errHere("expected access mode, found '%s'")
			}
			accessTok = p.advanceTok()
		}
		if err := p.expectGreater(); err != nil {
			return 0, err
		}
	}

	return p.varTail(NodeVarDecl, varTok, addrTok, accessTok, attrs, false)
}

// constDecl parses a const or let declaration; both require an
// initializer.
func (p *Parser) constDecl(attrs []NodeIndex) (NodeIndex, *diag.Diagnostic) {
	kwTok := p.advanceTok() // consume 'const' or 'let'
	return p.varTail(NodeConstDecl, kwTok, 0, 0, attrs, true)
}

// varTail parses the common tail of var/const/let declarations:
// name, optional type annotation, optional (or required) initializer,
// terminating semicolon.
func (p *Parser) varTail(kind NodeKind, kwTok, addrTok, accessTok TokenIndex, attrs []NodeIndex, initRequired bool) (NodeIndex, *diag.Diagnostic) {
	if p.kind() != TokenIdent {
		return 0, p.errHere("expected variable name, found '%s'")
	}
	nameTok := p.advanceTok()

	var typeNode NodeIndex
	if p.accept(TokenColon) {
		t, err := p.typeSpec()
		if err != nil {
			return 0, err
		}
		typeNode = t
	}

	var initNode NodeIndex
	if initRequired {
		if err := p.expect(TokenEqual, "expected '=', found '%s'"); err != nil {
			return 0, err
		}
		e, err := p.expression()
		if err != nil {
			return 0, err
		}
		initNode = e
	} else if p.accept(TokenEqual) {
		e, err := p.expression()
		if err != nil {
			return 0, err
		}
		initNode = e
	}

	if err := p.expect(TokenSemicolon, "expected ';', found '%s'"); err != nil {
		return 0, err
	}

	record := p.addExtra(nameTok, typeNode, initNode, addrTok, accessTok)
	return p.addNode(Node{
		Kind:      kind,
		MainToken: kwTok,
		LHS:       record,
		RHS:       p.addSubRange(attrs),
	}), nil
}

// aliasDecl parses a type alias declaration: `type Name = T;`
// (the `alias` spelling is accepted as well).
func (p *Parser) aliasDecl() (NodeIndex, *diag.Diagnostic) {
	kwTok := p.advanceTok() // consume 'type' or 'alias'

	if p.kind() != TokenIdent {
		return 0, p.errHere("expected alias name, found '%s'")
	}
	nameTok := p.advanceTok()

	if err := p.expect(TokenEqual, "expected '=', found '%s'"); err != nil {
		return 0, err
	}
	typeNode, err := p.typeSpec()
	if err != nil {
		return 0, err
	}
	if err := p.expect(TokenSemicolon, "expected ';', found '%s'"); err != nil {
		return 0, err
	}

	return p.addNode(Node{
		Kind:      NodeTypeAlias,
		MainToken: kwTok,
		LHS:       nameTok,
		RHS:       typeNode,
	}), nil
}

// typeSpec parses a type expression.
func (p *Parser) typeSpec() (NodeIndex, *diag.Diagnostic) {
	switch {
	case p.kind() == TokenArray:
		arrayTok := p.advanceTok()
		if err := p.expect(TokenLess, "expected '<', found '%s'"); err != nil {
			return 0, err
		}
		elem, err := p.typeSpec()
		if err != nil {
			return 0, err
		}
		var size NodeIndex
		if p.accept(TokenComma) {
			// Size is a primary expression so a closing '>' is never
			// swallowed as a comparison operator.
			size, err = p.primary()
			if err != nil {
				return 0, err
			}
		}
		if err := p.expectGreater(); err != nil {
			return 0, err
		}
		return p.addNode(Node{
			Kind:      NodeArrayType,
			MainToken: arrayTok,
			LHS:       elem,
			RHS:       size, // 0 = runtime-sized
		}), nil

	case p.kind() == TokenPtr:
		ptrTok := p.advanceTok()
		if err := p.expect(TokenLess, "expected '<', found '%s'"); err != nil {
			return 0, err
		}
		if p.kind() != TokenIdent {
			return 0, p.errHere("expected address space, found '%s'")
		}
		addrTok := p.advanceTok()
		if err := p.expect(TokenComma, "expected ',', found '%s'"); err != nil {
			return 0, err
		}
		pointee, err := p.typeSpec()
		if err != nil {
			return 0, err
		}
		var accessTok TokenIndex
		if p.accept(TokenComma) {
			if p.kind() != TokenIdent {
				return 0, p.errHere("expected access mode, found '%s'")
			}
			accessTok = p.advanceTok()
		}
		if err := p.expectGreater(); err != nil {
			return 0, err
		}
		record := p.addExtra(addrTok, accessTok)
		return p.addNode(Node{
			Kind:      NodePtrType,
			MainToken: ptrTok,
			LHS:       pointee,
			RHS:       record,
		}), nil

	case p.kind().IsTypeKeyword() || p.kind() == TokenIdent:
		nameTok := p.advanceTok()
		var params []NodeIndex
		if p.accept(TokenLess) {
			for p.kind() != TokenGreater && p.kind() != TokenEOF {
				param, err := p.typeSpec()
				if err != nil {
					return 0, err
				}
				params = append(params, param)
				if !p.accept(TokenComma) {
					break
				}
			}
			if err := p.expectGreater(); err != nil {
				return 0, err
			}
		}
		start, end := p.addSpan(params)
		return p.addNode(Node{
			Kind:      NodeNamedType,
			MainToken: nameTok,
			LHS:       start,
			RHS:       end,
		}), nil

	default:
		return 0, p.errHere("expected type expression, found '%s'")
	}
}

// block parses a brace-delimited statement list.
func (p *Parser) block() (NodeIndex, *diag.Diagnostic) {
	braceTok := p.tok
	if err := p.expect(TokenLeftBrace, "expected '{', found '%s'"); err != nil {
		return 0, err
	}

	var stmts []NodeIndex
	for p.kind() != TokenRightBrace && p.kind() != TokenEOF {
		stmt, err := p.statement()
		if err != nil {
			return 0, err
		}
		stmts = append(stmts, stmt)
	}
	if err := p.expect(TokenRightBrace, "expected '}', found '%s'"); err != nil {
		return 0, err
	}

	start, end := p.addSpan(stmts)
	return p.addNode(Node{
		Kind:      NodeBlock,
		MainToken: braceTok,
		LHS:       start,
		RHS:       end,
	}), nil
}

// statement parses one statement.
func (p *Parser) statement() (NodeIndex, *diag.Diagnostic) {
	switch p.kind() {
	case TokenReturn:
		return p.returnStmt()
	case TokenIf:
		return p.ifStmt()
	case TokenFor:
		return p.forStmt()
	case TokenWhile:
		return p.whileStmt()
	case TokenLoop:
		return p.loopStmt()
	case TokenSwitch:
		return p.switchStmt()
	case TokenBreak:
		return p.keywordStmt(NodeBreak)
	case TokenContinue:
		return p.keywordStmt(NodeContinue)
	case TokenDiscard:
		return p.keywordStmt(NodeDiscard)
	case TokenVar:
		return p.varDecl(nil)
	case TokenConst, TokenLet:
		return p.constDecl(nil)
	case TokenLeftBrace:
		return p.block()
	default:
		stmt, err := p.exprOrAssign()
		if err != nil {
			return 0, err
		}
		if err := p.expect(TokenSemicolon, "expected ';', found '%s'"); err != nil {
			return 0, err
		}
		return stmt, nil
	}
}

func (p *Parser) returnStmt() (NodeIndex, *diag.Diagnostic) {
	retTok := p.advanceTok()

	var value NodeIndex
	if p.kind() != TokenSemicolon && p.kind() != TokenRightBrace {
		e, err := p.expression()
		if err != nil {
			return 0, err
		}
		value = e
	}
	if err := p.expect(TokenSemicolon, "expected ';', found '%s'"); err != nil {
		return 0, err
	}

	return p.addNode(Node{Kind: NodeReturn, MainToken: retTok, LHS: value}), nil
}

func (p *Parser) ifStmt() (NodeIndex, *diag.Diagnostic) {
	ifTok := p.advanceTok()

	cond, err := p.expression()
	if err != nil {
		return 0, err
	}
	then, err := p.block()
	if err != nil {
		return 0, err
	}

	var elseNode NodeIndex
	if p.accept(TokenElse) {
		if p.kind() == TokenIf {
			elseNode, err = p.ifStmt()
		} else {
			elseNode, err = p.block()
		}
		if err != nil {
			return 0, err
		}
	}

	record := p.addExtra(then, elseNode)
	return p.addNode(Node{Kind: NodeIf, MainToken: ifTok, LHS: cond, RHS: record}), nil
}

func (p *Parser) forStmt() (NodeIndex, *diag.Diagnostic) {
	forTok := p.advanceTok()

	if err := p.expect(TokenLeftParen, "expected '(', found '%s'"); err != nil {
		return 0, err
	}

	// Init clause, including its semicolon.
	var initNode NodeIndex
	if !p.accept(TokenSemicolon) {
		var err *diag.Diagnostic
		switch p.kind() {
		case TokenVar:
			initNode, err = p.varDecl(nil)
		case TokenConst, TokenLet:
			initNode, err = p.constDecl(nil)
		default:
			initNode, err = p.exprOrAssign()
			if err == nil {
				err = p.expect(TokenSemicolon, "expected ';', found '%s'")
			}
		}
		if err != nil {
			return 0, err
		}
	}

	var cond NodeIndex
	if p.kind() != TokenSemicolon {
		e, err := p.expression()
		if err != nil {
			return 0, err
		}
		cond = e
	}
	if err := p.expect(TokenSemicolon, "expected ';', found '%s'"); err != nil {
		return 0, err
	}

	var update NodeIndex
	if p.kind() != TokenRightParen {
		u, err := p.exprOrAssign()
		if err != nil {
			return 0, err
		}
		update = u
	}
	if err := p.expect(TokenRightParen, "expected ')', found '%s'"); err != nil {
		return 0, err
	}

	body, err := p.block()
	if err != nil {
		return 0, err
	}

	record := p.addExtra(initNode, cond, update)
	return p.addNode(Node{Kind: NodeFor, MainToken: forTok, LHS: record, RHS: body}), nil
}

func (p *Parser) whileStmt() (NodeIndex, *diag.Diagnostic) {
	whileTok := p.advanceTok()

	cond, err := p.expression()
	if err != nil {
		return 0, err
	}
	body, err := p.block()
	if err != nil {
		return 0, err
	}

	return p.addNode(Node{Kind: NodeWhile, MainToken: whileTok, LHS: cond, RHS: body}), nil
}

// loopStmt parses `loop { ... continuing { ... } }`. The continuing
// block, when present, closes the loop body.
func (p *Parser) loopStmt() (NodeIndex, *diag.Diagnostic) {
	loopTok := p.advanceTok()

	braceTok := p.tok
	if err := p.expect(TokenLeftBrace, "expected '{', found '%s'"); err != nil {
		return 0, err
	}

	var stmts []NodeIndex
	for p.kind() != TokenRightBrace && p.kind() != TokenContinuing && p.kind() != TokenEOF {
		stmt, err := p.statement()
		if err != nil {
			return 0, err
		}
		stmts = append(stmts, stmt)
	}

	var continuing NodeIndex
	if p.accept(TokenContinuing) {
		c, err := p.block()
		if err != nil {
			return 0, err
		}
		continuing = c
	}
	if err := p.expect(TokenRightBrace, "expected '}', found '%s'"); err != nil {
		return 0, err
	}

	start, end := p.addSpan(stmts)
	body := p.addNode(Node{Kind: NodeBlock, MainToken: braceTok, LHS: start, RHS: end})
	return p.addNode(Node{Kind: NodeLoop, MainToken: loopTok, LHS: body, RHS: continuing}), nil
}

func (p *Parser) switchStmt() (NodeIndex, *diag.Diagnostic) {
	switchTok := p.advanceTok()

	selector, err := p.expression()
	if err != nil {
		return 0, err
	}
	if err := p.expect(TokenLeftBrace, "expected '{', found '%s'"); err != nil {
		return 0, err
	}

	var cases []NodeIndex
	for p.kind() != TokenRightBrace && p.kind() != TokenEOF {
		c, err := p.caseClause()
		if err != nil {
			return 0, err
		}
		cases = append(cases, c)
	}
	if err := p.expect(TokenRightBrace, "expected '}', found '%s'"); err != nil {
		return 0, err
	}

	return p.addNode(Node{
		Kind:      NodeSwitch,
		MainToken: switchTok,
		LHS:       selector,
		RHS:       p.addSubRange(cases),
	}), nil
}

func (p *Parser) caseClause() (NodeIndex, *diag.Diagnostic) {
	kwTok := p.tok

	var selectors []NodeIndex
	switch p.kind() {
	case TokenDefault:
		p.advance()
	case TokenCase:
		p.advance()
		for {
			sel, err := p.expression()
			if err != nil {
				return 0, err
			}
			selectors = append(selectors, sel)
			if !p.accept(TokenComma) {
				break
			}
		}
	default:
		return 0, p.errHere("expected 'case' or 'default', found '%s'")
	}

	if err := p.expect(TokenColon, "expected ':', found '%s'"); err != nil {
		return 0, err
	}
	body, err := p.block()
	if err != nil {
		return 0, err
	}

	return p.addNode(Node{
		Kind:      NodeCase,
		MainToken: kwTok,
		LHS:       p.addSubRange(selectors), // 0 for default clauses
		RHS:       body,
	}), nil
}

func (p *Parser) keywordStmt(kind NodeKind) (NodeIndex, *diag.Diagnostic) {
	kwTok := p.advanceTok()
	if err := p.expect(TokenSemicolon, "expected ';', found '%s'"); err != nil {
		return 0, err
	}
	return p.addNode(Node{Kind: kind, MainToken: kwTok}), nil
}

// exprOrAssign parses an expression statement or an assignment. The
// terminating semicolon is the caller's job (for-loop update clauses
// have none).
func (p *Parser) exprOrAssign() (NodeIndex, *diag.Diagnostic) {
	left, err := p.expression()
	if err != nil {
		return 0, err
	}

	if isAssignOp(p.kind()) {
		opTok := p.advanceTok()
		right, err := p.expression()
		if err != nil {
			return 0, err
		}
		return p.addNode(Node{Kind: NodeAssign, MainToken: opTok, LHS: left, RHS: right}), nil
	}

	return left, nil
}

// Expression parsing: a precedence cascade, lowest binding first.
// Each level loops on its own operators, so grouping within a level is
// left-associative; parentheses restart the cascade in primary.

func (p *Parser) expression() (NodeIndex, *diag.Diagnostic) {
	return p.logicalOr()
}

// binaryLevel parses one precedence level: operands come from the next
// tighter level, and any operator in kinds folds left-associatively.
func (p *Parser) binaryLevel(next func() (NodeIndex, *diag.Diagnostic), kinds ...TokenKind) (NodeIndex, *diag.Diagnostic) {
	left, err := next()
	if err != nil {
		return 0, err
	}

	for {
		k := p.kind()
		matched := false
		for _, want := range kinds {
			if k == want {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}

		opTok := p.advanceTok()
		right, err := next()
		if err != nil {
			return 0, err
		}
		left = p.addNode(Node{
			Kind:      binaryNodeKind(k),
			MainToken: opTok,
			LHS:       left,
			RHS:       right,
		})
	}
}

func (p *Parser) logicalOr() (NodeIndex, *diag.Diagnostic) {
	return p.binaryLevel(p.logicalAnd, TokenPipePipe)
}

func (p *Parser) logicalAnd() (NodeIndex, *diag.Diagnostic) {
	return p.binaryLevel(p.bitwiseOr, TokenAmpAmp)
}

func (p *Parser) bitwiseOr() (NodeIndex, *diag.Diagnostic) {
	return p.binaryLevel(p.bitwiseXor, TokenPipe)
}

func (p *Parser) bitwiseXor() (NodeIndex, *diag.Diagnostic) {
	return p.binaryLevel(p.bitwiseAnd, TokenCaret)
}

func (p *Parser) bitwiseAnd() (NodeIndex, *diag.Diagnostic) {
	return p.binaryLevel(p.equality, TokenAmpersand)
}

func (p *Parser) equality() (NodeIndex, *diag.Diagnostic) {
	return p.binaryLevel(p.comparison, TokenEqualEqual, TokenBangEqual)
}

func (p *Parser) comparison() (NodeIndex, *diag.Diagnostic) {
	return p.binaryLevel(p.shift, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual)
}

func (p *Parser) shift() (NodeIndex, *diag.Diagnostic) {
	return p.binaryLevel(p.additive, TokenLessLess, TokenGreaterGreater)
}

func (p *Parser) additive() (NodeIndex, *diag.Diagnostic) {
	return p.binaryLevel(p.multiplicative, TokenPlus, TokenMinus)
}

func (p *Parser) multiplicative() (NodeIndex, *diag.Diagnostic) {
	return p.binaryLevel(p.unary, TokenStar, TokenSlash, TokenPercent)
}

func (p *Parser) unary() (NodeIndex, *diag.Diagnostic) {
	var kind NodeKind
	switch p.kind() {
	case TokenMinus:
		kind = NodeNegate
	case TokenBang:
		kind = NodeNot
	case TokenTilde:
		kind = NodeComplement
	case TokenAmpersand:
		kind = NodeAddressOf
	case TokenStar:
		kind = NodeDeref
	default:
		return p.postfix()
	}

	opTok := p.advanceTok()
	operand, err := p.unary()
	if err != nil {
		return 0, err
	}
	return p.addNode(Node{Kind: kind, MainToken: opTok, LHS: operand}), nil
}

// postfix parses calls, indexing and member access.
func (p *Parser) postfix() (NodeIndex, *diag.Diagnostic) {
	expr, err := p.primary()
	if err != nil {
		return 0, err
	}

	for {
		switch p.kind() {
		case TokenLeftParen:
			parenTok := p.advanceTok()
			var args []NodeIndex
			for p.kind() != TokenRightParen && p.kind() != TokenEOF {
				arg, err := p.expression()
				if err != nil {
					return 0, err
				}
				args = append(args, arg)
				if !p.accept(TokenComma) {
					break
				}
			}
			if err := p.expect(TokenRightParen, "expected ')', found '%s'"); err != nil {
				return 0, err
			}
			expr = p.addNode(Node{
				Kind:      NodeCall,
				MainToken: parenTok,
				LHS:       expr,
				RHS:       p.addSubRange(args),
			})

		case TokenLeftBracket:
			bracketTok := p.advanceTok()
			index, err := p.expression()
			if err != nil {
				return 0, err
			}
			if err := p.expect(TokenRightBracket, "expected ']', found '%s'"); err != nil {
				return 0, err
			}
			expr = p.addNode(Node{
				Kind:      NodeIndexExpr,
				MainToken: bracketTok,
				LHS:       expr,
				RHS:       index,
			})

		case TokenDot:
			p.advance()
			if p.kind() != TokenIdent {
				return 0, p.errHere("expected member name, found '%s'")
			}
			memberTok := p.advanceTok()
			expr = p.addNode(Node{
				Kind:      NodeFieldAccess,
				MainToken: memberTok,
				LHS:       expr,
			})

		default:
			return expr, nil
		}
	}
}

// primary parses leaf expressions: literals, identifiers, parenthesized
// expressions, and type constructors such as vec3<f32>(...).
func (p *Parser) primary() (NodeIndex, *diag.Diagnostic) {
	switch {
	case p.kind() == TokenIntLiteral:
		return p.addNode(Node{Kind: NodeIntLiteral, MainToken: p.advanceTok()}), nil

	case p.kind() == TokenFloatLiteral:
		return p.addNode(Node{Kind: NodeFloatLiteral, MainToken: p.advanceTok()}), nil

	case p.kind() == TokenTrue || p.kind() == TokenFalse:
		return p.addNode(Node{Kind: NodeBoolLiteral, MainToken: p.advanceTok()}), nil

	case p.kind() == TokenIdent:
		return p.addNode(Node{Kind: NodeIdentExpr, MainToken: p.advanceTok()}), nil

	case p.kind() == TokenLeftParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return 0, err
		}
		if err := p.expect(TokenRightParen, "expected ')', found '%s'"); err != nil {
			return 0, err
		}
		return expr, nil

	case p.kind().IsTypeKeyword():
		// Type constructor; the call itself is built by postfix.
		return p.typeSpec()

	default:
		return 0, p.errHere("expected expression, found '%s'")
	}
}

// Helper methods

func (p *Parser) kind() TokenKind {
	return p.tokens[p.tok].Kind
}

func (p *Parser) advance() {
	if p.kind() != TokenEOF {
		p.tok++
	}
}

// advanceTok consumes the current token and returns its index.
func (p *Parser) advanceTok() TokenIndex {
	tok := p.tok
	p.advance()
	return tok
}

// accept consumes the current token if it has the given kind.
func (p *Parser) accept(kind TokenKind) bool {
	if p.kind() == kind {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind or fails with the message
// template, which receives the found token's text.
func (p *Parser) expect(kind TokenKind, template string) *diag.Diagnostic {
	if p.kind() == kind {
		p.advance()
		return nil
	}
	return p.errHere(template)
}

// expectGreater consumes one '>' worth of the current token. A '>>',
// '>=' or '>>=' is split in place so the remaining characters stay
// available, in the usual C++/Rust manner; splitting '>=' lets
// `array<f32>=` close the generic and keep the '=' for the caller.
func (p *Parser) expectGreater() *diag.Diagnostic {
	switch p.kind() {
	case TokenGreater:
		p.advance()
		return nil
	case TokenGreaterGreater:
		t := p.tokens[p.tok]
		p.tokens[p.tok] = Token{
			Kind: TokenGreater,
			Loc:  diag.Loc{Start: t.Loc.Start + 1, End: t.Loc.End},
		}
		return nil
	case TokenGreaterGreaterEqual:
		t := p.tokens[p.tok]
		p.tokens[p.tok] = Token{
			Kind: TokenGreaterEqual,
			Loc:  diag.Loc{Start: t.Loc.Start + 1, End: t.Loc.End},
		}
		return nil
	case TokenGreaterEqual:
		t := p.tokens[p.tok]
		p.tokens[p.tok] = Token{
			Kind: TokenEqual,
			Loc:  diag.Loc{Start: t.Loc.Start + 1, End: t.Loc.End},
		}
		return nil
	default:
		return p.errHere("expected '>', found '%s'")
	}
}

// errHere builds a diagnostic at the current token from a message
// template taking the token's literal text.
func (p *Parser) errHere(template string) *diag.Diagnostic {
	tok := p.tokens[p.tok]
	text := tok.Loc.Text(p.source)
	if tok.Kind == TokenEOF {
		text = "EOF"
	}
	d := diag.Newf(tok.Loc, template, text)
	return &d
}

func (p *Parser) addNode(n Node) NodeIndex {
	i := NodeIndex(len(p.nodes))
	p.nodes = append(p.nodes, n)
	return i
}

func (p *Parser) addExtra(values ...uint32) ExtraIndex {
	i := ExtraIndex(len(p.extra))
	p.extra = append(p.extra, values...)
	return i
}

// addSpan copies the node indices into extra and returns the bounds.
func (p *Parser) addSpan(items []NodeIndex) (start, end ExtraIndex) {
	start = ExtraIndex(len(p.extra))
	p.extra = append(p.extra, items...)
	return start, ExtraIndex(len(p.extra))
}

// addSubRange copies the node indices into extra followed by a
// {start, end} record and returns the record's index.
func (p *Parser) addSubRange(items []NodeIndex) ExtraIndex {
	if len(items) == 0 {
		return 0
	}
	start, end := p.addSpan(items)
	return p.addExtra(start, end)
}

func binaryNodeKind(op TokenKind) NodeKind {
	switch op {
	case TokenPlus:
		return NodeAdd
	case TokenMinus:
		return NodeSub
	case TokenStar:
		return NodeMul
	case TokenSlash:
		return NodeDiv
	case TokenPercent:
		return NodeMod
	case TokenLessLess:
		return NodeShiftLeft
	case TokenGreaterGreater:
		return NodeShiftRight
	case TokenLess:
		return NodeLess
	case TokenLessEqual:
		return NodeLessEqual
	case TokenGreater:
		return NodeGreater
	case TokenGreaterEqual:
		return NodeGreaterEqual
	case TokenEqualEqual:
		return NodeEqual
	case TokenBangEqual:
		return NodeNotEqual
	case TokenAmpersand:
		return NodeBitAnd
	case TokenPipe:
		return NodeBitOr
	case TokenCaret:
		return NodeBitXor
	case TokenAmpAmp:
		return NodeLogicalAnd
	case TokenPipePipe:
		return NodeLogicalOr
	}
	panic(fmt.Sprintf("wgsl: no binary node kind for token %s", op))
}

func isAssignOp(kind TokenKind) bool {
	switch kind {
	case TokenEqual, TokenPlusEqual, TokenMinusEqual, TokenStarEqual,
		TokenSlashEqual, TokenPercentEqual, TokenAmpEqual, TokenPipeEqual,
		TokenCaretEqual, TokenLessLessEqual, TokenGreaterGreaterEqual:
		return true
	}
	return false
}
