package wgsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/wgslc/diag"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"+ - * /", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenEOF}},
		{"( ) { }", []TokenKind{TokenLeftParen, TokenRightParen, TokenLeftBrace, TokenRightBrace, TokenEOF}},
		{"[ ] , .", []TokenKind{TokenLeftBracket, TokenRightBracket, TokenComma, TokenDot, TokenEOF}},
		{": ; @", []TokenKind{TokenColon, TokenSemicolon, TokenAt, TokenEOF}},
	}

	for _, tt := range tests {
		tokens := NewLexer(tt.input).Tokenize()
		assert.Equal(t, tt.expected, kinds(tokens), "input %q", tt.input)
	}
}

func TestLexerOperatorsLongestMatch(t *testing.T) {
	input := "== != <= >= && || << >> -> <<= >>= ^ ^="
	expected := []TokenKind{
		TokenEqualEqual, TokenBangEqual, TokenLessEqual, TokenGreaterEqual,
		TokenAmpAmp, TokenPipePipe, TokenLessLess, TokenGreaterGreater,
		TokenArrow, TokenLessLessEqual, TokenGreaterGreaterEqual,
		TokenCaret, TokenCaretEqual, TokenEOF,
	}

	tokens := NewLexer(input).Tokenize()
	assert.Equal(t, expected, kinds(tokens))
}

func TestLexerKeywords(t *testing.T) {
	input := "fn struct var let const type alias return if else for while true false"
	expected := []TokenKind{
		TokenFn, TokenStruct, TokenVar, TokenLet, TokenConst,
		TokenType, TokenAlias, TokenReturn, TokenIf, TokenElse,
		TokenFor, TokenWhile, TokenTrue, TokenFalse, TokenEOF,
	}

	tokens := NewLexer(input).Tokenize()
	assert.Equal(t, expected, kinds(tokens))
}

func TestLexerTypeKeywords(t *testing.T) {
	input := "f32 i32 u32 bool vec3 mat4x4 array ptr sampler texture_2d"
	expected := []TokenKind{
		TokenF32, TokenI32, TokenU32, TokenBool, TokenVec3, TokenMat4x4,
		TokenArray, TokenPtr, TokenSampler, TokenTexture2d, TokenEOF,
	}

	tokens := NewLexer(input).Tokenize()
	assert.Equal(t, expected, kinds(tokens))
}

func TestLexerIdentifiersVsKeywords(t *testing.T) {
	tokens := NewLexer("varying var variant").Tokenize()
	expected := []TokenKind{TokenIdent, TokenVar, TokenIdent, TokenEOF}
	assert.Equal(t, expected, kinds(tokens))
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenKind
	}{
		{"42", TokenIntLiteral},
		{"42u", TokenIntLiteral},
		{"42i", TokenIntLiteral},
		{"0x1F", TokenIntLiteral},
		{"1.0", TokenFloatLiteral},
		{"1.", TokenFloatLiteral},
		{"1.5e3", TokenFloatLiteral},
		{"1e-3", TokenFloatLiteral},
		{"1f", TokenFloatLiteral},
		{"2h", TokenFloatLiteral},
	}

	for _, tt := range tests {
		tokens := NewLexer(tt.input).Tokenize()
		require.Len(t, tokens, 2, "input %q", tt.input)
		assert.Equal(t, tt.expected, tokens[0].Kind, "input %q", tt.input)
		assert.Equal(t, diag.Loc{Start: 0, End: uint32(len(tt.input))}, tokens[0].Loc, "input %q", tt.input)
	}
}

func TestLexerMemberAccessOnInt(t *testing.T) {
	// "1.x" is int 1, dot, ident x - not a float literal.
	tokens := NewLexer("1.x").Tokenize()
	expected := []TokenKind{TokenIntLiteral, TokenDot, TokenIdent, TokenEOF}
	assert.Equal(t, expected, kinds(tokens))
}

func TestLexerByteSpans(t *testing.T) {
	source := "var expr = 1;"
	tokens := NewLexer(source).Tokenize()

	require.Len(t, tokens, 6)
	assert.Equal(t, diag.Loc{Start: 0, End: 3}, tokens[0].Loc)   // var
	assert.Equal(t, diag.Loc{Start: 4, End: 8}, tokens[1].Loc)   // expr
	assert.Equal(t, diag.Loc{Start: 9, End: 10}, tokens[2].Loc)  // =
	assert.Equal(t, diag.Loc{Start: 11, End: 12}, tokens[3].Loc) // 1
	assert.Equal(t, diag.Loc{Start: 12, End: 13}, tokens[4].Loc) // ;
	assert.Equal(t, "expr", tokens[1].Loc.Text(source))
}

func TestLexerComments(t *testing.T) {
	source := "var // trailing comment\n/* block /* nested */ */ x"
	tokens := NewLexer(source).Tokenize()
	expected := []TokenKind{TokenVar, TokenIdent, TokenEOF}
	assert.Equal(t, expected, kinds(tokens))
}

func TestLexerInvalidCharacter(t *testing.T) {
	tokens := NewLexer("#").Tokenize()

	require.Len(t, tokens, 2)
	assert.Equal(t, TokenError, tokens[0].Kind)
	assert.Equal(t, diag.Loc{Start: 0, End: 1}, tokens[0].Loc)
}

func TestLexerEmptyInput(t *testing.T) {
	tokens := NewLexer("").Tokenize()

	require.Len(t, tokens, 1)
	assert.Equal(t, TokenEOF, tokens[0].Kind)
	assert.Equal(t, diag.Loc{Start: 0, End: 0}, tokens[0].Loc)
}

func TestLexerEOFLocIsBufferEnd(t *testing.T) {
	source := "var x = 1;"
	tokens := NewLexer(source).Tokenize()

	last := tokens[len(tokens)-1]
	assert.Equal(t, TokenEOF, last.Kind)
	assert.Equal(t, uint32(len(source)), last.Loc.Start)
}
