// Package wgsl provides WGSL (WebGPU Shading Language) parsing.
package wgsl

import "github.com/gogpu/wgslc/diag"

// TokenIndex identifies a token by its position in the token sequence.
// It is the universal "where in source" reference for tree nodes.
type TokenIndex = uint32

// TokenKind represents the lexical category of a token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral

	// Operators
	TokenPlus                // +
	TokenMinus               // -
	TokenStar                // *
	TokenSlash               // /
	TokenPercent             // %
	TokenAmpersand           // &
	TokenPipe                // |
	TokenCaret               // ^
	TokenTilde               // ~
	TokenBang                // !
	TokenEqual               // =
	TokenLess                // <
	TokenGreater             // >
	TokenDot                 // .
	TokenComma               // ,
	TokenColon               // :
	TokenSemicolon           // ;
	TokenAt                  // @
	TokenArrow               // ->
	TokenEqualEqual          // ==
	TokenBangEqual           // !=
	TokenLessEqual           // <=
	TokenGreaterEqual        // >=
	TokenAmpAmp              // &&
	TokenPipePipe            // ||
	TokenLessLess            // <<
	TokenGreaterGreater      // >>
	TokenPlusEqual           // +=
	TokenMinusEqual          // -=
	TokenStarEqual           // *=
	TokenSlashEqual          // /=
	TokenPercentEqual        // %=
	TokenAmpEqual            // &=
	TokenPipeEqual           // |=
	TokenCaretEqual          // ^=
	TokenLessLessEqual       // <<=
	TokenGreaterGreaterEqual // >>=

	// Delimiters
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]

	// Keywords
	TokenAlias
	TokenBreak
	TokenCase
	TokenConst
	TokenContinue
	TokenContinuing
	TokenDefault
	TokenDiscard
	TokenElse
	TokenEnable
	TokenFalse
	TokenFn
	TokenFor
	TokenIf
	TokenLet
	TokenLoop
	TokenReturn
	TokenStruct
	TokenSwitch
	TokenTrue
	TokenType
	TokenVar
	TokenWhile

	// Type keywords
	TokenBool
	TokenF16
	TokenF32
	TokenI32
	TokenU32
	TokenVec2
	TokenVec3
	TokenVec4
	TokenMat2x2
	TokenMat2x3
	TokenMat2x4
	TokenMat3x2
	TokenMat3x3
	TokenMat3x4
	TokenMat4x2
	TokenMat4x3
	TokenMat4x4
	TokenArray
	TokenAtomic
	TokenPtr
	TokenSampler
	TokenSamplerComparison
	TokenTexture1d
	TokenTexture2d
	TokenTexture2dArray
	TokenTexture3d
	TokenTextureCube
	TokenTextureCubeArray
	TokenTextureMultisampled2d
	TokenTextureStorage1d
	TokenTextureStorage2d
	TokenTextureStorage2dArray
	TokenTextureStorage3d
	TokenTextureDepth2d
	TokenTextureDepth2dArray
	TokenTextureDepthCube
	TokenTextureDepthCubeArray
	TokenTextureDepthMultisampled2d
)

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "Error"
	case TokenIdent:
		return "Ident"
	case TokenIntLiteral:
		return "IntLiteral"
	case TokenFloatLiteral:
		return "FloatLiteral"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenPercent:
		return "%"
	case TokenAmpersand:
		return "&"
	case TokenPipe:
		return "|"
	case TokenCaret:
		return "^"
	case TokenTilde:
		return "~"
	case TokenBang:
		return "!"
	case TokenEqual:
		return "="
	case TokenLess:
		return "<"
	case TokenGreater:
		return ">"
	case TokenDot:
		return "."
	case TokenComma:
		return ","
	case TokenColon:
		return ":"
	case TokenSemicolon:
		return ";"
	case TokenAt:
		return "@"
	case TokenArrow:
		return "->"
	case TokenEqualEqual:
		return "=="
	case TokenBangEqual:
		return "!="
	case TokenLessEqual:
		return "<="
	case TokenGreaterEqual:
		return ">="
	case TokenAmpAmp:
		return "&&"
	case TokenPipePipe:
		return "||"
	case TokenLessLess:
		return "<<"
	case TokenGreaterGreater:
		return ">>"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenLeftBrace:
		return "{"
	case TokenRightBrace:
		return "}"
	case TokenLeftBracket:
		return "["
	case TokenRightBracket:
		return "]"
	case TokenAlias:
		return "alias"
	case TokenConst:
		return "const"
	case TokenFn:
		return "fn"
	case TokenLet:
		return "let"
	case TokenStruct:
		return "struct"
	case TokenType:
		return "type"
	case TokenVar:
		return "var"
	case TokenReturn:
		return "return"
	case TokenIf:
		return "if"
	case TokenElse:
		return "else"
	case TokenFor:
		return "for"
	case TokenWhile:
		return "while"
	case TokenLoop:
		return "loop"
	case TokenSwitch:
		return "switch"
	default:
		return "Unknown"
	}
}

// IsTypeKeyword reports whether the kind is a builtin type keyword.
func (k TokenKind) IsTypeKeyword() bool {
	return k >= TokenBool && k <= TokenTextureDepthMultisampled2d
}

// IsOpaqueType reports whether the kind names an opaque handle type
// (samplers and textures). Opaque handles are bind-group resources and
// never legal as struct member types.
func (k TokenKind) IsOpaqueType() bool {
	return k >= TokenSampler && k <= TokenTextureDepthMultisampled2d
}

// Token represents a lexical token. Only the kind and the byte span are
// stored; the token text and line/column data are derived from the
// source buffer on demand.
type Token struct {
	Kind TokenKind
	Loc  diag.Loc
}
