// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package lexer provides table-driven tokenizers for kitty's configuration
// and session file syntaxes, and an HTML formatter for their output.
package lexer

// TokenType represents the semantic type of a token.
// Names follow the Pygments token hierarchy so existing stylesheets apply.
type TokenType uint16

const (
	TokenText TokenType = iota
	TokenWhitespace
	TokenError

	// Comments
	TokenComment
	TokenCommentSingle
	TokenCommentPreproc

	// Keywords
	TokenKeyword
	TokenKeywordDeclaration

	// Names
	TokenName
	TokenNameVariable
	TokenNameFunction
	TokenNameNamespace

	// Literals
	TokenLiteral
	TokenString
	TokenNumber
	TokenNumberBin
	TokenNumberInteger
	TokenNumberFloat

	// Sentinel for iteration
	tokenTypeCount
)

var tokenTypeNames = [tokenTypeCount]string{
	TokenText:               "Text",
	TokenWhitespace:         "Text.Whitespace",
	TokenError:              "Error",
	TokenComment:            "Comment",
	TokenCommentSingle:      "Comment.Single",
	TokenCommentPreproc:     "Comment.Preproc",
	TokenKeyword:            "Keyword",
	TokenKeywordDeclaration: "Keyword.Declaration",
	TokenName:               "Name",
	TokenNameVariable:       "Name.Variable",
	TokenNameFunction:       "Name.Function",
	TokenNameNamespace:      "Name.Namespace",
	TokenLiteral:            "Literal",
	TokenString:             "Literal.String",
	TokenNumber:             "Literal.Number",
	TokenNumberBin:          "Literal.Number.Bin",
	TokenNumberInteger:      "Literal.Number.Integer",
	TokenNumberFloat:        "Literal.Number.Float",
}

// Short CSS classes used by Pygments HTML output.
var tokenTypeClasses = [tokenTypeCount]string{
	TokenText:               "",
	TokenWhitespace:         "w",
	TokenError:              "err",
	TokenComment:            "c",
	TokenCommentSingle:      "c1",
	TokenCommentPreproc:     "cp",
	TokenKeyword:            "k",
	TokenKeywordDeclaration: "kd",
	TokenName:               "n",
	TokenNameVariable:       "nv",
	TokenNameFunction:       "nf",
	TokenNameNamespace:      "nn",
	TokenLiteral:            "l",
	TokenString:             "s",
	TokenNumber:             "m",
	TokenNumberBin:          "mb",
	TokenNumberInteger:      "mi",
	TokenNumberFloat:        "mf",
}

// String returns the Pygments name of the token type.
func (t TokenType) String() string {
	if t < tokenTypeCount {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// Class returns the CSS class of the token type.
func (t TokenType) Class() string {
	if t < tokenTypeCount {
		return tokenTypeClasses[t]
	}
	return ""
}

// TokenTypeFromString returns the token type with the given Pygments name,
// or TokenText.
func TokenTypeFromString(name string) TokenType {
	for i, n := range tokenTypeNames {
		if n == name {
			return TokenType(i)
		}
	}
	return TokenText
}

// Token is one lexed span of the input.
type Token struct {
	Type TokenType

	// Offset is the byte offset of Text in the input.
	Offset int

	Text string
}
