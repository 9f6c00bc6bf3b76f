// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package lexer

func types(t ...TokenType) []TokenType { return t }

// ConfGrammar tokenizes kitty.conf style files: "name value" lines,
// map/symbol_map declarations, include directives and comments.
var ConfGrammar = Grammar{
	Name:      "Conf",
	Aliases:   []string{"conf"},
	Filenames: []string{"*.conf"},
	States: map[string][]Rule{
		"root": {
			{Pattern: `#.*?$`, Types: types(TokenCommentSingle)},
			{Pattern: `\s+$`, Types: types(TokenWhitespace)},
			{Pattern: `\s+`, Types: types(TokenWhitespace)},
			{Pattern: `(include)(\s+)(.+?)$`, Types: types(TokenCommentPreproc, TokenWhitespace, TokenNameNamespace)},
			{Pattern: `(map)(\s+)(\S+)(\s+)`, Types: types(TokenKeywordDeclaration, TokenWhitespace, TokenString, TokenWhitespace), Next: "action"},
			{Pattern: `(symbol_map)(\s+)(\S+)(\s+)(.+?)$`, Types: types(TokenKeywordDeclaration, TokenWhitespace, TokenString, TokenWhitespace, TokenLiteral)},
			{Pattern: `([a-zA-Z_0-9]+)(\s+)`, Types: types(TokenNameVariable, TokenWhitespace), Next: "args"},
		},
		"action": {
			{Pattern: `[a-z_0-9]+$`, Types: types(TokenNameFunction), Next: "root"},
			{Pattern: `[a-z_0-9]+`, Types: types(TokenNameFunction), Next: "args"},
		},
		"args": {
			{Pattern: `\s+`, Types: types(TokenWhitespace)},
			{Pattern: `\b(yes|no)\b$`, Types: types(TokenNumberBin), Next: "root"},
			{Pattern: `\b(yes|no)\b`, Types: types(TokenNumberBin)},
			{Pattern: `[+-]?[0-9]+\s*$`, Types: types(TokenNumberInteger), Next: "root"},
			{Pattern: `[+-]?[0-9.]+\s*$`, Types: types(TokenNumberFloat), Next: "root"},
			{Pattern: `[+-]?[0-9]+`, Types: types(TokenNumberInteger)},
			{Pattern: `[+-]?[0-9.]+`, Types: types(TokenNumberFloat)},
			{Pattern: `#[a-fA-F0-9]{3,6}\s*$`, Types: types(TokenString), Next: "root"},
			{Pattern: `#[a-fA-F0-9]{3,6}\s*`, Types: types(TokenString)},
			{Pattern: `.+`, Types: types(TokenString), Next: "root"},
		},
	},
}

// SessionGrammar tokenizes kitty session files: one command per line.
var SessionGrammar = Grammar{
	Name:      "Session",
	Aliases:   []string{"session"},
	Filenames: []string{"*.session"},
	States: map[string][]Rule{
		"root": {
			{Pattern: `#.*?$`, Types: types(TokenCommentSingle)},
			{Pattern: `[a-z][a-z0-9_]+`, Types: types(TokenNameFunction), Next: "args"},
		},
		"args": {
			{Pattern: `.*?$`, Types: types(TokenLiteral), Next: "root"},
		},
	},
}

// Conf and Session are the compiled built-in lexers.
var (
	Conf    = MustNew(ConfGrammar)
	Session = MustNew(SessionGrammar)
)
