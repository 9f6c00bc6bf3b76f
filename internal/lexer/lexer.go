// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package lexer

import (
	"regexp"
	"sort"
	"unicode/utf8"

	"grimm.is/docgen/internal/errors"
)

// RootState is the state every lexer starts in.
const RootState = "root"

// Rule is one row of a state table.
type Rule struct {
	// Pattern is matched at the current position, in multi-line mode.
	Pattern string

	// Types holds one type for the whole match, or one per capture group.
	Types []TokenType

	// Next is the state to switch to after a match; empty stays.
	Next string
}

// Grammar describes a lexer as a set of named state tables.
type Grammar struct {
	Name      string
	Aliases   []string
	Filenames []string
	States    map[string][]Rule
}

type compiledRule struct {
	re    *regexp.Regexp
	types []TokenType
	next  string
}

// Lexer tokenizes text with a compiled Grammar. It is safe for concurrent use.
type Lexer struct {
	name      string
	aliases   []string
	filenames []string
	states    map[string][]compiledRule
}

// New compiles g.
func New(g Grammar) (*Lexer, error) {
	if _, ok := g.States[RootState]; !ok {
		return nil, errors.Errorf(errors.KindValidation, "grammar %s has no %s state", g.Name, RootState)
	}

	l := &Lexer{
		name:      g.Name,
		aliases:   g.Aliases,
		filenames: g.Filenames,
		states:    make(map[string][]compiledRule, len(g.States)),
	}
	for state, rules := range g.States {
		compiled := make([]compiledRule, 0, len(rules))
		for i, r := range rules {
			re, err := regexp.Compile(`\A(?m:` + r.Pattern + `)`)
			if err != nil {
				return nil, errors.Wrapf(err, errors.KindValidation, "grammar %s: state %s rule %d", g.Name, state, i)
			}
			if len(r.Types) == 0 || (len(r.Types) > 1 && len(r.Types) != re.NumSubexp()) {
				return nil, errors.Errorf(errors.KindValidation, "grammar %s: state %s rule %d: %d types for %d groups",
					g.Name, state, i, len(r.Types), re.NumSubexp())
			}
			if r.Next != "" {
				if _, ok := g.States[r.Next]; !ok {
					return nil, errors.Errorf(errors.KindValidation, "grammar %s: state %s rule %d: unknown state %q", g.Name, state, i, r.Next)
				}
			}
			compiled = append(compiled, compiledRule{re: re, types: r.Types, next: r.Next})
		}
		l.states[state] = compiled
	}
	return l, nil
}

// MustNew is like New but panics on an invalid grammar.
func MustNew(g Grammar) *Lexer {
	l, err := New(g)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the lexer's display name.
func (l *Lexer) Name() string { return l.name }

// Aliases returns the short names the lexer is registered under.
func (l *Lexer) Aliases() []string { return l.aliases }

// Filenames returns the filename globs the lexer handles.
func (l *Lexer) Filenames() []string { return l.filenames }

// States returns the state names, sorted.
func (l *Lexer) States() []string {
	out := make([]string, 0, len(l.states))
	for s := range l.states {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Tokenize splits text into tokens. The rules of the current state are
// tried in order; the first match wins. When nothing matches, a newline
// resets to the root state and anything else becomes a one-rune Error
// token. The token texts always concatenate back to text.
func (l *Lexer) Tokenize(text string) []Token {
	var tokens []Token
	emit := func(t TokenType, offset int, s string) {
		if s != "" {
			tokens = append(tokens, Token{Type: t, Offset: offset, Text: s})
		}
	}

	state := RootState
	pos := 0
	emptyAt := -1

	for pos < len(text) {
		matched := false
		for _, rule := range l.states[state] {
			loc := rule.re.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				continue
			}
			if loc[1] == 0 {
				// An empty match may only switch state, once per position.
				if rule.next == "" || emptyAt == pos {
					continue
				}
				emptyAt = pos
			}

			if len(rule.types) == 1 {
				emit(rule.types[0], pos, text[pos:pos+loc[1]])
			} else {
				cursor := 0
				for g, typ := range rule.types {
					start, end := loc[2+2*g], loc[3+2*g]
					if start < 0 || start < cursor {
						continue
					}
					emit(TokenText, pos+cursor, text[pos+cursor:pos+start])
					emit(typ, pos+start, text[pos+start:pos+end])
					cursor = end
				}
				emit(TokenText, pos+cursor, text[pos+cursor:pos+loc[1]])
			}

			pos += loc[1]
			if rule.next != "" {
				state = rule.next
			}
			matched = true
			break
		}
		if matched {
			continue
		}

		if text[pos] == '\n' {
			state = RootState
			emit(TokenWhitespace, pos, "\n")
			pos++
			continue
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		emit(TokenError, pos, text[pos:pos+size])
		pos += size
	}
	return tokens
}
