// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"regexp"
	"strings"
)

var (
	optRefRe   = regexp.MustCompile(":opt:`(.+?)`")
	roleRe     = regexp.MustCompile(":([a-z]+):`([^`]+)`")
	explicitRe = regexp.MustCompile(`^(.+?)\s*<[^<>]+>$`)
	literalRe  = regexp.MustCompile("``([^`]+)``")
)

// ExpandOptReferences qualifies bare :opt: references in text with the
// namespace ns. References that already contain a dot or an explicit
// <target> are left alone.
func ExpandOptReferences(ns, text string) string {
	return optRefRe.ReplaceAllStringFunc(text, func(m string) string {
		ref := optRefRe.FindStringSubmatch(m)[1]
		if strings.ContainsAny(ref, "<.") {
			return m
		}
		return ":opt:`" + ref + " <" + ns + "." + ref + ">`"
	})
}

// RemoveMarkup strips reST inline markup for plain-text output: roles
// become their title, literals lose their backquotes.
func RemoveMarkup(text string) string {
	text = roleRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := roleRe.FindStringSubmatch(m)
		role, body := sub[1], sub[2]
		if t := explicitRe.FindStringSubmatch(body); t != nil {
			body = t[1]
		}
		switch role {
		case "iss", "pull":
			return "#" + body
		case "commit":
			return "commit " + body
		default:
			return body
		}
	})
	return literalRe.ReplaceAllString(text, "$1")
}
