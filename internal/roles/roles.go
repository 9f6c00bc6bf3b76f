// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package roles implements the inline reST roles that link into the
// project's GitHub repository: iss, pull, commit and link.
package roles

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"grimm.is/docgen/internal/errors"
)

// Hyperlink is what a role expands to.
type Hyperlink struct {
	Title string
	URI   string
}

// CommitResolver turns a commit-ish into its full and abbreviated ids.
type CommitResolver interface {
	Resolve(ctx context.Context, id string) (full, short string, err error)
}

// Roles expands repository roles for one GitHub repository.
type Roles struct {
	user    string
	repo    string
	commits CommitResolver

	mu    sync.Mutex
	cache map[string]Hyperlink
}

// New creates Roles for github.com/<user>/<repo>. A nil resolver makes
// every commit role fail.
func New(user, repo string, commits CommitResolver) *Roles {
	return &Roles{user: user, repo: repo, commits: commits, cache: make(map[string]Hyperlink)}
}

// Names lists the roles handled by Apply.
func Names() []string {
	return []string{"iss", "pull", "commit", "link"}
}

// Apply expands role applied to text. It reports false when role is not
// one of Names. A non-nil error is a user-facing diagnostic message.
func (r *Roles) Apply(ctx context.Context, role, text string) (Hyperlink, bool, error) {
	var (
		link Hyperlink
		err  error
	)
	switch role {
	case "iss":
		link, err = r.Issue("issues", text)
	case "pull":
		link, err = r.Issue("pull", text)
	case "commit":
		link, err = r.Commit(ctx, text)
	case "link":
		link, err = ParseLink(text)
	default:
		return Hyperlink{}, false, nil
	}
	return link, true, err
}

// Issue links to an issue or pull request. which is the URL path segment:
// "issues" or "pull".
func (r *Roles) Issue(which, text string) (Hyperlink, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return Hyperlink{}, errors.Errorf(errors.KindValidation,
			"GitHub issue number must be a number greater than or equal to 1; \"%s\" is invalid.", text)
	}
	return Hyperlink{
		Title: "#" + strconv.Itoa(n),
		URI:   fmt.Sprintf("https://github.com/%s/%s/%s/%d", r.user, r.repo, which, n),
	}, nil
}

// Commit links to a commit, resolving text with the CommitResolver.
// Results are cached per text.
func (r *Roles) Commit(ctx context.Context, text string) (Hyperlink, error) {
	r.mu.Lock()
	link, ok := r.cache[text]
	r.mu.Unlock()
	if ok {
		return link, nil
	}

	notFound := errors.Errorf(errors.KindNotFound, "GitHub commit id \"%s\" not recognized.", text)
	if r.commits == nil {
		return Hyperlink{}, notFound
	}
	full, short, err := r.commits.Resolve(ctx, strings.TrimSpace(text))
	if err != nil || full == "" {
		return Hyperlink{}, notFound
	}

	link = Hyperlink{
		Title: "commit: " + short,
		URI:   fmt.Sprintf("https://github.com/%s/%s/commit/%s", r.user, r.repo, full),
	}
	r.mu.Lock()
	r.cache[text] = link
	r.mu.Unlock()
	return link, nil
}

var linkRe = regexp.MustCompile(`^(.+)\s+<(.+?)>`)

// ParseLink parses "title <url>".
func ParseLink(text string) (Hyperlink, error) {
	m := linkRe.FindStringSubmatch(text)
	if m == nil {
		return Hyperlink{}, errors.Errorf(errors.KindValidation, "link \"%s\" not recognized", text)
	}
	return Hyperlink{Title: m[1], URI: m[2]}, nil
}
