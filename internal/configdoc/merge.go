// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

// Merger reports the options documented together with current, which sits
// at index in all. The result starts with current. An empty result is
// treated as just current.
type Merger func(all []Definition, current *Option, index int) []*Option

// DefaultMerger merges an option with the options directly after it that
// share its group, are documented, and carry no description of their own
// (color0 followed by color1..color15, say).
func DefaultMerger(all []Definition, current *Option, index int) []*Option {
	run := []*Option{current}
	for _, d := range all[index+1:] {
		o, ok := d.(*Option)
		if !ok || o.Group != current.Group || !o.AddToDocs || o.LongText != "" {
			break
		}
		run = append(run, o)
	}
	return run
}

// NoMerge documents every option on its own.
func NoMerge(_ []Definition, current *Option, _ int) []*Option {
	return []*Option{current}
}
