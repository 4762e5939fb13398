// Copyright © 2018 The ELPS authors

package repl

import (
	"strings"

	"github.com/luthersystems/minilisp/lisp"
)

// symbolDelims separate the symbol under the cursor from the rest of the
// line.
const symbolDelims = " \t\n('"

// symbolCompleter offers global names of env as completions for the symbol
// being typed.  It implements readline.AutoCompleter.
type symbolCompleter struct {
	env *lisp.Environment
}

// Do returns the untyped remainder of each global name that extends the
// symbol ending at pos, along with the length of that symbol.
func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	typed := string(line[:pos])
	prefix := typed[strings.LastIndexAny(typed, symbolDelims)+1:]
	if prefix == "" {
		return nil, 0
	}
	var suffixes [][]rune
	for _, name := range c.env.Globals() {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			suffixes = append(suffixes, []rune(rest))
		}
	}
	if len(suffixes) == 0 {
		return nil, 0
	}
	return suffixes, len([]rune(prefix))
}
