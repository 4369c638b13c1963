package cliapp

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandFiles resolves each argument to a list of real files. The stdin
// marker "-" and arguments without glob metacharacters pass through
// unchanged; anything containing *, ?, or [ is matched against the local
// filesystem with doublestar, which understands "**" for recursive
// descent.
func ExpandFiles(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		if a == "-" || !hasGlobMeta(a) {
			out = append(out, a)
			continue
		}
		matches, err := doublestar.FilepathGlob(a)
		if err != nil {
			return nil, fmt.Errorf("cliapp: expanding glob %q: %w", a, err)
		}
		out = append(out, matches...)
	}
	return out, nil
}

func hasGlobMeta(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[':
			return true
		}
	}
	return false
}
