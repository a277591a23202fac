package config

import (
	"path"
	"strings"

	"github.com/dshills/jjdiff/internal/change"
	"github.com/samber/lo"
)

// Deprioritizer builds a change.Deprioritizer from a list of gitignore-like
// glob patterns (DiffConfig.Deprioritize). Matching rules:
//   - a pattern beginning with "/" is anchored to the tree root
//   - a pattern ending with "/" matches everything inside that directory
//   - any other pattern matches at any depth (as if prefixed with "**/")
func Deprioritizer(patterns []string) change.Deprioritizer {
	compiled := lo.Map(patterns, func(p string, _ int) compiledPattern {
		return compilePattern(p)
	})
	return func(p string) bool {
		for _, c := range compiled {
			if c.match(p) {
				return true
			}
		}
		return false
	}
}

type compiledPattern struct {
	glob     string
	anchored bool
	dirOnly  bool
}

func compilePattern(pattern string) compiledPattern {
	c := compiledPattern{glob: pattern}
	if strings.HasPrefix(c.glob, "/") {
		c.anchored = true
		c.glob = strings.TrimPrefix(c.glob, "/")
	}
	if strings.HasSuffix(c.glob, "/") {
		c.dirOnly = true
		c.glob = strings.TrimSuffix(c.glob, "/")
	}
	return c
}

func (c compiledPattern) match(p string) bool {
	p = strings.TrimPrefix(p, "/")

	if c.dirOnly {
		prefix := c.glob + "/"
		if c.anchored {
			return strings.HasPrefix(p, prefix)
		}
		return strings.HasPrefix(p, prefix) || strings.Contains(p, "/"+prefix)
	}

	if c.anchored {
		ok, _ := path.Match(c.glob, p)
		return ok
	}

	if ok, _ := path.Match(c.glob, p); ok {
		return true
	}
	segments := strings.Split(p, "/")
	for i := range segments {
		suffix := strings.Join(segments[i:], "/")
		if ok, _ := path.Match(c.glob, suffix); ok {
			return true
		}
	}
	return false
}
