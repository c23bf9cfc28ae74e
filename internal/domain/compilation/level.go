// Package compilation holds the request and result types exchanged with the
// remote Closure Compiler service.
package compilation

import (
	"closurec/internal/domain/errors/domain"
	"fmt"
	"strings"
)

// Level is the optimization preset understood by the compilation service.
type Level string

// Compilation levels.
const (
	LevelWhitespaceOnly Level = "WHITESPACE_ONLY"
	LevelSimple         Level = "SIMPLE_OPTIMIZATIONS"
	LevelAdvanced       Level = "ADVANCED_OPTIMIZATIONS"
)

// Level selector bounds as exposed on the command line.
const (
	MinLevelSelector     = 1
	MaxLevelSelector     = 3
	DefaultLevelSelector = 2
)

// levelsBySelector is indexed by selector-1.
var levelsBySelector = [...]Level{LevelWhitespaceOnly, LevelSimple, LevelAdvanced}

// LevelFromSelector maps the 1-based command-line selector to a Level.
func LevelFromSelector(selector int) (Level, error) {
	if selector < MinLevelSelector || selector > MaxLevelSelector {
		return "", fmt.Errorf("%w: compilation level must be between %d and %d, got %d",
			domain.ErrInvalidArgument, MinLevelSelector, MaxLevelSelector, selector)
	}
	return levelsBySelector[selector-1], nil
}

// ParseLevel accepts a level name such as "simple_optimizations".
func ParseLevel(name string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range levelsBySelector {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: unknown compilation level %q", domain.ErrInvalidArgument, name)
}

// Selector returns the 1-based selector for l, or 0 if l is not a known level.
func (l Level) Selector() int {
	for i, known := range levelsBySelector {
		if l == known {
			return i + 1
		}
	}
	return 0
}

// String returns the wire name of the level.
func (l Level) String() string {
	return string(l)
}
