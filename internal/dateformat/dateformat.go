// Package dateformat renders timestamps with template-friendly patterns.
//
// The default syntax follows moment.js tokens ("YYYY-MM-DD HH:mm"), which is
// what vault templates are written in. strftime syntax ("%Y-%m-%d") is
// available for hosts that prefer it.
package dateformat

import (
	"fmt"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/nleeper/goment"
)

// Syntax selects the pattern language.
type Syntax string

const (
	SyntaxMoment   Syntax = "moment"
	SyntaxStrftime Syntax = "strftime"
)

// Formatter renders t according to pattern.
type Formatter func(t time.Time, pattern string) string

// ForSyntax returns the formatter for s. The empty syntax is moment.
func ForSyntax(s Syntax) (Formatter, error) {
	switch s {
	case "", SyntaxMoment:
		return Format, nil
	case SyntaxStrftime:
		return func(t time.Time, pattern string) string {
			return strftime.Format(pattern, t)
		}, nil
	default:
		return nil, fmt.Errorf("unknown date syntax %q", s)
	}
}

// Format renders t with a moment-style pattern. Text inside square
// brackets is copied literally.
func Format(t time.Time, pattern string) string {
	g, err := goment.New(t)
	if err != nil {
		return t.Format(time.RFC3339)
	}
	return g.Format(pattern)
}
