// Package element validates custom element tag names.
//
// A name either fails outright (it cannot be registered as a custom element)
// or passes, possibly with an advisory message for names that are legal but
// discouraged.
package element

import (
	"regexp"
	"strings"
	"unicode"
)

// Result is the outcome of validating an element name.
type Result struct {
	// Valid reports whether the name can be used as a custom element tag.
	Valid bool

	// Message explains why the name is invalid, or carries an advisory for a
	// valid but discouraged name. Empty for a clean name.
	Message string
}

// reservedNames are hyphenated names already defined by SVG and MathML.
var reservedNames = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

var (
	upperASCII        = regexp.MustCompile(`[A-Z]`)
	trailingNonAlnum  = regexp.MustCompile(`[^a-zA-Z0-9]$`)
	nonPrintableASCII = regexp.MustCompile(`[^\x20-\x7E]`)
	doubleNonAlnum    = regexp.MustCompile(`[^a-zA-Z0-9]{2}`)
)

// Validate checks name against the custom element naming rules.
func Validate(name string) Result {
	if msg := invalidReason(name); msg != "" {
		return Result{Valid: false, Message: msg}
	}
	return Result{Valid: true, Message: advisory(name)}
}

func invalidReason(name string) string {
	switch {
	case name == "":
		return "Missing element name."
	case upperASCII.MatchString(name):
		return "Custom element names must not contain uppercase ASCII characters."
	case !strings.Contains(name, "-"):
		return "Custom element names must contain a hyphen. Example: unicorn-cake"
	case name[0] >= '0' && name[0] <= '9':
		return "Custom element names must not start with a digit."
	case name[0] == '-':
		return "Custom element names must not start with a hyphen."
	case !IsPotentialCustomElementName(name):
		return "Invalid element name."
	case reservedNames[name]:
		return "The supplied element name is reserved and can't be used.\n" +
			"See: https://html.spec.whatwg.org/multipage/scripting.html#valid-custom-element-name"
	}
	return ""
}

func advisory(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "polymer-"):
		return "Custom element names should not start with `polymer-`.\n" +
			"See: http://webcomponents.github.io/articles/how-should-i-name-my-element"
	case strings.HasPrefix(lower, "x-"):
		return "Custom element names should not start with `x-`.\n" +
			"See: http://webcomponents.github.io/articles/how-should-i-name-my-element/"
	case strings.HasPrefix(lower, "ng-"):
		return "Custom element names should not start with `ng-`.\n" +
			"See: http://docs.angularjs.org/guide/directive#creating-directives"
	case strings.HasPrefix(lower, "xml"):
		return "Custom element names should not start with `xml`."
	case !(lower[0] >= 'a' && lower[0] <= 'z'):
		return "This element name is only valid in XHTML, not in HTML. First character should be in the range a-z."
	case trailingNonAlnum.MatchString(name):
		return "Custom element names should not end with a non-alpha character."
	case strings.Contains(name, "."):
		return "Custom element names should not contain a dot character as it would need to be escaped in a CSS selector."
	case nonPrintableASCII.MatchString(name):
		return "Custom element names should not contain non-ASCII characters."
	case strings.Contains(name, "--"):
		return "Custom element names should not contain consecutive hyphens."
	case doubleNonAlnum.MatchString(name):
		return "Custom element names should not contain consecutive non-alpha characters."
	}
	return ""
}

// IsPotentialCustomElementName reports whether name matches the
// PotentialCustomElementName production of the HTML standard:
// [a-z] (PCENChar)* '-' (PCENChar)*.
func IsPotentialCustomElementName(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return false
	}

	hyphen := false
	for _, r := range name[1:] {
		if !isPCENChar(r) {
			return false
		}
		if r == '-' {
			hyphen = true
		}
	}
	return hyphen
}

// pcenRanges are the non-ASCII code point ranges allowed in PCENChar.
var pcenRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00B7, Hi: 0x00B7, Stride: 1},
		{Lo: 0x00C0, Hi: 0x00D6, Stride: 1},
		{Lo: 0x00D8, Hi: 0x00F6, Stride: 1},
		{Lo: 0x00F8, Hi: 0x037D, Stride: 1},
		{Lo: 0x037F, Hi: 0x1FFF, Stride: 1},
		{Lo: 0x200C, Hi: 0x200D, Stride: 1},
		{Lo: 0x203F, Hi: 0x2040, Stride: 1},
		{Lo: 0x2070, Hi: 0x218F, Stride: 1},
		{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
		{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
		{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0xEFFFF, Stride: 1},
	},
	LatinOffset: 3,
}

func isPCENChar(r rune) bool {
	switch {
	case r == '-' || r == '.' || r == '_':
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'z':
		return true
	}
	return unicode.Is(pcenRanges, r)
}
