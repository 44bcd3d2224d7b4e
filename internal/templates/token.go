package templates

import "strings"

// Placeholder is the literal token replaced by the element name throughout
// the template tree.
const Placeholder = "tpa-seed-element"

// RenameToken replaces every occurrence of Placeholder in s with elementName.
// The scan is a single literal pass: text inserted from elementName is never
// rescanned.
func RenameToken(s, elementName string) string {
	return strings.ReplaceAll(s, Placeholder, elementName)
}

// RenameTokenBytes is RenameToken for file contents.
func RenameTokenBytes(b []byte, elementName string) []byte {
	return []byte(RenameToken(string(b), elementName))
}
