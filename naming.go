package icongen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Suffix is appended to every derived name so that icon identifiers never
// clash with other exports of the generated package.
const Suffix = "Icon"

var numberNames = [...]string{"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}

// ClassName returns the identifier used for the asset file, e.g.
// "1-circle-fill.svg" becomes "OneCircleFillIcon".
func ClassName(file string) string {
	return DeriveName(BaseName(file)) + Suffix
}

// BaseName strips the last extension of file. A leading dot is part of the
// name, so ".hidden" stays ".hidden".
func BaseName(file string) string {
	i := strings.LastIndexByte(file, '.')
	if i <= 0 {
		return file
	}
	return file[:i]
}

// DeriveName turns a base name into an identifier without the suffix.
//
// Leading digits are spelled out one by one ("42-square" is "FourTwoSquare"),
// they are not read as a number.
func DeriveName(base string) string {
	name := CamelCase(base)
	digits := LeadingDigits(base)
	if digits == "" {
		return name
	}
	var sb strings.Builder
	for i := 0; i < len(digits); i++ {
		sb.WriteString(numberNames[digits[i]-'0'])
	}
	// the camel-cased name starts with the same digits
	sb.WriteString(name[len(digits):])
	return sb.String()
}

// LeadingDigits returns the run of ASCII digits at the start of s.
func LeadingDigits(s string) string {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return s[:n]
}

// CamelCase removes runs of '-' and '_', upper-cases the character that
// follows each run and upper-cases the first character. Bytes that are not
// valid UTF-8 are copied unchanged.
func CamelCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	upper := true
	for i := 0; i < len(s); {
		switch {
		case s[i] == '-' || s[i] == '_':
			upper = true
			i++
		case upper:
			n := writeUpper(&sb, s[i:])
			upper = false
			i += n
		default:
			sb.WriteByte(s[i])
			i++
		}
	}
	return sb.String()
}

// writeUpper writes the upper-cased first character of s and returns its
// length in bytes.
func writeUpper(sb *strings.Builder, s string) int {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && n <= 1 {
		sb.WriteByte(s[0])
		return 1
	}
	sb.WriteRune(unicode.ToUpper(r))
	return n
}

// IsIdentifier reports whether s matches [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
