package textutil

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName returns the NFC form of name. ASCII input is returned as is.
func NormalizeName(name string) string {
	if isASCII(name) {
		return name
	}
	return norm.NFC.String(name)
}

// SortNames sorts names in place using the collation rules of tag. An
// undetermined tag falls back to the root collation order.
func SortNames(names []string, tag language.Tag) {
	if len(names) < 2 {
		return
	}
	c := collate.New(tag, collate.Numeric)
	c.SortStrings(names)
}

// SameName reports whether two names are equal after normalization.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
