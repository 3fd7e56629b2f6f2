// Package textutil normalizes and orders human-authored archive names.
//
// Folder and file names in photo archives are typed by people on different
// systems: macOS stores decomposed (NFD) Unicode, most other systems store
// composed (NFC) forms. Everything that compares, deduplicates, or prints
// names goes through NormalizeName first so the two spellings of the same
// folder collapse into one. SortNames orders names with Unicode collation so
// mixed Latin and Cyrillic reports read naturally.
package textutil
