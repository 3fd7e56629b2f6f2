// Package datename extracts structured dates from archive folder and file
// names.
//
// Archive names carry a date prefix grouped with dots ("2019.01.02 Поездка",
// "2018.01-03 зима", "2024.06.28-07.05 Trip") followed by free-form text. The
// dot is what marks a prefix as a date: dash-separated prefixes such as
// "2009-09-25 Concert" and compact digits such as "20180101" are deliberately
// not recognized, because both are common in free text and camera output.
//
// Parse returns a Token carrying the point value, the precision the name
// states (year, month or day) and an optional range end. ExtractTimestamp
// recognizes the camera-style "YYYYMMDD_HHMMSS" block inside file names and
// returns an exact local time. Nothing in this package touches the
// filesystem.
package datename
