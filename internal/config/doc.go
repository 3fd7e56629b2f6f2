// Package config loads, normalizes, and validates photodate configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from the --config flag, the user config
// directory, or a photodate.toml in the working directory. The Config type
// centralizes the state directory, exiftool session limits, gate tuning, and
// log output so the CLI discovers every knob in one pass.
package config
