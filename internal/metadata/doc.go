// Package metadata reads and writes the embedded capture date of media files.
//
// The primary implementation drives one exiftool process in stay-open mode
// for the whole run through github.com/barasher/go-exiftool. Every command is
// bounded by a timeout; a stuck process is abandoned and replaced, up to a
// restart budget, after which the session reports ErrUnavailable. When
// exiftool is not installed and not required, NativeReader reads JPEG/TIFF
// EXIF in-process and refuses writes with ErrReadOnly.
package metadata
