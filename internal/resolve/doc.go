// Package resolve decides which date a file in the archive should carry.
//
// A Resolver knows the archive root. Select applies the default priority: a
// dated file name wins, otherwise the nearest dated ancestor folder. Refine
// starts from the ancestor folder only and promotes a camera timestamp from
// the file name when it agrees with the folder at the folder's precision.
// Everything here is path arithmetic; nothing touches the filesystem.
package resolve
