// Package deps checks that the external binaries photodate shells out to are
// installed.
package deps
