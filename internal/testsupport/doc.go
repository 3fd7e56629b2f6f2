// Package testsupport holds helpers shared by package tests: a temp config
// builder, archive tree builders and tree snapshots.
package testsupport
