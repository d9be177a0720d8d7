// Package testsupport holds fixtures shared by package tests: temp-directory
// configs, PHANGS header dumps, and ledger stores.
package testsupport
