// Package testsupport holds fixture and golden helpers shared by package
// tests.
package testsupport
