// Package keytestcases holds a handful of fixed private-key fixtures
// shared across the keys package's own tests and higher-level packages
// (wallet, rpcclient) that need a stable key pair without generating
// one at test time.
package keytestcases

// Arr holds hex-encoded secp256r1 private scalars used as deterministic
// fixtures. Every other property of a fixture (address, WIF, NEP-2
// ciphertext) is derived from these at test time rather than hardcoded,
// since they depend on the encoding parameters under test.
var Arr = []string{
	"c9afa9d845ba75166b5c215767b1d6934e50c3db36e89b127b8a622b120f672",
	"9ab7e154840daca3a2efadaf0df93d8e2907a0958f992a1660ce1200f894bb3",
	"3a1a6c1a2183660108be7c16eabdd4d3b1dd8e1a3edd56c8b7e5e3f19d4d177",
}
