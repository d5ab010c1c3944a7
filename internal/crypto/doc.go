// Package crypto provides the hashing primitive behind a simulated lock.
//
// Key derivation uses PBKDF2-HMAC-SHA256 with:
//   - 32-byte random salt per credential (16 bytes minimum)
//   - 210,000 iterations by default (OWASP minimum recommendation)
//   - a 10,000 iteration floor below which no credential is created
//
// Verification re-derives the key and compares it with
// subtle.ConstantTimeCompare, so timing does not depend on where the first
// mismatching byte sits.
//
// The random source is injected into the Engine; production code uses
// crypto/rand, tests pass a fixed reader.
package crypto
