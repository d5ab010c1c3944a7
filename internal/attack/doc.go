// Package attack implements a sequential dictionary attack against a
// simulated lock.
//
// Candidates are tried strictly in input order, one key derivation each,
// with no deduplication or reordering. The first match wins. Elapsed time
// covers every failed attempt as well as the successful one.
package attack
