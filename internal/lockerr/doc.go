// Package lockerr defines the error taxonomy shared by the locksim packages.
//
// Four kinds exist:
//   - config: invalid construction parameters
//   - state: an operation on a lock that has no credential yet
//   - policy: an attack mode used against an incompatible lock type
//   - value: malformed inputs reaching the hash engine directly
//
// Errors are returned at the point of violation and never retried. Callers
// test for a kind with errors.Is(err, lockerr.ErrState) and friends.
package lockerr
