// Package lock simulates a device lock protected by a PIN, password, or
// pattern.
//
// A Lock starts Uninitialized. SetSecret derives a credential and moves it
// to Armed; calling it again re-arms with a new salt and discards the old
// credential. Attempt verifies a guess and never mutates the lock.
package lock
