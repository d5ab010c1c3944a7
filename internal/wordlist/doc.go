// Package wordlist loads candidate lists for the dictionary attack and
// compares two lists.
//
// Candidate order is significant and preserved exactly; nothing is sorted,
// deduplicated or mutated.
package wordlist
