// Package gate decides what the site client may show.
//
// The visibility gate classifies archive entries as public, soft-locked
// (secret with a password) or hard-locked (secret without one) and runs the
// password challenge for soft-locked entries. The admin gate compares a
// SHA-256 digest of the submitted password with a reference digest built
// into the client.
//
// Both gates run in the client only. The gateway returns full rows, so
// neither gate is a security boundary; they reproduce the site's UX rules.
//
// State lives in an explicit Session value. Gate functions take the current
// Session and return the next one; they never mutate their input.
package gate
