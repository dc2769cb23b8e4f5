// Package clock abstracts the time source.
//
// Anything that compares against expiry timestamps or stamps rows takes a
// Clocker instead of calling time.Now directly, so tests can freeze time.
package clock
