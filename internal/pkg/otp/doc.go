// Package otp provides helpers for generating one-time passcodes.
//
// Codes are short-lived numeric secrets delivered out of band (SMS). The
// generator draws from crypto/rand with a uniform distribution over the
// configured range, so no code is more likely than another.
package otp
