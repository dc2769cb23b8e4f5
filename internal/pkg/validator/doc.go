// Package validator wraps struct validation behind a small interface.
//
// Usecase inputs carry `validate` tags and are checked through the Validator
// interface. The v10 implementation registers the domain rules this service
// needs: `otpcode` (six decimal digits) and `phone` (E.164-style numbers).
package validator
