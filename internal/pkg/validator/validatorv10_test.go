package validator

import (
	"errors"
	"testing"
)

type otpInput struct {
	PhoneNumber string `validate:"required,phone"`
	Code        string `validate:"required,otpcode"`
}

func newValidator(t *testing.T) *V10Validator {
	t.Helper()

	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func TestV10ValidatorValid(t *testing.T) {
	v := newValidator(t)

	err := v.Validate(otpInput{PhoneNumber: "+6281234567890", Code: "123456"})
	if err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestV10ValidatorOTPCodeRule(t *testing.T) {
	v := newValidator(t)

	cases := []struct {
		name string
		code string
		ok   bool
	}{
		{name: "six digits", code: "000000", ok: true},
		{name: "too short", code: "12345", ok: false},
		{name: "too long", code: "1234567", ok: false},
		{name: "letters", code: "12a456", ok: false},
		{name: "empty", code: "", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(otpInput{PhoneNumber: "+6281234567890", Code: tc.code})
			if tc.ok && err != nil {
				t.Fatalf("expected %q to validate, got %v", tc.code, err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected %q to fail validation", tc.code)
			}
		})
	}
}

func TestV10ValidatorPhoneRule(t *testing.T) {
	v := newValidator(t)

	cases := []struct {
		name  string
		phone string
		ok    bool
	}{
		{name: "e164 with plus", phone: "+6281234567890", ok: true},
		{name: "without plus", phone: "6281234567890", ok: true},
		{name: "leading zero", phone: "0812345678", ok: false},
		{name: "too short", phone: "+62812", ok: false},
		{name: "letters", phone: "+62812abc7890", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(otpInput{PhoneNumber: tc.phone, Code: "123456"})
			if tc.ok && err != nil {
				t.Fatalf("expected %q to validate, got %v", tc.phone, err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected %q to fail validation", tc.phone)
			}
		})
	}
}

func TestV10ValidatorFieldErrorsAreSnakeCase(t *testing.T) {
	v := newValidator(t)

	err := v.Validate(otpInput{PhoneNumber: "", Code: ""})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected V10ValidationError, got %T", err)
	}

	if _, ok := verr.Values()["phone_number"]; !ok {
		t.Fatalf("expected phone_number field error, got %v", verr.Values())
	}
	if _, ok := verr.Values()["code"]; !ok {
		t.Fatalf("expected code field error, got %v", verr.Values())
	}
}
