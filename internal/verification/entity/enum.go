package entity

// SubjectStatus describes whether a subject may request verification codes.
type SubjectStatus int16

const (
	// SubjectStatusUnknown is mean status is not known / not set.
	SubjectStatusUnknown SubjectStatus = 0

	// SubjectStatusActive mean subject is allowed to request and verify codes.
	SubjectStatusActive SubjectStatus = 1

	// SubjectStatusBanned mean subject is blocked from using the app (policy/abuse/etc).
	SubjectStatusBanned SubjectStatus = 2
)

func (ss SubjectStatus) String() string {
	switch ss {
	case SubjectStatusActive:
		return "Active"
	case SubjectStatusBanned:
		return "Banned"
	default:
		return "Unknown"
	}
}

// Purpose labels what a passcode proves. Known values get canonical names,
// anything else passes through unchanged so callers can define their own flows.
type Purpose string

const (
	PurposeVerification  Purpose = "verification"
	PurposePasswordReset Purpose = "password_reset"
)

func (p Purpose) String() string {
	return string(p)
}

// PurposeFromString normalizes a raw purpose. An empty value defaults to
// PurposeVerification.
func PurposeFromString(raw string) Purpose {
	switch raw {
	case "":
		return PurposeVerification
	case PurposeVerification.String():
		return PurposeVerification
	case PurposePasswordReset.String():
		return PurposePasswordReset
	default:
		return Purpose(raw)
	}
}
