package entity

import "time"

// OtpRecord is a stored one-time passcode. CodeHash holds the HMAC digest of
// the plaintext code; the plaintext itself is never persisted.
type OtpRecord struct {
	ID        int64
	SubjectID int64
	CodeHash  string
	Purpose   Purpose
	IsUsed    bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Subject is a read-only view of an account that can receive passcodes.
type Subject struct {
	ID          int64
	PhoneNumber string
	Status      SubjectStatus
}

// ConsumeOtp carries the match criteria for atomically consuming a live code.
type ConsumeOtp struct {
	SubjectID int64
	CodeHash  string
	Purpose   Purpose
	Now       time.Time
}

// OtpListFilterData filters inert (used or expired) passcode rows for export.
type OtpListFilterData struct {
	Purpose  Purpose
	DateFrom time.Time
	DateTo   time.Time
	Now      time.Time
	Size     int32
	Offset   int32

	IsFilterByPurpose bool
	IsFilterByDate    bool
}
