package event

import "time"

const OtpIssuedDestination string = "otp_issued"
const OtpIssuedConsumerNotification string = "otp_issued_notification"

type OtpIssuedMessage struct {
	OtpID       int64     `json:"otp_id"`
	SubjectID   int64     `json:"subject_id"`
	PhoneNumber string    `json:"phone_number"`
	Code        string    `json:"code"`
	Purpose     string    `json:"purpose"`
	ExpiresAt   time.Time `json:"expires_at"`
}
