package inbound

type OtpCreateRequest struct {
	PhoneNumber string `json:"phone_number" example:"+628123456789"`
	Purpose     string `json:"purpose" example:"verification"`
}

type OtpVerifyRequest struct {
	PhoneNumber string `json:"phone_number" example:"+628123456789"`
	Code        string `json:"code" example:"123456"`
	Purpose     string `json:"purpose" example:"verification"`
}

type OtpVerifyResponse struct {
	Verified   bool   `json:"verified" example:"true"`
	ProofToken string `json:"proof_token,omitempty" example:"eyJhbGciOiJIUzUxMiJ9..."`
}

type OtpExportResponse struct {
	ObjectKey string `json:"object_key" example:"otp-exports/20250101T000000Z_0195.csv"`
	URL       string `json:"url" example:"https://storage.example.com/otp-exports/..."`
	Count     int    `json:"count" example:"42"`
}
