package dto

// SendOTPRequest payload. Phone format is checked by the auth service.
type SendOTPRequest struct {
	Phone string `json:"phone"`
}

// SendOTPResponse exposes the code directly; there is no SMS round trip in demo mode.
type SendOTPResponse struct {
	MockOTP string `json:"mock_otp"`
}

// VerifyOTPRequest payload.
type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// VerifyOTPResponse confirms the login.
type VerifyOTPResponse struct {
	Message string `json:"message"`
}
