package domain

// SessionUser is the identity attached to a session after OTP verification.
type SessionUser struct {
	Phone string `json:"phone"`
}

// Session holds per-browser state. OTPHash and OTPPhone are set and cleared together.
type Session struct {
	ID       string       `json:"id"`
	User     *SessionUser `json:"user,omitempty"`
	OTPHash  string       `json:"otp_hash,omitempty"`
	OTPPhone string       `json:"otp_phone,omitempty"`
}

// SessionState is the login state machine position.
type SessionState string

const (
	SessionAnonymous     SessionState = "Anonymous"
	SessionOTPPending    SessionState = "OtpPending"
	SessionAuthenticated SessionState = "Authenticated"
)

// State derives the state from the session fields.
func (s *Session) State() SessionState {
	switch {
	case s == nil:
		return SessionAnonymous
	case s.User != nil:
		return SessionAuthenticated
	case s.HasChallenge():
		return SessionOTPPending
	default:
		return SessionAnonymous
	}
}

// HasChallenge reports whether an OTP is pending.
func (s *Session) HasChallenge() bool {
	return s != nil && s.OTPHash != "" && s.OTPPhone != ""
}

// SetChallenge records a pending OTP for phone.
func (s *Session) SetChallenge(hash, phone string) {
	s.OTPHash = hash
	s.OTPPhone = phone
}

// ClearChallenge drops the pending OTP.
func (s *Session) ClearChallenge() {
	s.OTPHash = ""
	s.OTPPhone = ""
}
