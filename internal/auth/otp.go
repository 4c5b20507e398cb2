package auth

import "golang.org/x/crypto/bcrypt"

// OTPLength is the number of decimal digits in a one-time code.
const OTPLength = 6

// HashOTP digests a one-time code before it is stored in the session.
func HashOTP(code string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareOTP reports whether code matches the stored digest. Anything other than
// exactly six ASCII digits is rejected before bcrypt sees it: bcrypt NUL-terminates
// and cycles its key, so longer inputs can share a digest with a valid code.
func CompareOTP(hashed, code string) bool {
	if !WellFormedOTP(code) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(code)) == nil
}

// WellFormedOTP reports whether code is exactly six ASCII digits.
func WellFormedOTP(code string) bool {
	if len(code) != OTPLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
