package service

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const orderIDLength = 10

var otpSpan = big.NewInt(900000)

func defaultRandom(r io.Reader) io.Reader {
	if r == nil {
		return rand.Reader
	}
	return r
}

// generateOTP draws a code uniformly from [100000, 999999].
func generateOTP(r io.Reader) (string, error) {
	n, err := rand.Int(r, otpSpan)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// generateOrderID returns the first ten hex digits of a random UUID, upper-cased.
func generateOrderID(r io.Reader) (string, error) {
	u, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate order id: %w", err)
	}
	return strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[:orderIDLength]), nil
}
