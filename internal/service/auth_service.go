package service

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shri-jewellery/storefront/internal/auth"
	"github.com/shri-jewellery/storefront/internal/domain"
	"github.com/shri-jewellery/storefront/internal/events"
	"github.com/shri-jewellery/storefront/internal/repository"
	apperrors "github.com/shri-jewellery/storefront/pkg/util/errorutil"
)

const phoneDigits = 10

var (
	// ErrInvalidPhone rejects anything but exactly ten decimal digits.
	ErrInvalidPhone = apperrors.NewDomainError(apperrors.CodeValidationFailed, "Invalid phone number", http.StatusBadRequest, nil)
	// ErrNoPendingChallenge is returned when verifying without a prior OTP request.
	ErrNoPendingChallenge = apperrors.NewDomainError(apperrors.CodeInvalidOTP, "No pending OTP", http.StatusBadRequest, nil)
	// ErrOTPMismatch is returned when the phone or code differ from the pending challenge.
	ErrOTPMismatch = apperrors.NewDomainError(apperrors.CodeInvalidOTP, "Invalid OTP", http.StatusBadRequest, nil)
)

// AuthService runs the OTP login state machine on top of the session store.
// Attempts are neither rate limited nor expired.
type AuthService struct {
	sessions   repository.SessionRepository
	dispatcher events.Dispatcher
	random     io.Reader
	otpCost    int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	SessionRepo repository.SessionRepository
	Dispatcher  events.Dispatcher
	// Random feeds OTP generation; crypto/rand when nil.
	Random  io.Reader
	OTPCost int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	cost := deps.OTPCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		sessions:   deps.SessionRepo,
		dispatcher: deps.Dispatcher,
		random:     defaultRandom(deps.Random),
		otpCost:    cost,
	}
}

// RequestOTP issues a new code for phone and returns it (demo mode: no delivery required).
func (s *AuthService) RequestOTP(ctx context.Context, sessionID, phone string) (string, error) {
	if !validPhone(phone) {
		return "", ErrInvalidPhone
	}
	code, err := generateOTP(s.random)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	digest, err := auth.HashOTP(code, s.otpCost)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	if _, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.SetChallenge(digest, phone)
		return nil
	}); err != nil {
		return "", err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventOTPIssued,
		Subject: phone,
		Payload: events.OTPIssuedPayload{Phone: phone, Code: code},
	})
	return code, nil
}

// VerifyOTP logs the session in when phone and code match the pending challenge.
// A failed attempt leaves the challenge in place. The digest comparison runs
// before the store update so the session store is never held across bcrypt.
func (s *AuthService) VerifyOTP(ctx context.Context, sessionID, phone, code string) (*domain.SessionUser, error) {
	pending, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !pending.HasChallenge()) {
		return nil, ErrNoPendingChallenge
	}
	if err != nil {
		return nil, err
	}
	if phone != pending.OTPPhone || !auth.CompareOTP(pending.OTPHash, code) {
		return nil, ErrOTPMismatch
	}

	sess, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		if !sess.HasChallenge() {
			return ErrNoPendingChallenge
		}
		// a concurrent re-issue or verify replaced the challenge we checked
		if sess.OTPHash != pending.OTPHash || sess.OTPPhone != pending.OTPPhone {
			return ErrOTPMismatch
		}
		sess.User = &domain.SessionUser{Phone: phone}
		sess.ClearChallenge()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess.User, nil
}

// Logout clears the identity regardless of the current state.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	_, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.User = nil
		return nil
	})
	return err
}

// CurrentUser returns the logged-in identity, or nil for anonymous sessions.
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*domain.SessionUser, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess.User, nil
}

// State reports where the session sits in the login state machine.
func (s *AuthService) State(ctx context.Context, sessionID string) (domain.SessionState, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.SessionAnonymous, nil
	}
	if err != nil {
		return "", err
	}
	return sess.State(), nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = nowUTC()
	_ = s.dispatcher.Publish(ctx, event)
}

func validPhone(phone string) bool {
	if len(phone) != phoneDigits {
		return false
	}
	for i := 0; i < len(phone); i++ {
		if phone[i] < '0' || phone[i] > '9' {
			return false
		}
	}
	return true
}
