package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shri-jewellery/storefront/internal/config"
)

// SMSSender delivers a text message.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// NewSMSSender returns a Twilio sender when credentials and a from number are set.
func NewSMSSender(cfg config.SMSConfig) SMSSender {
	if !cfg.Enabled() {
		return disabledSMSSender{}
	}
	return &twilioSMSSender{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type disabledSMSSender struct{}

func (disabledSMSSender) SendSMS(context.Context, string, string) error {
	return ErrDisabled
}

type twilioSMSSender struct {
	cfg    config.SMSConfig
	client *http.Client
}

func (s *twilioSMSSender) SendSMS(ctx context.Context, to, body string) error {
	recipient, err := toE164(to, s.cfg.CountryCode)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(s.cfg.BaseURL, "/"), url.PathEscape(s.cfg.AccountSID))

	form := url.Values{}
	form.Set("To", recipient)
	form.Set("From", s.cfg.FromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError("twilio", resp)
	}
	return nil
}

// nationalDigits is the length of a subscriber number without country code.
const nationalDigits = 10

// toE164 rewrites a customer-entered number into the +<country><number> form
// Twilio requires. Bare ten-digit numbers and trunk-prefixed ones get countryCode.
func toE164(raw, countryCode string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	international := strings.HasPrefix(trimmed, "+")

	var digits strings.Builder
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", fmt.Errorf("sms: invalid phone number %q", raw)
		}
	}
	d := digits.String()
	cc := strings.TrimPrefix(strings.TrimSpace(countryCode), "+")

	switch {
	case international:
	case strings.HasPrefix(d, "00"):
		d = d[2:]
	case len(d) == nationalDigits+1 && d[0] == '0':
		d = cc + d[1:]
	case len(d) == nationalDigits:
		d = cc + d
	}
	// E.164 allows at most 15 digits
	if len(d) < 8 || len(d) > 15 {
		return "", fmt.Errorf("sms: invalid phone number %q", raw)
	}
	return "+" + d, nil
}
