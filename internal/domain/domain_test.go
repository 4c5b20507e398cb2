package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductPriceFor(t *testing.T) {
	p := Product{BasePrice: 32500, Grams: []int{5, 10, 20}}

	assert.Equal(t, int64(32500), p.PriceFor(5))
	assert.Equal(t, int64(130000), p.PriceFor(20))
	assert.Equal(t, int64(13000), p.PriceFor(2))

	lo, hi := p.WeightRange()
	assert.Equal(t, 5, lo)
	assert.Equal(t, 20, hi)
}

func TestSessionState(t *testing.T) {
	var nilSession *Session
	assert.Equal(t, SessionAnonymous, nilSession.State())

	s := &Session{ID: "abc"}
	assert.Equal(t, SessionAnonymous, s.State())

	s.SetChallenge("hash", "9876543210")
	assert.Equal(t, SessionOTPPending, s.State())

	s.User = &SessionUser{Phone: "9876543210"}
	s.ClearChallenge()
	assert.Equal(t, SessionAuthenticated, s.State())
	assert.False(t, s.HasChallenge())
}

func TestOrderCloneAndTotal(t *testing.T) {
	o := &Order{ID: "ABC", Items: []OrderItem{{ProductID: "g-ring", Qty: 2, Price: 100}, {ProductID: "s-chain", Qty: 1, Price: 50}}}
	cp := o.Clone()
	cp.Items[0].Qty = 5

	assert.Equal(t, 2, o.Items[0].Qty)
	assert.Equal(t, int64(250), o.Total())
}
