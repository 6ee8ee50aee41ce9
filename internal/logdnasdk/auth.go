package logdnasdk

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

const (
	paramEmail     = "email"
	paramAccountID = "id"
	paramTimestamp = "ts"
	paramHMAC      = "hmac"
)

// Identity is the stored account a request is made on behalf of.
type Identity struct {
	Email        string
	AccountID    string
	Token        string // secret, never sent on the wire
	IngestionKey string
}

// Authenticated reports whether the identity can sign requests.
func (i Identity) Authenticated() bool {
	return i.Token != ""
}

// Signer produces single-use HMAC signed parameter sets.
type Signer struct {
	// Now is the clock used for the ts field. Defaults to time.Now.
	Now func() time.Time
}

func NewSigner() *Signer {
	return &Signer{Now: time.Now}
}

// Sign returns email, id, ts, the extra params in order, and finally hmac,
// the hex HMAC-SHA256 of the encoded fields that precede it keyed by the
// identity's token. Every call captures a fresh timestamp.
func (s *Signer) Sign(identity Identity, extra Params) (Params, error) {
	if !identity.Authenticated() {
		return nil, ErrUnauthenticated
	}

	now := time.Now
	if s != nil && s.Now != nil {
		now = s.Now
	}

	params := make(Params, 0, 4+len(extra))
	params = params.
		Add(paramEmail, identity.Email).
		Add(paramAccountID, identity.AccountID).
		Add(paramTimestamp, strconv.FormatInt(now().UnixMilli(), 10))
	params = append(params, extra.Without(paramHMAC)...)

	return params.Add(paramHMAC, ComputeHMAC(params, identity.Token)), nil
}

// ComputeHMAC signs the encoded form of params with secret.
func ComputeHMAC(params Params, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(params.Encode()))
	return hex.EncodeToString(mac.Sum(nil))
}
