package publitioapi

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/publitio/publitio-go/pkg/nonce"
)

//go:generate mockgen -destination=mocks/mock_signature.go -package=mocks . Clock,NonceSource

// Clock provides the time used for api_timestamp.
type Clock interface {
	Now() time.Time
}

// NonceSource provides the random api_nonce values.
// Implementations must be safe for concurrent use.
type NonceSource interface {
	Nonce() int64
}

// AuthParameters are the four query parameters that authenticate one request.
type AuthParameters struct {
	Key       string
	Timestamp int64
	Nonce     int64
	Signature string
}

// Query returns the parameters in wire order:
// api_key, api_timestamp, api_nonce, api_signature.
func (p AuthParameters) Query() Query {
	return Query{
		{Key: "api_key", Value: p.Key},
		{Key: "api_timestamp", Value: p.Timestamp},
		{Key: "api_nonce", Value: p.Nonce},
		{Key: "api_signature", Value: p.Signature},
	}
}

// SignatureBuilder produces fresh AuthParameters for every request.
// The secret never leaves the builder.
type SignatureBuilder struct {
	key, secret string

	clock  Clock
	nonces NonceSource
}

func NewSignatureBuilder(key, secret string, clock Clock, nonces NonceSource) *SignatureBuilder {
	if clock == nil {
		clock = nonce.SystemClock{}
	}

	if nonces == nil {
		nonces = nonce.NewRandom()
	}

	return &SignatureBuilder{
		key:    key,
		secret: secret,
		clock:  clock,
		nonces: nonces,
	}
}

// Build reads the clock and the nonce source once and signs the pair.
func (b *SignatureBuilder) Build() AuthParameters {
	timestamp := b.clock.Now().UTC().Unix()
	n := b.nonces.Nonce()
	return AuthParameters{
		Key:       b.key,
		Timestamp: timestamp,
		Nonce:     n,
		Signature: Sign(timestamp, n, b.secret),
	}
}

// Sign returns the lowercase hex SHA-1 digest of "{timestamp}{nonce}{secret}".
// SHA-1 is what the server verifies against, so it must not be swapped out.
func Sign(timestamp, n int64, secret string) string {
	payload := strconv.FormatInt(timestamp, 10) + strconv.FormatInt(n, 10) + secret
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
