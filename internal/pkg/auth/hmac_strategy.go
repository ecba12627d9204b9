package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

var tokenEncoding = base64.RawURLEncoding

// HMACStrategy signs "<subject>\n<expiry>" with HMAC-SHA256. Tokens have the
// form base64(payload) "." base64(signature).
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken generates a signed token for subject.
func (s *HMACStrategy) IssueToken(subject string) (string, error) {
	if subject == "" || strings.ContainsRune(subject, '\n') {
		return "", ErrInvalidToken
	}
	expires := s.now().Add(s.ttl).Unix()
	payload := subject + "\n" + strconv.FormatInt(expires, 10)
	return tokenEncoding.EncodeToString([]byte(payload)) + "." + tokenEncoding.EncodeToString(s.sign(payload)), nil
}

// ParseToken validates token and returns its subject.
func (s *HMACStrategy) ParseToken(token string) (string, error) {
	encodedPayload, encodedSig, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrInvalidToken
	}
	rawPayload, err := tokenEncoding.DecodeString(encodedPayload)
	if err != nil {
		return "", ErrInvalidToken
	}
	sig, err := tokenEncoding.DecodeString(encodedSig)
	if err != nil {
		return "", ErrInvalidToken
	}

	payload := string(rawPayload)
	if !hmac.Equal(s.sign(payload), sig) {
		return "", ErrInvalidToken
	}

	subject, expiresStr, ok := strings.Cut(payload, "\n")
	if !ok || subject == "" {
		return "", ErrInvalidToken
	}
	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !s.now().Before(time.Unix(expires, 0)) {
		return "", ErrInvalidToken
	}

	return subject, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}
