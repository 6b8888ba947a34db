package utils // package utils provides helpers for issuing and checking seat-session tokens

import (
    "errors" // sentinel errors for token validation
    "time"   // expiry handling

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or
// claim checks.
var ErrInvalidToken = errors.New("invalid session token")

// SessionToken is a signed HS256 JWT bound to one seat session.  Token is
// the serialized string handed to the client; Exp mirrors the session
// expiry.
type SessionToken struct {
    Token string    `json:"token"`
    Exp   time.Time `json:"expires"`
}

// NewSessionToken signs a token whose subject is the session ID.  The
// token carries no user identity; holding it only proves access to the
// session it names.
func NewSessionToken(secret, sessionID string, exp time.Time) (SessionToken, error) {
    claims := jwt.RegisteredClaims{
        Subject:   sessionID,
        ExpiresAt: jwt.NewNumericDate(exp),
        IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp.UTC()}, nil
}

// ParseSessionToken verifies raw with secret and returns the session ID it
// names.  Only HMAC signing methods are accepted.
func ParseSessionToken(secret, raw string) (string, error) {
    claims := &jwt.RegisteredClaims{}
    tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid || claims.Subject == "" {
        return "", ErrInvalidToken
    }
    return claims.Subject, nil
}
