// Package utils holds the token and password helpers used by staff
// authentication.
package utils

import (
    "crypto/rand"
    "crypto/sha256"
    "encoding/hex"
    "errors"
    "strconv"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT and its expiry.
type AccessToken struct {
    Token string
    Exp   time.Time
}

// RefreshToken is a random opaque token.  Only HashRefreshRaw(Raw) is
// stored server side.
type RefreshToken struct {
    Raw string
    Exp time.Time
}

// Claims carries the staff identity inside an access token.  The subject is
// the decimal user id.
type Claims struct {
    Role string `json:"role"`
    jwt.RegisteredClaims
}

// UserID parses the subject back into a user id.
func (c *Claims) UserID() (uint64, error) {
    return strconv.ParseUint(c.Subject, 10, 64)
}

var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken signs an access token for userID with the given role that
// expires ttlMin minutes from now.
func NewAccessToken(secret string, userID uint64, role string, ttlMin int) (AccessToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlMin) * time.Minute)
    claims := Claims{
        Role: role,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   strconv.FormatUint(userID, 10),
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(exp),
        },
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw against secret and returns its claims.  Only
// HMAC signatures are accepted.
func ParseAccessToken(secret, raw string) (*Claims, error) {
    var claims Claims
    tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return nil, ErrInvalidToken
    }
    if _, err := claims.UserID(); err != nil {
        return nil, ErrInvalidToken
    }
    return &claims, nil
}

// NewRefreshToken returns 48 random bytes hex encoded, valid for ttlDays.
func NewRefreshToken(ttlDays int) (RefreshToken, error) {
    raw, err := randomHex(48)
    if err != nil {
        return RefreshToken{}, err
    }
    return RefreshToken{
        Raw: raw,
        Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
    }, nil
}

// HashRefreshRaw returns the hex SHA-256 of a raw refresh token.
func HashRefreshRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
