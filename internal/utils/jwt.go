package utils // package utils provides helpers for order tokens, ids and hashing

import (
    "crypto/rand"   // secure random number generation
    "encoding/hex"  // hex encoding of random ids
    "errors"        // sentinel errors
    "fmt"           // error wrapping
    "time"          // token expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

    "github.com/iliyamo/concert-ticketing/internal/model"
)

// ErrInvalidOrderToken is returned when an order token cannot be parsed,
// has a bad signature or has expired.
var ErrInvalidOrderToken = errors.New("invalid order token")

// OrderToken is a signed JWT carrying an order draft from the ticket
// selection to checkout.  ID is the token's jti and Exp its expiry.
type OrderToken struct {
    Token string    // the serialized JWT string
    ID    string    // jti claim, used to make the token single use
    Exp   time.Time // the UTC expiration time
}

// OrderClaims are the claims of an order token.  The draft travels in the
// "order" claim next to the registered jti/iat/exp claims.
type OrderClaims struct {
    Draft model.OrderDraft `json:"order"`
    jwt.RegisteredClaims
}

// NewOrderToken signs an HS256 token for the draft that expires after ttl.
func NewOrderToken(secret string, draft model.OrderDraft, ttl time.Duration) (OrderToken, error) {
    id, err := RandomHex(16)
    if err != nil {
        return OrderToken{}, err
    }
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := OrderClaims{
        Draft: draft,
        RegisteredClaims: jwt.RegisteredClaims{
            ID:        id,
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(exp),
        },
    }
    // Sign with HS256; the same secret verifies the token at checkout.
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return OrderToken{}, err
    }
    return OrderToken{Token: signed, ID: id, Exp: exp}, nil
}

// ParseOrderToken verifies raw and returns its claims.  Any failure is
// reported as ErrInvalidOrderToken wrapping the parser's error.
func ParseOrderToken(secret, raw string) (*OrderClaims, error) {
    var claims OrderClaims
    tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        // Reject anything that is not HMAC signed.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
        }
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ErrInvalidOrderToken, err)
    }
    if !tok.Valid || claims.ID == "" {
        return nil, ErrInvalidOrderToken
    }
    return &claims, nil
}

// RandomHex returns a hex‑encoded string generated from n bytes of
// cryptographically secure random data.
func RandomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
