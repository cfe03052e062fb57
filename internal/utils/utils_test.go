package utils

import (
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/concert-ticketing/internal/model"
)

func sampleDraft() model.OrderDraft {
    return model.OrderDraft{
        Concert: model.ConcertSummary{ID: "2", Title: "TULUS - Manusia Tour"},
        Lines:   []model.OrderLine{{TierID: "t5", Name: "CAT 3", UnitPrice: 450000, Quantity: 2}},
        Total:   900000,
    }
}

func TestOrderTokenRoundTrip(t *testing.T) {
    tok, err := NewOrderToken("secret", sampleDraft(), time.Minute)
    require.NoError(t, err)
    assert.NotEmpty(t, tok.ID)

    claims, err := ParseOrderToken("secret", tok.Token)
    require.NoError(t, err)
    assert.Equal(t, tok.ID, claims.ID)
    assert.Equal(t, sampleDraft(), claims.Draft)
}

func TestOrderTokenRejectsWrongSecretAndExpiry(t *testing.T) {
    tok, err := NewOrderToken("secret", sampleDraft(), time.Minute)
    require.NoError(t, err)
    _, err = ParseOrderToken("other", tok.Token)
    assert.ErrorIs(t, err, ErrInvalidOrderToken)

    expired, err := NewOrderToken("secret", sampleDraft(), -time.Minute)
    require.NoError(t, err)
    _, err = ParseOrderToken("secret", expired.Token)
    assert.ErrorIs(t, err, ErrInvalidOrderToken)

    _, err = ParseOrderToken("secret", "not-a-token")
    assert.ErrorIs(t, err, ErrInvalidOrderToken)
}

func TestHashKey(t *testing.T) {
    a := HashKey("route:/v1/concerts")
    assert.Len(t, a, 64)
    assert.Equal(t, a, HashKey("route:/v1/concerts"))
    assert.NotEqual(t, a, HashKey("route:/v1/concerts/1"))
}

func TestRandomHex(t *testing.T) {
    a, err := RandomHex(8)
    require.NoError(t, err)
    b, err := RandomHex(8)
    require.NoError(t, err)
    assert.Len(t, a, 16)
    assert.NotEqual(t, a, b)
    assert.Equal(t, strings.ToLower(a), a)
}
