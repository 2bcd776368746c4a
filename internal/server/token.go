package server

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tchu/internal/engine"
)

var ErrInvalidToken = errors.New("invalid seat token")

const seatTokenTTL = 12 * time.Hour

// SeatClaims bind a player to one seat of one game. The seat decides which
// private view the holder receives.
type SeatClaims struct {
	Game string          `json:"game"`
	Seat engine.PlayerID `json:"seat"`
	jwt.RegisteredClaims
}

// Tokens issues and checks HS256 seat tokens.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

// NewTokens uses secret to sign tokens; an empty secret is replaced by a
// random one, so tokens do not survive a restart.
func NewTokens(secret []byte) *Tokens {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		_, _ = rand.Read(secret)
	}
	return &Tokens{secret: secret, now: time.Now}
}

// Issue signs a token for player in seat of game.
func (t *Tokens) Issue(game, player string, seat engine.PlayerID) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SeatClaims{
		Game: game,
		Seat: seat,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   player,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(seatTokenTTL)),
		},
	})
	return token.SignedString(t.secret)
}

// Parse verifies a token and returns its claims.
func (t *Tokens) Parse(tokenStr string) (*SeatClaims, error) {
	claims := &SeatClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || !claims.Seat.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GeneratePlayerID creates a unique player ID.
func GeneratePlayerID() string {
	return uuid.NewString()
}
