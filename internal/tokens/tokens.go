package tokens

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/config"
	"github.com/glovebox/glovebox/backend/go-services/internal/models"
	"github.com/glovebox/glovebox/backend/go-services/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is the "iss" claim of locally issued access tokens.
const Issuer = "glovebox"

// GenerateAccessToken creates a signed JWT access token for the user.
// The subject is the user id.
func GenerateAccessToken(cfg *config.Config, u *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   Issuer,
		"sub":   u.ID,
		"name":  u.Name,
		"email": u.Email,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

type claimsToken struct {
	claims jwt.MapClaims
}

func (t *claimsToken) Claims(v interface{}) error {
	b, err := json.Marshal(t.claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Verifier checks HS256 access tokens issued by GenerateAccessToken.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) parse(raw string, opts ...jwt.ParserOption) (jwt.MapClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(Issuer))
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// Verify implements middleware.Verifier.
func (v *Verifier) Verify(_ context.Context, raw string) (middleware.Token, error) {
	claims, err := v.parse(raw)
	if err != nil {
		return nil, err
	}
	return &claimsToken{claims: claims}, nil
}

// Remaining returns how long a valid token has left before it expires.
func (v *Verifier) Remaining(raw string, now time.Time) (time.Duration, error) {
	claims, err := v.parse(raw)
	if err != nil {
		return 0, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, fmt.Errorf("token has no expiry")
	}
	return exp.Sub(now), nil
}
