package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/requestcontext"
)

// Claims represents the JWT claims for our access tokens. The payload binds
// principal kind, principal id, and brand scope; everything downstream
// derives tenant scope from these claims, never from request bodies.
type Claims struct {
	Kind        string `json:"kind"`
	PrincipalID string `json:"principal_id"`
	BrandID     string `json:"brand_id"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

func New(signingKey string, issuer string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
	}
}

// TTL reports the configured token lifetime. There is no refresh mechanism;
// expiry forces re-authentication.
func (s *Service) TTL() time.Duration { return s.ttl }

// Generate issues a signed token for the given principal.
func (s *Service) Generate(kind requestcontext.PrincipalKind, principalID string, brandID id.BrandID) (string, error) {
	now := time.Now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Kind:        string(kind),
		PrincipalID: principalID,
		BrandID:     brandID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// VerifyToken checks signature and expiry and returns the bound principal.
// It has no side effects and is safe to call on every request.
func (s *Service) VerifyToken(tokenString string) (requestcontext.Principal, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return requestcontext.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return requestcontext.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return requestcontext.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return requestcontext.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	kind := requestcontext.PrincipalKind(claims.Kind)
	if kind != requestcontext.PrincipalAdmin && kind != requestcontext.PrincipalMember {
		return requestcontext.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	brandID, err := id.ParseBrandID(claims.BrandID)
	if err != nil {
		return requestcontext.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return requestcontext.Principal{
		Kind:        kind,
		PrincipalID: claims.PrincipalID,
		BrandID:     brandID,
	}, nil
}
