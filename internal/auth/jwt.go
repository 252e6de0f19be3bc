// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/prombirzha/marketplace/internal/config"
	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/middleware"
)

var ErrSigningKeyMissing = errors.New("signing key not configured")

// JWTManager verifies access tokens issued by the identity provider. When
// a private key is configured it can also mint tokens for local work.
type JWTManager struct {
	privateKey jwk.Key
	publicKey  jwk.Key
	publicJWKS jwk.Set
	config     config.JWTConfig
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	keyID := uuid.New().String()[:8]

	var privateKey jwk.Key
	if cfg.PrivateKeyPath != "" {
		privateKeyPEM, err := os.ReadFile(cfg.PrivateKeyPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read private key: %w", err)
		default:
			privateKey, err = jwk.ParseKey(privateKeyPEM, jwk.WithPEM(true))
			if err != nil {
				return nil, fmt.Errorf("parse private key: %w", err)
			}
			if setErr := privateKey.Set(jwk.AlgorithmKey, jwa.ES256()); setErr != nil {
				return nil, fmt.Errorf("set algorithm: %w", setErr)
			}
			if setErr := privateKey.Set(jwk.KeyIDKey, keyID); setErr != nil {
				return nil, fmt.Errorf("set key id: %w", setErr)
			}
		}
	}

	publicKeyPEM, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}

	publicKey, err := jwk.ParseKey(publicKeyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	for key, value := range map[string]any{
		jwk.AlgorithmKey: jwa.ES256(),
		jwk.KeyIDKey:     keyID,
		jwk.KeyUsageKey:  "sig",
	} {
		if setErr := publicKey.Set(key, value); setErr != nil {
			return nil, fmt.Errorf("set %s: %w", key, setErr)
		}
	}

	publicJWKS := jwk.NewSet()
	if addErr := publicJWKS.AddKey(publicKey); addErr != nil {
		return nil, fmt.Errorf("add key to set: %w", addErr)
	}

	return &JWTManager{
		privateKey: privateKey,
		publicKey:  publicKey,
		publicJWKS: publicJWKS,
		config:     cfg,
	}, nil
}

func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	jwkPrivate, err := jwk.Import(privateKey)
	if err != nil {
		return fmt.Errorf("import private key: %w", err)
	}

	if setErr := jwkPrivate.Set(jwk.AlgorithmKey, jwa.ES256()); setErr != nil {
		return fmt.Errorf("set algorithm: %w", setErr)
	}

	privatePEM, err := jwk.Pem(jwkPrivate)
	if err != nil {
		return fmt.Errorf("encode private key: %w", err)
	}

	if writeErr := os.WriteFile(privateKeyPath, privatePEM, 0o600); writeErr != nil {
		return fmt.Errorf("write private key: %w", writeErr)
	}

	jwkPublic, err := jwkPrivate.PublicKey()
	if err != nil {
		return fmt.Errorf("derive public key: %w", err)
	}

	publicPEM, err := jwk.Pem(jwkPublic)
	if err != nil {
		return fmt.Errorf("encode public key: %w", err)
	}

	//nolint:gosec // G306: public key is intentionally world-readable
	if writeErr := os.WriteFile(publicKeyPath, publicPEM, 0o644); writeErr != nil {
		return fmt.Errorf("write public key: %w", writeErr)
	}

	return nil
}

// ProfileClaims are the OpenID profile claims the marketplace reads.
type ProfileClaims struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

func (m *JWTManager) CreateAccessToken(claims ProfileClaims) (string, error) {
	if m.privateKey == nil {
		return "", ErrSigningKeyMissing
	}

	now := time.Now()

	builder := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(claims.Subject).
		IssuedAt(now).
		Expiration(now.Add(m.config.AccessTokenExpire)).
		NotBefore(now)

	for name, value := range map[string]string{
		"email":       claims.Email,
		"given_name":  claims.FirstName,
		"family_name": claims.LastName,
		"picture":     claims.Picture,
	} {
		if value != "" {
			builder = builder.Claim(name, value)
		}
	}

	token, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.privateKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

func (m *JWTManager) VerifyAccessToken(
	_ context.Context,
	tokenString string,
) (*middleware.Identity, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.ES256(), m.publicKey),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	return &middleware.Identity{
		UserID:          subject,
		Email:           stringClaim(token, "email"),
		FirstName:       stringClaim(token, "given_name"),
		LastName:        stringClaim(token, "family_name"),
		ProfileImageURL: stringClaim(token, "picture"),
	}, nil
}

// stringClaim returns an optional profile claim, or "" when absent.
func stringClaim(token jwt.Token, name string) string {
	var value string
	if err := token.Get(name, &value); err != nil {
		return ""
	}
	return value
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

func (m *JWTManager) GetJWKSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=3600")

		if err := json.NewEncoder(w).Encode(m.publicJWKS); err != nil {
			http.Error(
				w,
				"Internal Server Error",
				http.StatusInternalServerError,
			)
			return
		}
	}
}

func (m *JWTManager) CanSign() bool {
	return m.privateKey != nil
}
