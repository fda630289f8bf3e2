package transport

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SigningMethod names a supported JWT algorithm.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
	RS256 SigningMethod = "RS256"
	ES256 SigningMethod = "ES256"
)

// JWTConfig configures per-request token minting.
type JWTConfig struct {
	// Method is the signing algorithm (default HS256).
	Method SigningMethod
	// Secret is the HMAC key (HS*).
	Secret string
	// PrivateKey is an *rsa.PrivateKey (RS256) or *ecdsa.PrivateKey (ES256).
	PrivateKey any
	Issuer     string
	Subject    string
	Audience   []string
	// TTL is the token lifetime (default 1m).
	TTL time.Duration
	// Claims are extra claims merged into every token.
	Claims map[string]any

	now func() time.Time
}

func (c *JWTConfig) validate() error {
	switch c.method() {
	case HS256, HS384, HS512:
		if c.Secret == "" {
			return fmt.Errorf("transport: jwt secret is required for %s", c.method())
		}
	case RS256:
		if _, ok := c.PrivateKey.(*rsa.PrivateKey); !ok {
			return fmt.Errorf("transport: jwt RS256 requires an *rsa.PrivateKey")
		}
	case ES256:
		if _, ok := c.PrivateKey.(*ecdsa.PrivateKey); !ok {
			return fmt.Errorf("transport: jwt ES256 requires an *ecdsa.PrivateKey")
		}
	default:
		return fmt.Errorf("transport: unsupported jwt signing method: %s", c.Method)
	}
	return nil
}

func (c *JWTConfig) method() SigningMethod {
	if c.Method == "" {
		return HS256
	}
	return c.Method
}

func (c *JWTConfig) signing() (gojwt.SigningMethod, any) {
	switch c.method() {
	case HS384:
		return gojwt.SigningMethodHS384, []byte(c.Secret)
	case HS512:
		return gojwt.SigningMethodHS512, []byte(c.Secret)
	case RS256:
		return gojwt.SigningMethodRS256, c.PrivateKey
	case ES256:
		return gojwt.SigningMethodES256, c.PrivateKey
	default:
		return gojwt.SigningMethodHS256, []byte(c.Secret)
	}
}

// mint signs a fresh token with a unique id.
func (c *JWTConfig) mint() (string, error) {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	issued := now()

	claims := gojwt.MapClaims{}
	for k, v := range c.Claims {
		claims[k] = v
	}
	claims["jti"] = uuid.NewString()
	claims["iat"] = gojwt.NewNumericDate(issued)
	claims["exp"] = gojwt.NewNumericDate(issued.Add(ttl))
	if c.Issuer != "" {
		claims["iss"] = c.Issuer
	}
	if c.Subject != "" {
		claims["sub"] = c.Subject
	}
	if len(c.Audience) > 0 {
		claims["aud"] = c.Audience
	}

	method, key := c.signing()
	token, err := gojwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("transport: sign jwt: %w", err)
	}
	return token, nil
}
