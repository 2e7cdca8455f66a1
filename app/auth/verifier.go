package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"sync"
	"time"

	"quillpad/app/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

// certCacheTTL is how long a fetched certificate set is reused before the
// provider is asked again.
const certCacheTTL = time.Hour

// TokenVerifier checks an identity token issued by the external provider.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}

// certSource returns the provider's current signing keys indexed by kid.
type certSource func(ctx context.Context) (map[string]*rsa.PublicKey, error)

// ProviderVerifier validates RS256 identity tokens against the provider's
// published x509 certificates.
type ProviderVerifier struct {
	audience string
	issuer   string
	certs    certSource

	mu      sync.Mutex
	cached  map[string]*rsa.PublicKey
	fetched time.Time
}

func NewProviderVerifier(certsURL, audience, issuer string) *ProviderVerifier {
	client := &http.Client{Timeout: 10 * time.Second}
	v := &ProviderVerifier{audience: audience, issuer: issuer}
	v.certs = func(ctx context.Context) (map[string]*rsa.PublicKey, error) {
		return fetchCerts(ctx, client, certsURL)
	}
	return v
}

// Verify checks the token's signature, expiry, audience and issuer, and
// returns the embedded identity. Any failure maps to ErrUnauthorized.
func (v *ProviderVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	keys, err := v.keys(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("fetch provider certificates: %w", err)
	}

	token, err := jwt.Parse(idToken,
		func(t *jwt.Token) (interface{}, error) {
			kid, _ := t.Header["kid"].(string)
			key, ok := keys[kid]
			if !ok {
				return nil, fmt.Errorf("unknown key id %q", kid)
			}
			return key, nil
		},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.audience),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Identity{}, apperrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, apperrors.ErrUnauthorized
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return Identity{}, apperrors.ErrUnauthorized
	}
	email, _ := claims["email"].(string)

	return Identity{Subject: subject, Email: email}, nil
}

func (v *ProviderVerifier) keys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cached != nil && time.Since(v.fetched) < certCacheTTL {
		return v.cached, nil
	}

	keys, err := v.certs(ctx)
	if err != nil {
		// Serve a stale set over failing outright.
		if v.cached != nil {
			return v.cached, nil
		}
		return nil, err
	}

	v.cached = keys
	v.fetched = time.Now()
	return keys, nil
}

// fetchCerts downloads the provider's kid→PEM certificate map and extracts
// the RSA public keys.
func fetchCerts(ctx context.Context, client *http.Client, url string) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("certificate endpoint returned %s", resp.Status)
	}

	var raw map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode certificate response: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(raw))
	for kid, pemData := range raw {
		key, err := parsePublicKey(pemData)
		if err != nil {
			return nil, fmt.Errorf("parse certificate %q: %w", kid, err)
		}
		keys[kid] = key
	}
	return keys, nil
}

func parsePublicKey(pemData string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}

	switch block.Type {
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}
		key, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("certificate key is %T, want RSA", cert.PublicKey)
		}
		return key, nil
	default:
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		key, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("public key is %T, want RSA", pub)
		}
		return key, nil
	}
}
