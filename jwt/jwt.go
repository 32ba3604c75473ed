package jwt

import (
	"crypto/rsa"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"marketcart/config"
)

const (
	RoleBuyer   = "buyer"
	RoleService = "service"
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies RS256 tokens. The subject claim is the buyer id.
type Manager struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	ttl        time.Duration
	now        func() time.Time
}

func NewManager(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Manager{privateKey: privateKey, publicKey: publicKey, ttl: ttl, now: time.Now}
}

// LoadManager reads the key pair named in cfg. The private key is optional;
// without it the manager can only verify.
func LoadManager(cfg config.AuthConfig) (*Manager, error) {
	publicKey, err := loadPublicKey(cfg.PublicKeyPath)
	if err != nil {
		return nil, err
	}
	var privateKey *rsa.PrivateKey
	if cfg.PrivateKeyPath != "" {
		privateKey, err = loadPrivateKey(cfg.PrivateKeyPath)
		if err != nil && !os.IsNotExist(errors.Cause(err)) {
			return nil, err
		}
	}
	return NewManager(privateKey, publicKey, cfg.TokenTTL), nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read private key")
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(keyBytes)
	if err != nil {
		return nil, errors.Wrap(err, "parse private key")
	}

	return key, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	keyBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read public key")
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(keyBytes)
	if err != nil {
		return nil, errors.Wrap(err, "parse public key")
	}

	return key, nil
}

func (m *Manager) GenerateToken(subject, role string) (string, error) {
	if m.privateKey == nil {
		return "", errors.New("jwt: no private key loaded")
	}
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	return token.SignedString(m.privateKey)
}

// VerifyToken validates the signature and expiry and returns the claims.
func (m *Manager) VerifyToken(tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return m.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return Claims{}, errors.New("jwt: token has no subject")
	}
	return claims, nil
}
