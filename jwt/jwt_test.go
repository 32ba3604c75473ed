package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketcart/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewManager(key, &key.PublicKey, time.Minute)
}

func TestGenerateAndVerify(t *testing.T) {
	m := newTestManager(t)

	token, err := m.GenerateToken("buyer-1", RoleBuyer)
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "buyer-1", claims.Subject)
	assert.Equal(t, RoleBuyer, claims.Role)
}

func TestVerifyRejectsExpiredAndForeignTokens(t *testing.T) {
	m := newTestManager(t)
	token, err := m.GenerateToken("buyer-1", RoleBuyer)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.VerifyToken(token)
	assert.Error(t, err)

	other := newTestManager(t)
	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestLoadManagerVerifyOnly(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	dir := t.TempDir()
	pubPath := filepath.Join(dir, "public_key.pem")
	require.NoError(t, os.WriteFile(pubPath, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o600))

	m, err := LoadManager(config.AuthConfig{PublicKeyPath: pubPath, PrivateKeyPath: filepath.Join(dir, "missing.pem")})
	require.NoError(t, err)

	_, err = m.GenerateToken("b", RoleBuyer)
	assert.Error(t, err)
}
