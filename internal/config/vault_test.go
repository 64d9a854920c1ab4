package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockVaultDecrypter implements the VaultDecrypter interface for testing
type MockVaultDecrypter struct {
	decryptFunc func(content, password string) (string, error)
}

// Decrypt calls the mock function
func (m *MockVaultDecrypter) Decrypt(content, password string) (string, error) {
	return m.decryptFunc(content, password)
}

func untouchedDecrypter(t *testing.T) *MockVaultDecrypter {
	return &MockVaultDecrypter{
		decryptFunc: func(content, password string) (string, error) {
			t.Errorf("Decrypt should not be called")
			return "", nil
		},
	}
}

func writeVaultFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.env.vault")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNewVaultDecrypter(t *testing.T) {
	_, ok := NewVaultDecrypter().(*DefaultVaultDecrypter)
	assert.True(t, ok, "NewVaultDecrypter() did not return a *DefaultVaultDecrypter")
}

func TestDefaultVaultDecrypter_RejectsGarbage(t *testing.T) {
	_, err := NewVaultDecrypter().Decrypt("invalid content", "password")
	assert.Error(t, err)
}

func TestLoadVaultFile(t *testing.T) {
	t.Run("empty password", func(t *testing.T) {
		_, err := LoadVaultFile("dummy/path", "", untouchedDecrypter(t))
		assert.ErrorIs(t, err, ErrVaultPasswordRequired)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadVaultFile(filepath.Join(t.TempDir(), "none.vault"), "password", untouchedDecrypter(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), "failed to read vault file")
	})

	t.Run("decryption error", func(t *testing.T) {
		decryptErr := errors.New("bad mac")
		path := writeVaultFixture(t, "encrypted content")

		_, err := LoadVaultFile(path, "password", &MockVaultDecrypter{
			decryptFunc: func(string, string) (string, error) { return "", decryptErr },
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, decryptErr)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("success", func(t *testing.T) {
		path := writeVaultFixture(t, "encrypted content")

		result, err := LoadVaultFile(path, "correctpassword", &MockVaultDecrypter{
			decryptFunc: func(content, password string) (string, error) {
				assert.Equal(t, "encrypted content", content)
				assert.Equal(t, "correctpassword", password)
				return "SFTP_PASSWORD=hunter2", nil
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "SFTP_PASSWORD=hunter2", result)
	})
}
