package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sosedoff/ansible-vault-go"
)

// VaultDecrypter defines the interface for decrypting Ansible Vault
// encrypted content.
type VaultDecrypter interface {
	Decrypt(content, password string) (string, error)
}

// DefaultVaultDecrypter implements VaultDecrypter using ansible-vault-go.
type DefaultVaultDecrypter struct{}

// NewVaultDecrypter creates a new instance of the default vault decrypter.
func NewVaultDecrypter() VaultDecrypter {
	return &DefaultVaultDecrypter{}
}

// Decrypt decrypts content encrypted with Ansible Vault.
func (d *DefaultVaultDecrypter) Decrypt(content, password string) (string, error) {
	return vault.Decrypt(content, password)
}

// ErrVaultPasswordRequired is returned when a vault file is loaded without a password.
var ErrVaultPasswordRequired = errors.New("vault password is required")

// LoadVaultFile reads an Ansible Vault file and returns its plaintext.
func LoadVaultFile(path, password string, decrypter VaultDecrypter) (string, error) {
	if password == "" {
		return "", ErrVaultPasswordRequired
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read vault file '%s'", path)
	}

	decrypted, err := decrypter.Decrypt(string(data), password)
	if err != nil {
		return "", errors.Wrapf(err, "vault decryption of '%s' failed", path)
	}

	return decrypted, nil
}
