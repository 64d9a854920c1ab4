// Package env loads environment variables from .env files, optionally
// encrypted with Ansible Vault, so configuration files can reference them.
package env

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nickalie/dirkit/internal/config"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// VaultPasswordEnv names the variable consulted when no vault password flag is given.
const VaultPasswordEnv = "VAULT_PASSWORD"

// Loader defines the interface for loading environment variables.
type Loader interface {
	Load(path, vaultPassword string) error
}

// PasswordPrompter asks the user for the vault password.
type PasswordPrompter func() (string, error)

// DefaultLoader implements the Loader interface using godotenv.
type DefaultLoader struct {
	vaultDecrypter config.VaultDecrypter
	prompt         PasswordPrompter
}

// NewLoader creates a new environment loader that prompts on stderr.
func NewLoader() Loader {
	return &DefaultLoader{
		vaultDecrypter: config.NewVaultDecrypter(),
		prompt:         terminalPrompt(os.Stdin, os.Stderr),
	}
}

// Load loads environment variables from a file. Files ending in .vault are
// decrypted first. Variables already set in the process are kept.
func (l *DefaultLoader) Load(path, vaultPassword string) error {
	if path == "" {
		return nil
	}

	if strings.HasSuffix(path, ".vault") {
		return l.loadVaultFile(path, vaultPassword)
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load env file '%s'", path)
	}
	return nil
}

// LoadAll loads every file in order. A prompted vault password is asked for
// at most once.
func LoadAll(loader Loader, paths []string, vaultPassword string) error {
	for _, path := range paths {
		if strings.HasSuffix(path, ".vault") && vaultPassword == "" {
			if dl, ok := loader.(*DefaultLoader); ok {
				password, err := dl.resolveVaultPassword("")
				if err != nil {
					return err
				}
				vaultPassword = password
			}
		}
		if err := loader.Load(path, vaultPassword); err != nil {
			return err
		}
	}
	return nil
}

func (l *DefaultLoader) loadVaultFile(path, password string) error {
	password, err := l.resolveVaultPassword(password)
	if err != nil {
		return err
	}

	decrypted, err := config.LoadVaultFile(path, password, l.vaultDecrypter)
	if err != nil {
		return err
	}

	return setEnvironmentVariables(decrypted)
}

// resolveVaultPassword prefers the explicit password, then VAULT_PASSWORD,
// then asks the user.
func (l *DefaultLoader) resolveVaultPassword(password string) (string, error) {
	if password != "" {
		return password, nil
	}

	if envPwd := os.Getenv(VaultPasswordEnv); envPwd != "" {
		return envPwd, nil
	}

	if l.prompt == nil {
		return "", config.ErrVaultPasswordRequired
	}

	promptedPwd, err := l.prompt()
	if err != nil {
		return "", errors.Wrap(err, "failed to get vault password")
	}
	return promptedPwd, nil
}

// setEnvironmentVariables parses decrypted dotenv content into the process environment.
func setEnvironmentVariables(decrypted string) error {
	envMap, err := godotenv.Unmarshal(decrypted)
	if err != nil {
		return errors.Wrap(err, "environment unmarshaling failed")
	}

	for k, v := range envMap {
		if err := os.Setenv(k, v); err != nil {
			return errors.Wrapf(err, "failed to set environment variable %s", k)
		}
	}

	return nil
}

// terminalPrompt reads a password without echo when in is a terminal and
// falls back to a plain line read otherwise.
func terminalPrompt(in *os.File, out io.Writer) PasswordPrompter {
	return func() (string, error) {
		fmt.Fprint(out, "Enter vault password: ")

		if term.IsTerminal(int(in.Fd())) {
			password, err := term.ReadPassword(int(in.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return "", errors.Wrap(err, "failed to read password")
			}
			return string(password), nil
		}

		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return "", errors.Wrap(err, "failed to read password")
		}
		return strings.TrimSpace(line), nil
	}
}
