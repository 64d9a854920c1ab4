package env

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nickalie/dirkit/internal/config"
)

// MockVaultDecrypter implements the VaultDecrypter interface for testing
type MockVaultDecrypter struct {
	decryptFunc func(content, password string) (string, error)
}

// Decrypt calls the mock function
func (m *MockVaultDecrypter) Decrypt(content, password string) (string, error) {
	return m.decryptFunc(content, password)
}

func expectPassword(want, plaintext string) *MockVaultDecrypter {
	return &MockVaultDecrypter{
		decryptFunc: func(content, password string) (string, error) {
			if password != want {
				return "", errors.New("incorrect password")
			}
			return plaintext, nil
		},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// unset clears key for the duration of the test.
func unset(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestNewLoader(t *testing.T) {
	loader, ok := NewLoader().(*DefaultLoader)
	if !ok {
		t.Fatalf("NewLoader() did not return a *DefaultLoader")
	}
	if loader.prompt == nil {
		t.Errorf("Expected a terminal prompt to be configured")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if err := NewLoader().Load("", ""); err != nil {
		t.Errorf("Load with empty path should not error, got: %v", err)
	}
}

func TestLoadRegularFile(t *testing.T) {
	unset(t, "DIRKIT_TEST_KEY")
	path := writeFile(t, ".env", "DIRKIT_TEST_KEY=test_value")

	if err := NewLoader().Load(path, ""); err != nil {
		t.Fatalf("Expected no error loading .env file, got: %v", err)
	}
	if value := os.Getenv("DIRKIT_TEST_KEY"); value != "test_value" {
		t.Errorf("Expected DIRKIT_TEST_KEY to be 'test_value', got '%s'", value)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	err := NewLoader().Load(filepath.Join(t.TempDir(), "non-existent.env"), "")
	if err == nil {
		t.Fatalf("Expected error when loading non-existent file, got nil")
	}
}

func TestLoadVaultFileWithPassword(t *testing.T) {
	unset(t, "SFTP_PASSWORD")
	path := writeFile(t, "secrets.env.vault", "encrypted content")
	loader := &DefaultLoader{vaultDecrypter: expectPassword("test-password", "SFTP_PASSWORD=hunter2")}

	if err := loader.Load(path, "test-password"); err != nil {
		t.Fatalf("Expected no error loading vault file, got: %v", err)
	}
	if value := os.Getenv("SFTP_PASSWORD"); value != "hunter2" {
		t.Errorf("Expected SFTP_PASSWORD to be 'hunter2', got '%s'", value)
	}
}

func TestLoadVaultFileWithEnvironmentPassword(t *testing.T) {
	unset(t, "ENV_PASSWORD_KEY")
	t.Setenv(VaultPasswordEnv, "env-password")
	path := writeFile(t, "env-password.vault", "encrypted content")
	loader := &DefaultLoader{vaultDecrypter: expectPassword("env-password", "ENV_PASSWORD_KEY=env_password_value")}

	if err := loader.Load(path, ""); err != nil {
		t.Fatalf("Expected no error loading vault file with env password, got: %v", err)
	}
	if value := os.Getenv("ENV_PASSWORD_KEY"); value != "env_password_value" {
		t.Errorf("Expected ENV_PASSWORD_KEY to be 'env_password_value', got '%s'", value)
	}
}

func TestLoadVaultFileWithPromptedPassword(t *testing.T) {
	unset(t, VaultPasswordEnv)
	unset(t, "PROMPTED_KEY")
	path := writeFile(t, "prompted.vault", "encrypted content")

	prompts := 0
	loader := &DefaultLoader{
		vaultDecrypter: expectPassword("prompted-password", "PROMPTED_KEY=prompted_value"),
		prompt: func() (string, error) {
			prompts++
			return "prompted-password", nil
		},
	}

	if err := loader.Load(path, ""); err != nil {
		t.Fatalf("Expected no error loading vault file with prompted password, got: %v", err)
	}
	if prompts != 1 {
		t.Errorf("Expected exactly one prompt, got %d", prompts)
	}
	if value := os.Getenv("PROMPTED_KEY"); value != "prompted_value" {
		t.Errorf("Expected PROMPTED_KEY to be 'prompted_value', got '%s'", value)
	}
}

func TestLoadVaultFileWithoutAnyPassword(t *testing.T) {
	unset(t, VaultPasswordEnv)
	path := writeFile(t, "nopass.vault", "encrypted content")
	loader := &DefaultLoader{vaultDecrypter: expectPassword("x", "")}

	err := loader.Load(path, "")
	if !errors.Is(err, config.ErrVaultPasswordRequired) {
		t.Errorf("Expected ErrVaultPasswordRequired, got: %v", err)
	}
}

func TestLoadVaultFilePromptError(t *testing.T) {
	unset(t, VaultPasswordEnv)
	path := writeFile(t, "prompt-error.vault", "encrypted content")
	loader := &DefaultLoader{
		vaultDecrypter: expectPassword("x", ""),
		prompt:         func() (string, error) { return "", errors.New("no tty") },
	}

	err := loader.Load(path, "")
	if err == nil || err.Error() != "failed to get vault password: no tty" {
		t.Errorf("Expected prompt failure, got: %v", err)
	}
}

func TestLoadVaultFileDecryptionError(t *testing.T) {
	path := writeFile(t, "error.vault", "invalid content")
	loader := &DefaultLoader{vaultDecrypter: expectPassword("right", "")}

	if err := loader.Load(path, "wrong"); err == nil {
		t.Errorf("Expected error when decryption fails, got nil")
	}
}

func TestLoadAllPromptsOnce(t *testing.T) {
	unset(t, VaultPasswordEnv)
	unset(t, "FIRST_KEY")
	unset(t, "SECOND_KEY")
	unset(t, "PLAIN_KEY")

	first := writeFile(t, "first.vault", "a")
	second := writeFile(t, "second.vault", "b")
	plain := writeFile(t, "plain.env", "PLAIN_KEY=plain")

	prompts := 0
	loader := &DefaultLoader{
		vaultDecrypter: &MockVaultDecrypter{
			decryptFunc: func(content, password string) (string, error) {
				if password != "once" {
					return "", errors.New("incorrect password")
				}
				if content == "a" {
					return "FIRST_KEY=1", nil
				}
				return "SECOND_KEY=2", nil
			},
		},
		prompt: func() (string, error) {
			prompts++
			return "once", nil
		},
	}

	if err := LoadAll(loader, []string{plain, first, second}, ""); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if prompts != 1 {
		t.Errorf("Expected exactly one prompt, got %d", prompts)
	}
	for key, want := range map[string]string{"FIRST_KEY": "1", "SECOND_KEY": "2", "PLAIN_KEY": "plain"} {
		if got := os.Getenv(key); got != want {
			t.Errorf("Expected %s to be '%s', got '%s'", key, want, got)
		}
	}
}

func TestLoadAllStopsAtFirstError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")
	if err := LoadAll(NewLoader(), []string{missing}, ""); err == nil {
		t.Errorf("Expected error for missing env file, got nil")
	}
}

func TestTerminalPromptFallsBackToLineRead(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	defer r.Close()

	if _, err := w.Write([]byte("piped-password\n")); err != nil {
		t.Fatalf("Failed to write to pipe: %v", err)
	}
	w.Close()

	out := writeFile(t, "prompt.txt", "")
	outFile, err := os.OpenFile(out, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("Failed to open prompt output: %v", err)
	}
	defer outFile.Close()

	password, err := terminalPrompt(r, outFile)()
	if err != nil {
		t.Fatalf("Prompt failed: %v", err)
	}
	if password != "piped-password" {
		t.Errorf("Expected 'piped-password', got '%s'", password)
	}

	written, _ := os.ReadFile(out)
	if string(written) != "Enter vault password: " {
		t.Errorf("Unexpected prompt output: %q", written)
	}
}

func TestSetEnvironmentVariablesInvalidContent(t *testing.T) {
	if err := setEnvironmentVariables("===INVALID===CONTENT==="); err == nil {
		t.Errorf("Expected error when setting environment variables from invalid content, got nil")
	}
}

func TestSetEnvironmentVariablesMultipleVars(t *testing.T) {
	unset(t, "VAR1")
	unset(t, "VAR2")

	if err := setEnvironmentVariables("VAR1=value1\nVAR2=value2"); err != nil {
		t.Fatalf("Expected no error setting multiple environment variables, got: %v", err)
	}
	if os.Getenv("VAR1") != "value1" || os.Getenv("VAR2") != "value2" {
		t.Errorf("Expected VAR1=value1 and VAR2=value2, got '%s' and '%s'", os.Getenv("VAR1"), os.Getenv("VAR2"))
	}
}

func TestResolveVaultPasswordPrecedence(t *testing.T) {
	t.Setenv(VaultPasswordEnv, "env-password")
	loader := &DefaultLoader{
		prompt: func() (string, error) {
			t.Errorf("prompt should not be used while a password is available")
			return "", nil
		},
	}

	password, err := loader.resolveVaultPassword("direct-password")
	if err != nil || password != "direct-password" {
		t.Errorf("Expected 'direct-password', got '%s' (%v)", password, err)
	}

	password, err = loader.resolveVaultPassword("")
	if err != nil || password != "env-password" {
		t.Errorf("Expected 'env-password', got '%s' (%v)", password, err)
	}
}
