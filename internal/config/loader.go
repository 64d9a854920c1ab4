package config

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// CommandRunner is an interface for executing commands
type CommandRunner func(dir string, args ...string) ([]byte, error)

// Loader defines the interface for loading configuration.
type Loader interface {
	Load(configPath string) (*Config, error)
}

// DefaultLoader implements the Loader interface using file-based configuration.
type DefaultLoader struct {
	validator *validator.Validate
	loaders   map[string]func(string) (*Config, error)
	cmdRunner CommandRunner
}

var envReference = regexp.MustCompile(`\${(\w+)}`)

// NewLoader creates a new configuration loader with default implementations.
func NewLoader() Loader {
	return newDefaultLoader(execCommand)
}

func newDefaultLoader(runner CommandRunner) *DefaultLoader {
	loader := &DefaultLoader{
		validator: validator.New(),
		loaders:   make(map[string]func(string) (*Config, error)),
		cmdRunner: runner,
	}

	loader.loaders[".yaml"] = loader.loadYAMLConfig
	loader.loaders[".yml"] = loader.loadYAMLConfig
	loader.loaders[".json"] = loader.loadJSONConfig
	loader.loaders[".toml"] = loader.loadTOMLConfig
	loader.loaders[".ts"] = loader.loadTypeScriptConfig
	loader.loaders[".js"] = loader.loadJavaScriptConfig
	loader.loaders[".mjs"] = loader.loadJavaScriptConfig
	loader.loaders[".go"] = loader.loadGolangConfig

	return loader
}

// execCommand runs a command and returns its standard output.
// Standard error is streamed to the console as it arrives.
func execCommand(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "failed to start '%s'", args[0])
	}

	// the pipe must be drained before Wait
	var diagnostics bytes.Buffer
	streamLines(stderr, os.Stderr, &diagnostics)

	if err := cmd.Wait(); err != nil {
		return stdout.Bytes(), errors.Wrapf(err, "'%s' failed\n%s", args[0], diagnostics.String())
	}

	return stdout.Bytes(), nil
}

func streamLines(r io.Reader, console io.Writer, collected *bytes.Buffer) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Fprintln(console, line)
		collected.WriteString(line + "\n")
	}
}

// Load loads and validates configuration from the specified path.
func (l *DefaultLoader) Load(configPath string) (*Config, error) {
	config, err := l.loadConfigByExtension(configPath)
	if err != nil {
		return nil, err
	}

	if err := l.validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *DefaultLoader) loadConfigByExtension(configPath string) (*Config, error) {
	ext := strings.ToLower(filepath.Ext(configPath))

	loader, ok := l.loaders[ext]
	if !ok {
		return nil, errors.Errorf("unsupported config file extension: %s", ext)
	}

	return loader(configPath)
}

// validateConfig checks the configuration and fills in derived defaults.
func (l *DefaultLoader) validateConfig(config *Config) error {
	if err := l.validator.Struct(config); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return errors.Errorf("config validation failed: %s", formatValidationErrors(validationErrors))
		}
		return errors.Wrap(err, "config validation failed")
	}

	if config.Provider == "" {
		config.Provider = ProviderModern
	}

	if config.Remote != nil && config.Remote.Name == "" {
		config.Remote.Name = config.Remote.Host
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(errs validator.ValidationErrors) string {
	errMsgs := make([]string, 0, len(errs))
	for _, err := range errs {
		errMsgs = append(errMsgs, fmt.Sprintf(
			"Field '%s' failed validation: %s (condition: %s)",
			err.Namespace(),
			err.Tag(),
			err.Param(),
		))
	}
	return strings.Join(errMsgs, "\n")
}

// readExpanded reads a configuration file and expands ${VAR} references.
func readExpanded(configPath string) ([]byte, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return []byte(replaceEnvVariables(string(data))), nil
}

func (l *DefaultLoader) loadJSONConfig(configPath string) (*Config, error) {
	data, err := readExpanded(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}

	return &config, nil
}

func (l *DefaultLoader) loadTOMLConfig(configPath string) (*Config, error) {
	data, err := readExpanded(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse TOML")
	}

	return &config, nil
}

func (l *DefaultLoader) loadYAMLConfig(configPath string) (*Config, error) {
	data, err := readExpanded(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}

	return &config, nil
}

// loadTypeScriptConfig bundles the file with esbuild and evaluates the result with node.
func (l *DefaultLoader) loadTypeScriptConfig(configPath string) (*Config, error) {
	tmpDir, err := os.MkdirTemp("", "dirkit-config")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp dir")
	}
	defer os.RemoveAll(tmpDir)

	err = os.WriteFile(filepath.Join(tmpDir, "package.json"), []byte("{\"type\":\"module\"}"), 0644)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create package.json")
	}

	jsFile := filepath.Join(tmpDir, "config.js")
	result := api.Build(api.BuildOptions{
		EntryPoints: []string{configPath},
		Bundle:      true,
		Platform:    api.PlatformNode,
		Format:      api.FormatESModule,
		Write:       true,
		Outfile:     jsFile,
	})

	if len(result.Errors) > 0 {
		return nil, errors.Errorf("failed to build TypeScript: %v", result.Errors[0].Text)
	}

	return l.loadJavaScriptConfig(jsFile)
}

// loadJavaScriptConfig imports the module with node and reads its default export.
// A function export is called and awaited.
func (l *DefaultLoader) loadJavaScriptConfig(configPath string) (*Config, error) {
	return l.loadCmdConfig(
		filepath.Dir(configPath),
		"node",
		"-e",
		fmt.Sprintf(
			"(async ()=>{"+
				"const m=await import(\"./%s\");"+
				"console.log(JSON.stringify("+
				"typeof m.default==='function'?await m.default():m.default));"+
				"})();",
			filepath.Base(configPath),
		),
	)
}

// loadGolangConfig runs a Go program that prints its configuration with Builder.Print.
func (l *DefaultLoader) loadGolangConfig(configPath string) (*Config, error) {
	return l.loadCmdConfig("./", "go", "run", configPath)
}

// loadCmdConfig parses the last non-empty output line of a command as JSON.
func (l *DefaultLoader) loadCmdConfig(dir string, args ...string) (*Config, error) {
	output, err := l.cmdRunner(dir, args...)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return nil, errors.New("config command produced no output")
	}

	var config Config
	if err := json.Unmarshal([]byte(last), &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config output")
	}

	return &config, nil
}

// replaceEnvVariables replaces ${VAR} references with values from the environment.
// Unset variables expand to an empty string.
func replaceEnvVariables(content string) string {
	return envReference.ReplaceAllStringFunc(content, func(s string) string {
		key := envReference.FindStringSubmatch(s)[1]
		return os.Getenv(key)
	})
}
