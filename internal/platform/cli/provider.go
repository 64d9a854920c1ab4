package cli

import (
	"fmt"
	"io"

	"github.com/nickalie/dirkit/internal/config"
	"github.com/nickalie/dirkit/internal/core/dirops"
	"github.com/nickalie/dirkit/internal/infrastructure/fs"
	"github.com/nickalie/dirkit/internal/infrastructure/sftp"
)

// DefaultProviderFactory builds local providers directly and dials the
// configured remote for sftp.
type DefaultProviderFactory struct{}

// NewProviderFactory creates the default provider factory.
func NewProviderFactory() *DefaultProviderFactory {
	return &DefaultProviderFactory{}
}

// NewProvider implements ProviderFactory.
func (f *DefaultProviderFactory) NewProvider(cfg *config.Config) (dirops.FileSystemProvider, io.Closer, error) {
	name := cfg.GetProvider()

	if name == config.ProviderSFTP {
		if cfg.Remote == nil {
			return nil, nil, fmt.Errorf("provider '%s' requires a remote target", name)
		}
		fsys, err := sftp.Dial(cfg.Remote)
		if err != nil {
			return nil, nil, err
		}
		return fsys, fsys, nil
	}

	provider, ok := fs.New(name)
	if !ok {
		return nil, nil, fmt.Errorf("unknown provider '%s' (expected %s, %s or %s)",
			name, config.ProviderModern, config.ProviderNaive, config.ProviderSFTP)
	}
	return provider, nil, nil
}
