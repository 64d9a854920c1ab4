// Package sftp provides a dirops.FileSystemProvider that operates on a remote
// host over SFTP. Connections are opened with golang.org/x/crypto/ssh using the
// credentials of a target.Target.
package sftp

import (
	"io"
	"os"
	"time"

	"github.com/nickalie/dirkit/internal/core/target"
	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const dialTimeout = 5 * time.Second

// Client represents the SFTP functionality used by FileSystem.
// *sftp.Client satisfies it.
type Client interface {
	Lstat(path string) (os.FileInfo, error)
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.FileInfo, error)
	Mkdir(path string) error
	MkdirAll(path string) error
	Remove(path string) error
	RemoveDirectory(path string) error
	PosixRename(oldname, newname string) error
	Rename(oldname, newname string) error
	Close() error
}

// Dial connects to tgt and returns a provider operating on its file system.
// The caller must Close it.
func Dial(tgt *target.Target) (*FileSystem, error) {
	hostKeyCallback, err := getHostKeyCallback(tgt)
	if err != nil {
		return nil, err
	}

	auth, err := getAuthMethods(tgt)
	if err != nil {
		return nil, err
	}

	sshConfig := &ssh.ClientConfig{
		User:            tgt.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
		Timeout:         dialTimeout,
	}

	sshClient, err := ssh.Dial("tcp", tgt.Address(), sshConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to target '%s'", tgt.GetName())
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, errors.Wrapf(err, "SFTP connection to '%s' failed", tgt.GetName())
	}

	return NewFileSystem(sftpClient, sshClient), nil
}

func getHostKeyCallback(tgt *target.Target) (ssh.HostKeyCallback, error) {
	if tgt.KnownHosts == "" {
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // host verification is opt-in through known_hosts
	}

	callback, err := knownhosts.New(tgt.KnownHosts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load known hosts from '%s'", tgt.KnownHosts)
	}
	return callback, nil
}

func getAuthMethods(tgt *target.Target) ([]ssh.AuthMethod, error) {
	methods := []ssh.AuthMethod{}

	if tgt.PrivateKey != "" {
		key, err := loadPrivateKey(tgt.PrivateKey)
		if err != nil {
			return nil, err
		}
		methods = append(methods, key)
	}

	if tgt.Password != "" {
		methods = append(methods, ssh.Password(tgt.Password))
	}

	if len(methods) == 0 {
		return nil, errors.Errorf("no credentials configured for target '%s'", tgt.GetName())
	}

	return methods, nil
}

func loadPrivateKey(keyPath string) (ssh.AuthMethod, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read private key")
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private key")
	}

	return ssh.PublicKeys(signer), nil
}

// multiCloser closes the SFTP session before the SSH connection beneath it.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
