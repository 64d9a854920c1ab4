package main

import (
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/nickalie/dirkit/internal/platform/cli"
	"github.com/spf13/cobra"
)

// confirmFunc asks the user a yes/no question.
type confirmFunc func(cmd *cobra.Command, label string) (bool, error)

// command holds the persistent flags shared by every subcommand.
type command struct {
	app     *cli.App
	confirm confirmFunc

	configPath    string
	envPaths      []string
	vaultPassword string
	provider      string
	verbose       bool
}

func newRootCmd(app *cli.App) *cobra.Command {
	return buildRootCmd(app, promptConfirm)
}

func buildRootCmd(app *cli.App, confirm confirmFunc) *cobra.Command {
	c := &command{app: app, confirm: confirm}

	rootCmd := &cobra.Command{
		Use:   "dirkit",
		Short: "Recursive directory operations on local and remote file systems",
		Long: `dirkit creates, deletes and measures directory trees.

Paths are handled by a pluggable provider: "modern" (default) and "naive"
work on the local file system, "sftp" works on the remote host configured
in dirkit.yaml. Relative paths are resolved against the working directory
for local providers; remote paths must be absolute.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", cli.DefaultConfigPath, "Path to configuration file")
	flags.StringArrayVar(&c.envPaths, "env", nil, "Environment file to load (repeatable, .vault files are decrypted)")
	flags.StringVar(&c.vaultPassword, "vault-password", "", "Password for Ansible Vault environment files")
	flags.StringVar(&c.provider, "provider", "", "Provider to use: modern, naive or sftp (overrides config)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(
		c.mkdirpCmd(),
		c.mkdirCmd(),
		c.rmfCmd(),
		c.rmrfCmd(),
		c.rmrfqCmd(),
		c.duCmd(),
		c.mvCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// withSession opens a session for the duration of fn.
func (c *command) withSession(cmd *cobra.Command, fn func(*cli.Session) error) error {
	session, err := c.app.Open(cli.Options{
		ConfigPath:     c.configPath,
		ConfigRequired: cmd.Flags().Changed("config"),
		EnvPaths:       c.envPaths,
		VaultPassword:  c.vaultPassword,
		Provider:       c.provider,
		Verbose:        c.verbose,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	return fn(session)
}

func promptConfirm(cmd *cobra.Command, label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.ErrOrStderr()},
	}

	if _, err := prompt.Run(); err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return true, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
