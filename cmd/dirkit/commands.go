package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/nickalie/dirkit/internal/platform/cli"
	"github.com/spf13/cobra"
)

func (c *command) mkdirpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdirp PATH...",
		Short: "Create directories together with missing parents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *cli.Session) error {
				return s.Mkdirp(args...)
			})
		},
	}
}

func (c *command) mkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir PATH...",
		Short: "Create single directories; parents must exist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *cli.Session) error {
				return s.Mkdir(args...)
			})
		},
	}
}

func (c *command) rmfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rmf PATH...",
		Short: "Delete files and empty directories, ignoring missing paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *cli.Session) error {
				return s.Rmf(args...)
			})
		},
	}
}

func (c *command) rmrfCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "rmrf PATH...",
		Short: "Delete directory trees, stopping at the first failure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *cli.Session) error {
				for _, arg := range args {
					if interactive {
						ok, err := c.confirm(cmd, fmt.Sprintf("Delete '%s' and everything below it", arg))
						if err != nil {
							return err
						}
						if !ok {
							s.Logger().Info("Skipped '%s'", arg)
							continue
						}
					}
					if err := s.Rmrf(arg); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask before deleting each path")
	return cmd
}

func (c *command) rmrfqCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rmrfq PATH...",
		Short: "Delete directory trees as far as possible, never failing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *cli.Session) error {
				s.Rmrfq(args...)
				return nil
			})
		},
	}
}

func (c *command) duCmd() *cobra.Command {
	var human bool

	cmd := &cobra.Command{
		Use:   "du PATH...",
		Short: "Print recursive sizes, counting 4096 bytes per directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *cli.Session) error {
				usage, err := s.Usage(args...)
				if err != nil {
					return err
				}
				for _, u := range usage {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", formatSize(u.Bytes, human), u.Path)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&human, "human-readable", "H", false, "Print sizes like 12 kB")
	return cmd
}

func (c *command) mvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv SRC DST",
		Short: "Rename a file or directory on the same device",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *cli.Session) error {
				return s.Move(args[0], args[1])
			})
		},
	}
}

func formatSize(size int64, human bool) string {
	if !human {
		return fmt.Sprintf("%d", size)
	}
	return humanize.Bytes(uint64(size))
}
