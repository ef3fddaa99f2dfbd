// slc is the command line driver for the straight-line language compiler.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	slc "github.com/valentinnodan/compilers-supplementary"
	"github.com/valentinnodan/compilers-supplementary/internal/version"
)

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "slc:", err)
		os.Exit(1)
	}
}

// newRootCommand builds the command tree. stdin and stdout are parameters so
// tests can drive the run subcommand with buffers.
func newRootCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:           "slc",
		Short:         "compiler for the straight-line language",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.AddCommand(
		newCompileCommand(),
		newRunCommand(stdin, stdout),
		newIRCommand(stdout),
		newVersionCommand(stdout),
	)
	return cmd
}

func newCompileCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "compile FILE",
		Short: "compile a source file to x86 assembly",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.Compile.Output
			}
			return compileFile(args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input with .s extension)")
	return cmd
}

func compileFile(path, output string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(path, ".expr") + ".s"
	}
	logrus.WithFields(logrus.Fields{"input": path, "output": output}).Debug("compiling")
	asm, err := slc.Compile(source)
	if err != nil {
		return errors.Wrapf(err, "compiling %s", path)
	}
	return os.WriteFile(output, asm, 0o644)
}

func newRunCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var engine string
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "parse a source file and execute it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("engine") && cfg.Run.Engine != "" {
				engine = cfg.Run.Engine
			}
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"input": args[0], "engine": engine}).Debug("running")
			switch engine {
			case "ast":
				return slc.Run(source, stdin, stdout)
			case "stackmachine":
				return slc.RunStackMachine(source, stdin, stdout)
			default:
				return errors.Errorf("unknown engine %q (want ast or stackmachine)", engine)
			}
		},
	}
	cmd.Flags().StringVar(&engine, "engine", "ast", "execution engine: ast or stackmachine")
	return cmd
}

func newIRCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "ir FILE",
		Short: "print the stack-machine program for a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			listing, err := slc.DumpStackMachine(source)
			if err != nil {
				return err
			}
			_, err = stdout.Write(listing)
			return err
		},
	}
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the slc version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintln(stdout, version.GetVersion())
			return err
		},
	}
}
