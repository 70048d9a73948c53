package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mailgen/internal/config"
	"mailgen/internal/logging"
	"mailgen/internal/mail"
)

// options are filled by persistent flags and PersistentPreRunE.
type options struct {
	configPath string
	logLevel   string
	addr       string

	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "mailgen",
		Short:         "Generate email replies and summaries with a pretrained seq2seq model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return err
			}
			if o.logLevel != "" {
				cfg.Log.Level = o.logLevel
			}
			if o.addr != "" {
				cfg.Server.Addr = o.addr
			}
			o.cfg = cfg
			o.log = logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error { return runServe(cmd.Context(), o) },
	}
	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", os.Getenv(config.EnvPrefix+"CONFIG"), "Path to config file (.yaml|.yml|.json|.toml)")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")
	root.PersistentFlags().StringVar(&o.addr, "addr", "", "HTTP listen address, e.g. 0.0.0.0:5001 (overrides config)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Load the model and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return runServe(cmd.Context(), o) },
	}
	root.AddCommand(serve, oneShotCmd(o, "reply"), oneShotCmd(o, "summary"))
	return root
}

// oneShotCmd generates a single reply or summary from a file, the arguments or stdin.
func oneShotCmd(o *options, task string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     task + " [text...]",
		Short:   "Generate a " + task + " for one email and print it",
		Example: "  mailgen " + task + " -f email.txt\n  cat email.txt | mailgen " + task,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), file, args)
			if err != nil {
				return err
			}
			content, err := mail.ValidateContent(&text)
			if err != nil {
				return err
			}
			a, err := buildApp(cmd.Context(), o.cfg, o.log)
			if err != nil {
				return err
			}
			defer a.close()
			var out string
			if task == "reply" {
				out, err = a.svc.GenerateReply(cmd.Context(), content)
			} else {
				out, err = a.svc.GenerateSummary(cmd.Context(), content)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the email from this file ('-' for stdin)")
	return cmd
}

func readInput(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case file != "" && file != "-":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case len(args) > 0 && file == "":
		return strings.Join(args, " "), nil
	case stdin != nil:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	return "", errors.New("no input: pass text, --file or pipe stdin")
}
