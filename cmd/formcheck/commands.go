package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcheck/pkg/fieldset"
	"github.com/goliatone/go-formcheck/pkg/formstate"
	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/renderers/tui"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// errInvalidData marks a validate run that found field errors. The error map
// has already been printed, so main only sets the exit status.
var errInvalidData = errors.New("data has validation errors")

type app struct {
	cfg    Config
	logger *zap.Logger
}

func newRootCommand(cfg Config) *cobra.Command {
	a := &app{cfg: cfg, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "formcheck",
		Short:         "Validate form data against field descriptors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(a.cfg)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.Fields, "fields", cfg.Fields, "field descriptor document (JSON or YAML); embedded registration form when empty")
	flags.StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&a.cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console, json)")

	root.AddCommand(
		a.validateCommand(),
		a.lintCommand(),
		a.promptCommand(),
		a.importOpenAPICommand(),
	)
	return root
}

func (a *app) loadFields() ([]model.Field, error) {
	if a.cfg.Fields == "" {
		return fieldset.Default()
	}
	return fieldset.LoadFile(a.cfg.Fields)
}

func (a *app) validator() (*validation.Validator, error) {
	fields, err := a.loadFields()
	if err != nil {
		return nil, err
	}
	return validation.New(fields, validation.WithLogger(a.logger))
}

func (a *app) validateCommand() *cobra.Command {
	var dataPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a data document and print the error map as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.validator()
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(dataPath)
			if err != nil {
				return fmt.Errorf("read data: %w", err)
			}
			values, err := fieldset.LoadValues(raw, dataPath)
			if err != nil {
				return err
			}

			errs := v.Form(values)
			out, err := json.MarshalIndent(errs, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			if len(errs) > 0 {
				a.logger.Info("validation failed", zap.Strings("fields", errs.Fields()))
				return errInvalidData
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "data document (JSON or YAML map)")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func (a *app) lintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Check that the field descriptors load and every pattern compiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.validator()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d fields\n", len(v.Fields()))
			return nil
		},
	}
}

func (a *app) promptCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the form interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := tui.ParseOutputFormat(output)
			if err != nil {
				return fmt.Errorf("%w: %q", err, output)
			}
			v, err := a.validator()
			if err != nil {
				return err
			}
			r, err := tui.New(v,
				tui.WithPromptDriver(tui.NewSurveyDriver(tui.WithStdio(os.Stdin, os.Stderr, os.Stderr))),
				tui.WithOutputFormat(format),
				tui.WithLogger(a.logger),
				tui.WithNotifier(formstate.NotifierFuncs{
					OnSubmitted: func(values model.Values) {
						a.logger.Info("form submitted", zap.Int("fields", len(values)))
					},
				}),
			)
			if err != nil {
				return err
			}
			out, err := r.Render(cmd.Context(), nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(tui.OutputFormatJSON), "output format (json, form, pretty)")
	return cmd
}

func (a *app) importOpenAPICommand() *cobra.Command {
	var specPath, operationID string
	cmd := &cobra.Command{
		Use:   "import-openapi",
		Short: "Derive field descriptors from an OpenAPI operation and print them as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(specPath)
			if err != nil {
				return fmt.Errorf("read spec: %w", err)
			}
			fields, err := fieldset.FromOpenAPI(cmd.Context(), raw, operationID)
			if err != nil {
				return err
			}
			a.logger.Debug("imported fields", zap.String("operation", operationID), zap.Int("count", len(fields)))

			out, err := yaml.Marshal(struct {
				Fields []model.Field `yaml:"fields"`
			}{Fields: fields})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&specPath, "spec", "", "OpenAPI 3 document")
	cmd.Flags().StringVar(&operationID, "operation", "", "operation ID")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("operation")
	return cmd
}
