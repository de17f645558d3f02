// Package main provides the rentbuy command line report.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/stwalsh4118/rentbuy/internal/logger"
	"github.com/stwalsh4118/rentbuy/internal/models"
	"github.com/stwalsh4118/rentbuy/internal/presets"
	"github.com/stwalsh4118/rentbuy/internal/report"
	"github.com/stwalsh4118/rentbuy/internal/repository"
	"github.com/stwalsh4118/rentbuy/internal/services"
)

const defaultLogLevel = "warn"

// app holds the services shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer

	presetsFile string
	logLevel    string

	presets   services.PresetService
	scenarios services.ScenarioService
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:               "rentbuy",
		Short:             "Compare buying a home with renting and investing the difference",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&a.presetsFile, "presets-file", "", "TOML file replacing the built-in regional presets")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", defaultLogLevel, "log level written to stderr")

	rootCmd.AddCommand(a.newSimulateCmd())
	rootCmd.AddCommand(a.newPresetsCmd())

	return rootCmd
}

// setup loads presets and wires the services.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	log := logger.NewWithWriter(a.stderr, "development", a.logLevel)

	var (
		list []models.RegionalPreset
		err  error
	)
	if a.presetsFile != "" {
		list, err = presets.LoadFile(a.presetsFile)
	} else {
		list, err = presets.LoadEmbedded()
	}
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	log.Debug("Presets loaded", map[string]interface{}{
		"count": len(list),
		"file":  a.presetsFile,
	})

	a.presets = services.NewPresetService(repository.NewMemoryPresetRepository(list), log)
	a.scenarios = services.NewScenarioService(a.presets, log)
	return nil
}

func (a *app) newSimulateCmd() *cobra.Command {
	var (
		presetID string
		file     string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project a scenario and print the comparison",
		Long: "Inputs are resolved in order: built-in defaults, the regional preset,\n" +
			"the scenario file, then any field flags given on the command line.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req services.ScenarioRequest
			if file != "" {
				fileReq, err := loadScenarioFile(file)
				if err != nil {
					return err
				}
				req = fileReq
			}
			if cmd.Flags().Changed("preset") {
				req.PresetID = presetID
			}

			flagOverrides, err := overridesFromFlags(cmd)
			if err != nil {
				return err
			}
			req.ScenarioOverrides = req.ScenarioOverrides.Merge(flagOverrides)

			result, err := a.scenarios.Simulate(cmd.Context(), req)
			if err != nil {
				return describeSimulateError(err, req.PresetID)
			}

			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			heading := "Default scenario"
			if result.Preset != nil {
				heading = result.Preset.Name
			}
			return report.NewRenderer(a.stdout).Scenario(heading, result.Inputs, result.Outputs)
		},
	}

	cmd.Flags().StringVar(&presetID, "preset", "", "regional preset id (see: rentbuy presets)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "TOML scenario file with preset_id and field overrides")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print resolved inputs and outputs as JSON")
	registerOverrideFlags(cmd)

	return cmd
}

func (a *app) newPresetsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List regional presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.presets.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			return report.NewRenderer(a.stdout).Presets(list)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print presets as JSON")
	return cmd
}

// loadScenarioFile decodes a TOML scenario and rejects keys it does not know.
func loadScenarioFile(path string) (services.ScenarioRequest, error) {
	var req services.ScenarioRequest
	md, err := toml.DecodeFile(path, &req)
	if err != nil {
		return req, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return req, fmt.Errorf("scenario file %s has unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return req, nil
}

func describeSimulateError(err error, presetID string) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msg := fe.Field() + " fails " + fe.Tag()
			if fe.Param() != "" {
				msg += "=" + fe.Param()
			}
			msgs = append(msgs, msg)
		}
		return fmt.Errorf("invalid scenario: %s", strings.Join(msgs, "; "))
	case errors.Is(err, services.ErrPresetNotFound):
		return fmt.Errorf("unknown preset %q (see: rentbuy presets)", presetID)
	default:
		return err
	}
}
