// Command compile runs the pipeline driver against either a preset
// random 3-regular graph or a pre-transpiled qasm-like circuit file,
// writing the compact (and optionally full) instruction stream and the
// per-stage timing breakdown under the configured output directory (the
// config key "out-dir", default ./results/, set from the config file or
// NACOMPILE_OUT_DIR; there is no --out-dir flag).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kegliz/nacompile/compiler/frontend"
	"github.com/kegliz/nacompile/compiler/hardware"
	"github.com/kegliz/nacompile/compiler/model"
	"github.com/kegliz/nacompile/compiler/pipeline"
	"github.com/kegliz/nacompile/internal/config"
	"github.com/kegliz/nacompile/internal/graphset"
	"github.com/kegliz/nacompile/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flagSuffix          string
	flagArch            int
	flagRoutingStrategy string
	flagTrivialLayout   bool
	flagR2I             bool
	flagWindow          bool
	flagFullCode        bool
	flagLogLevel        string
	flagConfigPath      string
)

func main() {
	root := &cobra.Command{
		Use:   "compile",
		Short: "Compile a two-qubit gate program for a neutral-atom reconfigurable array",
	}
	root.PersistentFlags().StringVar(&flagSuffix, "suffix", "", "suffix appended to the output file name")
	root.PersistentFlags().IntVar(&flagArch, "arch", 16, "architecture dimension (Nx=Ny=Nc=Nr)")
	root.PersistentFlags().StringVar(&flagRoutingStrategy, "routing-strategy", "maximalis_sorted", "routing strategy: mis, maximalis, maximalis_sorted")
	root.PersistentFlags().BoolVar(&flagTrivialLayout, "trivial-layout", false, "use the trivial row-major initial layout instead of simulated annealing")
	root.PersistentFlags().BoolVar(&flagR2I, "r2i", false, "reverse to the initial mapping after each layer's Rydberg stage")
	root.PersistentFlags().BoolVar(&flagWindow, "window", false, "restrict the router's candidate motion count to 1000")
	root.PersistentFlags().BoolVar(&flagFullCode, "full-code", false, "emit full per-instruction lattice snapshots")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level")
	root.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a config file")

	root.AddCommand(runCmd(), runQASMCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run S I",
		Short: "Compile preset random 3-regular graph instance I of size S",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid size %q: %w", args[0], err)
			}
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			return runPreset(size, id)
		},
	}
}

func runQASMCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run-qasm PATH",
		Short: "Compile a pre-transpiled qasm-like circuit file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQASM(args[0])
		},
	}
}

func runPreset(size, id int) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	graphsPath := "./graphs.json"
	graphs, err := graphset.Load(graphsPath)
	if err != nil {
		return err
	}

	instance, ok := graphs.Get(size, id)
	if !ok {
		log.Warn().Int("size", size).Int("id", id).Msg("graph not in graphs.json, generating")
		graphset.GenerateTen(graphs, size)
		instance, _ = graphs.Get(size, id)
		if err := graphset.Save("./graphs_new.json", graphs); err != nil {
			return err
		}
	}

	name := fmt.Sprintf("rand3reg_%d_%d", size, id)
	if flagSuffix != "" {
		name += "_" + flagSuffix
	}

	prog := graphset.ToModelProgram(instance)
	return compileAndSave(cfg, log, name, prog, false)
}

func runQASM(path string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	prog, err := frontend.LoadQASMLike(f)
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]

	return compileAndSave(cfg, log, name, prog, true)
}

func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.New(flagConfigPath, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log := logger.NewLogger(logger.LoggerOptions{Debug: flagLogLevel == "debug"})
	return cfg, log, nil
}

func compileAndSave(cfg *config.Config, log *logger.Logger, name string, prog model.Program, dependency bool) error {
	p := pipeline.New(log.Logger)
	p.SetArchitecture(flagArch, flagArch, flagArch, flagArch)
	p.SetProgram(prog, prog.NumQubits())

	opts := pipeline.Options{
		TrivialLayout:    flagTrivialLayout,
		ReverseToInitial: flagR2I,
		RoutingStrategy:  flagRoutingStrategy,
		UseWindow:        flagWindow,
		FullCode:         flagFullCode,
		Dependency:       dependency,
		Seed:             cfg.GetInt64("seed"),
		Constants: hardware.Constants{
			RB:        cfg.GetFloat64("hardware.rb"),
			AODSep:    cfg.GetFloat64("hardware.aod-sep"),
			RydSep:    cfg.GetFloat64("hardware.ryd-sep"),
			SiteWidth: cfg.GetFloat64("hardware.site-width"),
			XSiteSep:  cfg.GetFloat64("hardware.ryd-sep") + cfg.GetFloat64("hardware.site-width"),
			YSiteSep:  cfg.GetFloat64("hardware.ryd-sep"),
			TRydberg:  cfg.GetFloat64("hardware.t-rydberg"),
			TActivate: cfg.GetFloat64("hardware.t-activate"),
		},
	}

	start := time.Now()
	result, err := p.Solve(opts)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", name, err)
	}
	log.Info().Str("name", name).Dur("elapsed", time.Since(start)).Msg("compiled")

	outDir := cfg.GetString("out-dir")
	if outDir == "" {
		outDir = "./results/"
	}
	codeDir := filepath.Join(outDir, "code")
	timeDir := filepath.Join(outDir, "time")
	if err := os.MkdirAll(codeDir, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(timeDir, 0o755); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(codeDir, name+"_code.json"), result.Compact); err != nil {
		return err
	}
	if flagFullCode {
		if err := writeJSON(filepath.Join(codeDir, name+"_code_full.json"), result.Full); err != nil {
			return err
		}
	}
	if err := writeJSON(filepath.Join(timeDir, name+"_time.json"), result.Timing); err != nil {
		return err
	}
	for _, d := range result.Diagnostics {
		log.Warn().Str("diagnostic", d).Msg("verifier")
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
