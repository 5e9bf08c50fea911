package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"

	report2pdf "github.com/alnah/go-report2pdf"
	"github.com/alnah/go-report2pdf/internal/config"
	"github.com/alnah/go-report2pdf/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorSample exercises every block kind in the self-test render.
const doctorSample = `1. SELF TEST
Paragraph with **inline** markup.
| Check | Result |
| --- | --- |
| layout | ok |
- bullet item
`

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Config   configInfo `json:"config"`
	Render   renderInfo `json:"render"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

type configInfo struct {
	Source string `json:"source"` // "defaults" or the name given
	Valid  bool   `json:"valid"`
	Font   string `json:"font,omitempty"`
}

type renderInfo struct {
	OK       bool          `json:"ok"`
	Pages    int           `json:"pages,omitempty"`
	Bytes    int           `json:"bytes,omitempty"`
	Duration time.Duration `json:"duration_ns,omitempty"`
}

type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	GoMaxProcs int    `json:"gomaxprocs"`
	Container  bool   `json:"container"`
	CI         bool   `json:"ci"`
}

type systemInfo struct {
	OutputDir      string `json:"output_dir"`
	OutputWritable bool   `json:"output_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code:
// 0 when rendering works (warnings included), 1 otherwise.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var common commonFlags
	var jsonOutput bool
	addCommonFlags(fs, &common)
	fs.BoolVar(&jsonOutput, "json", false, "output as JSON")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := runDoctor(ctx, common.config, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, configName string, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GoMaxProcs: runtime.GOMAXPROCS(0),
		},
	}

	cfg := checkConfig(result, configName, env)
	checkRender(ctx, result, cfg, env)
	checkEnvironment(result, env)
	checkOutputDir(result, cfg)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkConfig loads and validates the configuration. Failures fall back to
// defaults so the remaining checks still run.
func checkConfig(result *doctorResult, name string, env *Environment) *config.Config {
	result.Config.Source = "defaults"
	if name == "" {
		name = env.getenv(envPrefix + "CONFIG")
	}
	if name != "" {
		result.Config.Source = name
	}

	cfg, _, err := loadConfig(name, env)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		cfg = config.DefaultConfig()
	} else {
		result.Config.Valid = true
	}
	result.Config.Font = cfg.Fonts.Family
	return cfg
}

// checkRender renders a small document with verification on.
func checkRender(ctx context.Context, result *doctorResult, cfg *config.Config, env *Environment) {
	verified := *cfg
	verified.Limits.Verify = true
	cfg = &verified

	s := buildSettings(cfg)
	in, err := s.input("Doctor", doctorSample, "", env.Now())
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Render: %v", err))
		return
	}

	start := time.Now()
	res, err := newRenderer(cfg, slog.New(slog.DiscardHandler), env.Now).Render(ctx, in)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Render: %v", err))
		return
	}
	result.Render = renderInfo{OK: true, Pages: res.Pages, Bytes: len(res.PDF), Duration: time.Since(start)}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container = hints.IsInContainer() || env.getenv("KUBERNETES_SERVICE_HOST") != ""

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if env.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Env.Container && runtime.GOMAXPROCS(0) > report2pdf.MaxWorkers {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("GOMAXPROCS is %d in a container; check the CPU quota", runtime.GOMAXPROCS(0)))
	}
}

// checkOutputDir verifies the default output directory accepts files.
func checkOutputDir(result *doctorResult, cfg *config.Config) {
	dir := cfg.Output.DefaultDir
	if dir == "" {
		dir = "."
	}
	result.System.OutputDir = dir

	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Output directory %s does not exist yet; it will be created", dir))
		return
	}
	if err != nil || !info.IsDir() {
		result.Errors = append(result.Errors, fmt.Sprintf("Output directory %s is not usable", dir))
		return
	}

	f, err := os.CreateTemp(dir, ".report2pdf-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Output directory not writable: %s", dir))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	result.System.OutputWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "report2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	if r.Config.Valid {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Source: %s (invalid)\n", r.Config.Source)
	}
	fmt.Fprintf(w, "  [OK] Font: %s\n", r.Config.Font)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Render")
	if r.Render.OK {
		fmt.Fprintf(w, "  [OK] Self-test: %d page(s), %d bytes, %v\n", r.Render.Pages, r.Render.Bytes, r.Render.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintln(w, "  [ERROR] Self-test failed")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] GOMAXPROCS: %d\n", r.Env.GoMaxProcs)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.OutputWritable {
		fmt.Fprintf(w, "  [OK] Output directory: %s\n", r.System.OutputDir)
	} else {
		fmt.Fprintf(w, "  [WARN] Output directory: %s\n", r.System.OutputDir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to render")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: report2pdf doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the configuration and render a self-test document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path")
	fmt.Fprintln(w, "      --json            Output as JSON")
}
