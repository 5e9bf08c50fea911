package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	flag "github.com/spf13/pflag"

	report2pdf "github.com/alnah/go-report2pdf"
)

// Sentinel errors for the render command.
var (
	ErrNoInput   = errors.New("no input specified")
	ErrReadInput = errors.New("failed to read input")
)

// maxInputBytes caps a single source file or stdin.
const maxInputBytes = 32 << 20

// Renderer is the interface for the rendering library.
type Renderer interface {
	Render(ctx context.Context, in report2pdf.Input) (*report2pdf.Result, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*report2pdf.Renderer)(nil)

// renderJob is one document to render: a discovered file or stdin.
type renderJob struct {
	file    FileToRender
	content []byte // preloaded source (stdin)
	title   string // fixed title; empty = derived from the file name
}

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Pages      int
	Err        error
	Duration   time.Duration
}

// renderParams groups parameters shared across batch/file renders.
type renderParams struct {
	settings *renderSettings
	now      func() time.Time
	stdout   io.Writer // non-nil writes the PDF here instead of a file
}

// runRender orchestrates the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, ec, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeDocumentFlags(&flags.document, cfg)
	mergeLayoutFlags(&flags.layout, cfg)
	mergeLimitFlags(&flags.limits, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose, slog.LevelWarn)
	setMaxProcs(logger)

	if len(positional) == 0 {
		return ErrNoInput
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}
	toStdout := outputDir == stdinArg
	if toStdout {
		outputDir = ""
	}

	jobs, err := collectJobs(positional, outputDir, cfg.Document.Title, env.Stdin)
	if err != nil {
		return err
	}
	if toStdout && len(jobs) != 1 {
		return fmt.Errorf("%w: --output - needs exactly one input, got %d", ErrUsage, len(jobs))
	}

	workers := flags.workers
	if workers == 0 {
		workers = ec.Workers
	}
	workers = report2pdf.ResolveWorkers(workers)
	logger.Debug("starting batch", "files", len(jobs), "workers", workers)

	params := &renderParams{
		settings: buildSettings(cfg),
		now:      env.Now,
	}
	if toStdout {
		params.stdout = env.Stdout
	}

	renderer := newRenderer(cfg, logger, env.Now)
	results := renderBatch(ctx, renderer, jobs, params, workers)

	quiet := flags.common.quiet || toStdout
	failed := printResults(results, quiet, flags.common.verbose, env)
	if failed > 0 {
		first := withPageCap(firstError(results), cfg.Limits.MaxPages)
		if len(results) == 1 {
			return first
		}
		return fmt.Errorf("%d of %d render(s) failed: %w", failed, len(results), first)
	}

	return nil
}

// collectJobs expands the positional arguments into render jobs. "-" reads
// the whole of stdin once; a title is then mandatory since there is no file
// name to derive it from.
func collectJobs(args []string, outputDir, title string, stdin io.Reader) ([]renderJob, error) {
	var jobs []renderJob
	readStdin := false

	for _, arg := range args {
		if arg == stdinArg {
			if readStdin {
				return nil, fmt.Errorf("%w: stdin given more than once", ErrUsage)
			}
			readStdin = true
			if title == "" {
				return nil, fmt.Errorf("%w: --title is required when reading stdin", ErrUsage)
			}
			content, err := readLimited(stdin)
			if err != nil {
				return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
			}
			dir := outputDir
			if dir == "" {
				dir = "."
			}
			jobs = append(jobs, renderJob{
				file:    FileToRender{InputPath: "<stdin>", OutputDir: dir},
				content: content,
				title:   title,
			})
			continue
		}

		files, err := discoverFiles(arg, outputDir)
		if err != nil {
			return nil, fmt.Errorf("discovering files: %w", err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%w: no report files found in %s", ErrNoInput, arg)
		}
		for _, f := range files {
			jobs = append(jobs, renderJob{file: f, title: title})
		}
	}

	return jobs, nil
}

// readLimited reads r up to maxInputBytes.
func readLimited(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxInputBytes {
		return nil, fmt.Errorf("input exceeds %d bytes", maxInputBytes)
	}
	return data, nil
}

// renderBatch processes jobs concurrently with a fixed number of workers.
// Results keep the order of jobs.
func renderBatch(ctx context.Context, r Renderer, jobs []renderJob, params *renderParams, workers int) []RenderResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(jobs))
	results := make([]RenderResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for range concurrency {
		wg.Go(func() {
			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						InputPath: jobs[idx].file.InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, r, jobs[idx], params)
			}
		})
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// renderFile processes a single job and returns the result.
func renderFile(ctx context.Context, r Renderer, job renderJob, params *renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: job.file.InputPath}
	done := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content := job.content
	if content == nil {
		f, err := os.Open(job.file.InputPath) // #nosec G304 -- discovered path
		if err != nil {
			return done(fmt.Errorf("%w: %w", ErrReadInput, err))
		}
		content, err = readLimited(f)
		_ = f.Close()
		if err != nil {
			return done(fmt.Errorf("%w: %s: %w", ErrReadInput, job.file.InputPath, err))
		}
	}

	title := job.title
	if title == "" {
		title = titleFromPath(job.file.InputPath)
	}

	in, err := params.settings.input(title, string(content), job.file.FileName, params.now())
	if err != nil {
		return done(err)
	}

	res, err := r.Render(ctx, in)
	if err != nil {
		return done(err)
	}
	result.Pages = res.Pages

	if params.stdout != nil {
		if _, err := params.stdout.Write(res.PDF); err != nil {
			return done(fmt.Errorf("%w: %w", report2pdf.ErrWritePDF, err))
		}
		result.OutputPath = stdinArg
		return done(nil)
	}

	path, err := report2pdf.WriteResult(job.file.OutputDir, res)
	if err != nil {
		return done(err)
	}
	result.OutputPath = path
	return done(nil)
}

// printResults outputs render results using the environment writers.
// Returns the number of failed renders.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", r.InputPath, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}

// firstError returns the first failure in results.
func firstError(results []RenderResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
