package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	report2pdf "github.com/alnah/go-report2pdf"
	"github.com/alnah/go-report2pdf/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have a .txt, .md or .html extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// inputExtensions lists the source files picked up from directories.
var inputExtensions = []string{".txt", ".text", ".md", ".markdown", ".html", ".htm"}

// stdinArg selects standard input as the source.
const stdinArg = "-"

// FileToRender represents a single file to process.
type FileToRender struct {
	InputPath string
	OutputDir string
	FileName  string // output name without extension
}

// discoverFiles finds all report sources under inputPath.
func discoverFiles(inputPath, outputDir string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateInputExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToRender{newFileToRender(inputPath, outputDir, "")}, nil
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.HasExtension(path, inputExtensions...) {
			return nil
		}
		files = append(files, newFileToRender(path, outputDir, inputPath))
		return nil
	})

	return files, err
}

// newFileToRender resolves where the PDF for inputPath is written. Without
// an output directory the PDF lands next to its source; with one, the
// layout below baseInputDir is mirrored.
func newFileToRender(inputPath, outputDir, baseInputDir string) FileToRender {
	f := FileToRender{
		InputPath: inputPath,
		FileName:  fileutil.TrimExtension(inputPath),
	}

	switch {
	case outputDir == "":
		f.OutputDir = filepath.Dir(inputPath)
	case baseInputDir != "":
		f.OutputDir = outputDir
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			f.OutputDir = filepath.Join(outputDir, filepath.Dir(rel))
		}
	default:
		f.OutputDir = outputDir
	}
	return f
}

// titleFromPath derives a report title from a file name:
// "exam_report-2024.txt" becomes "exam report 2024".
func titleFromPath(path string) string {
	name := fileutil.TrimExtension(path)
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

// validateInputExtension checks that the file is a supported source.
func validateInputExtension(path string) error {
	if !fileutil.HasExtension(path, inputExtensions...) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > report2pdf.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, report2pdf.MaxWorkers)
	}
	return nil
}
