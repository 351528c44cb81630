// Package ocr recognizes text in image uploads by shelling out to the
// tesseract binary (`tesseract <file> stdout -l <lang>`), plus a TSV pass for
// a mean word-confidence score.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/scoring"
)

type Extractor struct {
	binary   string
	language string
	runner   Runner
}

// Runner abstracts command execution so tests can stub tesseract out.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

func New(binary, language string) *Extractor {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	return &Extractor{binary: binary, language: language, runner: execRunner{}}
}

// NewWithRunner is used by tests.
func NewWithRunner(binary, language string, runner Runner) *Extractor {
	e := New(binary, language)
	e.runner = runner
	return e
}

func (e *Extractor) Extract(ctx context.Context, data []byte, filename string) (domain.ExtractedFile, error) {
	path, cleanup, err := writeTempImage(data, filename)
	if err != nil {
		return domain.ExtractedFile{}, domain.WrapError(domain.ErrExtraction, "stage image for ocr", err)
	}
	defer cleanup()

	stdout, stderr, err := e.runner.Run(ctx, e.binary, path, "stdout", "-l", e.language)
	if err != nil {
		return domain.ExtractedFile{}, domain.WrapError(domain.ErrExtraction, "run tesseract",
			fmt.Errorf("%w: %s", err, strings.TrimSpace(string(stderr))))
	}

	text := strings.TrimSpace(string(stdout))
	confidence, messages := e.meanConfidence(ctx, path)

	return domain.ExtractedFile{
		Text: text,
		Metadata: domain.FileMetadata{
			Filename:   filename,
			FileSize:   len(data),
			WordCount:  scoring.WordCount(text),
			Confidence: confidence,
			Messages:   messages,
		},
	}, nil
}

// meanConfidence runs the TSV pass; failures only cost the confidence field.
func (e *Extractor) meanConfidence(ctx context.Context, path string) (float64, []string) {
	stdout, _, err := e.runner.Run(ctx, e.binary, path, "stdout", "-l", e.language, "tsv")
	if err != nil {
		return 0, []string{"confidence unavailable: " + err.Error()}
	}

	lines := strings.Split(string(stdout), "\n")
	var sum, n float64
	for i, line := range lines {
		if i == 0 || line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr := cols[10]
		if confStr == "" || confStr == "-1" {
			continue
		}
		if v, err := strconv.ParseFloat(confStr, 64); err == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / n / 100.0, nil
}

func writeTempImage(data []byte, filename string) (string, func(), error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".img"
	}
	f, err := os.CreateTemp("", "plainbrief-ocr-*"+ext)
	if err != nil {
		return "", nil, err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	return f.Name(), func() { _ = os.Remove(f.Name()) }, nil
}
