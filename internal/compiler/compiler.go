// Package compiler runs the Sk front end over files: read, tokenize, parse.
package compiler

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sk-lang/skc/internal/cli"
	"github.com/sk-lang/skc/internal/config"
	"github.com/sk-lang/skc/internal/diagnostics"
	"github.com/sk-lang/skc/internal/lexer"
	"github.com/sk-lang/skc/internal/parser"
	"github.com/sk-lang/skc/internal/position"
)

// Result captures the outcome of parsing one file
type Result struct {
	Path   string
	Source *position.SourceFile
	Tokens int
	Nodes  []parser.Node
	Notes  []parser.Note
	Err    error
	Took   time.Duration
}

// Failed reports whether the file produced an error
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Diagnostics returns the error and notes of the result as diagnostics
func (r *Result) Diagnostics() []diagnostics.Diagnostic {
	out := make([]diagnostics.Diagnostic, 0, len(r.Notes)+1)
	if r.Err != nil {
		out = append(out, diagnostics.FromError(r.Source, r.Err))
	}
	for _, note := range r.Notes {
		out = append(out, diagnostics.FromNote(r.Source, note))
	}
	return out
}

// Stats holds simple execution statistics for a multi-file run
type Stats struct {
	Files     int64
	Succeeded int64
	Failed    int64
	Nodes     int64
	Took      time.Duration
}

// Compiler parses files with one configuration
type Compiler struct {
	options     []parser.Option
	parallelism int
	logger      *cli.Logger
}

// New creates a compiler from cfg. A nil logger discards all output.
func New(cfg *config.Config, logger *cli.Logger) *Compiler {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = cli.NewLogger(io.Discard, cli.LevelError, false)
	}
	parallelism := cfg.Build.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	return &Compiler{
		options:     cfg.ParserOptions(),
		parallelism: parallelism,
		logger:      logger,
	}
}

// ReadSource reads a file into a SourceFile
func ReadSource(path string) (*position.SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return position.NewSourceFile(path, string(content)), nil
}

// Tokenize reads path and returns its token stream
func (c *Compiler) Tokenize(path string) ([]lexer.Token, *position.SourceFile, error) {
	source, err := ReadSource(path)
	if err != nil {
		return nil, nil, err
	}
	tokens, err := lexer.Tokenize(source.Content)
	if err != nil {
		return nil, source, err
	}
	c.logger.Debug("%s: %d tokens", path, len(tokens))
	return tokens, source, nil
}

// ParseSource tokenizes and parses an in-memory source file
func (c *Compiler) ParseSource(source *position.SourceFile) *Result {
	start := time.Now()
	result := &Result{Path: source.Filename, Source: source}
	defer func() {
		result.Took = time.Since(start)
	}()

	tokens, err := lexer.Tokenize(source.Content)
	if err != nil {
		result.Err = err
		return result
	}
	result.Tokens = len(tokens)

	p := parser.New(tokens, c.options...)
	result.Nodes, result.Err = p.Parse()
	result.Notes = p.Notes()
	return result
}

// ParseFile reads and parses one file. Read failures are reported in the
// result like parse failures.
func (c *Compiler) ParseFile(ctx context.Context, path string) *Result {
	if err := ctx.Err(); err != nil {
		return &Result{Path: path, Err: err}
	}

	source, err := ReadSource(path)
	if err != nil {
		return &Result{Path: path, Err: err}
	}

	result := c.ParseSource(source)
	if result.Failed() {
		c.logger.Debug("%s: failed after %s: %v", path, result.Took, result.Err)
	} else {
		c.logger.Debug("%s: %d tokens, %d nodes, %d notes in %s",
			path, result.Tokens, len(result.Nodes), len(result.Notes), result.Took)
	}
	return result
}

// ParseFiles parses paths concurrently, at most build.parallelism at a time.
// Results keep the order of paths. A failing file does not stop the others;
// the returned error is non-nil only when ctx ends the run early.
func (c *Compiler) ParseFiles(ctx context.Context, paths []string) ([]*Result, Stats, error) {
	start := time.Now()
	results := make([]*Result, len(paths))
	var stats Stats
	stats.Files = int64(len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = &Result{Path: path, Err: err}
				return err
			}
			result := c.ParseFile(gctx, path)
			results[i] = result
			if result.Failed() {
				atomic.AddInt64(&stats.Failed, 1)
			} else {
				atomic.AddInt64(&stats.Succeeded, 1)
				atomic.AddInt64(&stats.Nodes, int64(len(result.Nodes)))
			}
			return nil
		})
	}

	err := g.Wait()
	stats.Took = time.Since(start)
	c.logger.Debug("parsed %d files (%d failed) in %s", stats.Files, stats.Failed, stats.Took)

	if err != nil {
		return results, stats, fmt.Errorf("parse cancelled: %w", err)
	}
	return results, stats, nil
}
