// Command huffpack compresses and decompresses files with static Huffman
// coding.
//
//     huffpack compress [-o out] [-suffix .huff] [-j N] [-verify] [-force] pattern...
//     huffpack decompress [-o out] [-suffix .huff] [-j N] [-force] pattern...
//     huffpack inspect pattern...
//
// Patterns may use doublestar globs, e.g. 'logs/**/*.txt'.  Exit status is 0
// on success, 1 if any file failed, and 2 on a usage error.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/huffpack"
	"golang.org/x/sync/errgroup"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

var errUsage = errors.New("usage error")

type options struct {
	output  string
	suffix  string
	jobs    int
	verify  bool
	force   bool
	verbose bool
	quiet   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	cmd := args[0]
	var job func(*command, string) error
	switch cmd {
	case "compress":
		job = (*command).compress
	case "decompress":
		job = (*command).decompress
	case "inspect":
		job = (*command).inspect
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "huffpack: unknown command %q\n", cmd)
		usage(stderr)
		return exitUsage
	}

	var opts options
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.output, "o", "", "output path (single input only)")
	fs.StringVar(&opts.suffix, "suffix", ".huff", "suffix added to compressed files")
	fs.IntVar(&opts.jobs, "j", runtime.GOMAXPROCS(0), "number of files processed at once")
	fs.BoolVar(&opts.verify, "verify", false, "decompress after compressing and compare digests")
	fs.BoolVar(&opts.force, "force", false, "overwrite existing output files")
	fs.BoolVar(&opts.verbose, "v", false, "log debug details")
	fs.BoolVar(&opts.quiet, "q", false, "log errors only")
	if err := fs.Parse(args[1:]); err != nil {
		return exitUsage
	}

	level := slog.LevelInfo
	switch {
	case opts.quiet:
		level = slog.LevelError
	case opts.verbose:
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	paths, err := expandPatterns(fs.Args())
	if err != nil {
		logger.Error("cannot expand patterns", "err", err)
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		return exitFail
	}
	if opts.output != "" && len(paths) != 1 {
		logger.Error("-o requires exactly one input", "inputs", len(paths))
		return exitUsage
	}
	if opts.jobs < 1 {
		opts.jobs = 1
	}

	c := &command{opts: opts, log: logger, stdout: stdout}
	var g errgroup.Group
	g.SetLimit(opts.jobs)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := job(c, path); err != nil {
				logger.Error(cmd+" failed", "path", path, "err", err)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return exitFail
	}
	return exitOK
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: huffpack compress|decompress|inspect [flags] pattern...")
	fmt.Fprintln(w, "run 'huffpack <command> -h' for flags")
}

// expandPatterns resolves every operand with doublestar globbing.  A pattern
// that matches nothing is an error.
func expandPatterns(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no input files", errUsage)
	}
	var out []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("%w: bad pattern %q", errUsage, pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%q: %w", pattern, os.ErrNotExist)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				out = append(out, match)
			}
		}
	}
	return out, nil
}

type command struct {
	opts   options
	log    *slog.Logger
	stdout io.Writer
	mu     sync.Mutex
}

func (c *command) compress(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	artifact, err := huffpack.Compress(data)
	if err != nil {
		return err
	}

	if c.opts.verify {
		back, err := huffpack.Decompress(artifact)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		want, got := xxhash.Sum64(data), xxhash.Sum64(back)
		if want != got || len(data) != len(back) {
			return fmt.Errorf("verify: digest %016x, round trip gave %016x", want, got)
		}
		c.log.Debug("verified", "path", path, "xxhash", fmt.Sprintf("%016x", want))
	}

	out := c.opts.output
	if out == "" {
		out = path + c.opts.suffix
	}
	if err := c.writeFile(out, artifact); err != nil {
		return err
	}
	c.log.Info("compressed", "path", path, "out", out,
		"in_bytes", len(data), "out_bytes", len(artifact),
		"ratio", fmt.Sprintf("%.3f", float64(len(artifact))/float64(len(data))))
	return nil
}

func (c *command) decompress(path string) error {
	artifact, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	data, err := huffpack.Decompress(artifact)
	if err != nil {
		return err
	}

	out := c.opts.output
	if out == "" {
		if trimmed, ok := strings.CutSuffix(path, c.opts.suffix); ok && trimmed != "" {
			out = trimmed
		} else {
			out = path + ".out"
		}
	}
	if err := c.writeFile(out, data); err != nil {
		return err
	}
	c.log.Info("decompressed", "path", path, "out", out,
		"in_bytes", len(artifact), "out_bytes", len(data))
	return nil
}

func (c *command) inspect(path string) error {
	artifact, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	a, err := huffpack.ParseArtifact(artifact)
	if err != nil {
		return err
	}

	var d huffpack.Decoder
	d.Init(a.Tree)
	data, err := d.DecodeAll(nil, a.Body, a.Length)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s:\n", path)
	fmt.Fprintf(&buf, "\tleaves=%d header_bytes=%d body_bytes=%d original_bytes=%d xxhash=%016x\n",
		len(a.Tree.Leaves()), a.HeaderSize, len(a.Body), a.Length, xxhash.Sum64(data))
	var e huffpack.Encoder
	e.Init(a.Tree)
	if _, err := e.Dump(&buf); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err = buf.WriteTo(c.stdout)
	return err
}

func (c *command) writeFile(path string, data []byte) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if c.opts.force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
