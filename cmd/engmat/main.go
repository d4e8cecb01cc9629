package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat"
	"github.com/hsiuhsiu/engmat-go/pkg/engmat/logging"
	"github.com/hsiuhsiu/engmat-go/pkg/engmat/memnative"
)

type options struct {
	matPath     string
	list        bool
	get         string
	del         string
	eval        string
	interactive bool
	memory      bool
	verbose     bool
	version     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.matPath, "mat", "", "MAT-file to inspect")
	flag.BoolVar(&opts.list, "list", false, "List the variables in -mat")
	flag.StringVar(&opts.get, "get", "", "Print a double variable from -mat")
	flag.StringVar(&opts.del, "delete", "", "Delete a variable from -mat")
	flag.StringVar(&opts.eval, "eval", "", "Evaluate an expression in a MATLAB engine")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive engine console")
	flag.BoolVar(&opts.memory, "memory", false, "Use the in-memory native library instead of MATLAB; -mat "+demoFile+" is preloaded")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	flag.BoolVar(&opts.version, "version", false, "Print version and exit")
	flag.Parse()

	if opts.version {
		fmt.Printf("engmat %s (MATLAB %s)\n", engmat.WrapperVersion(), engmat.NativeVersion())
		return
	}

	if opts.matPath == "" && opts.eval == "" && !opts.interactive {
		fmt.Fprintln(os.Stderr, "Usage: engmat -mat <file.mat> [-list] [-get name] [-delete name]")
		fmt.Fprintln(os.Stderr, "       engmat -eval <expr>")
		fmt.Fprintln(os.Stderr, "       engmat -i  (interactive console)")
		fmt.Fprintln(os.Stderr, "Add -memory to run without MATLAB; its only MAT-file is "+demoFile+".")
		os.Exit(2)
	}

	zl, err := newLogger(opts.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zl.Sync() }()

	lib, err := openLibrary(opts, zl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer lib.Close()

	if err := run(context.Background(), os.Stdout, opts, lib); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

func openLibrary(opts options, zl *zap.Logger) (*engmat.Library, error) {
	cfg := engmat.Config{
		Logger:         logging.NewZap(zl),
		LogExpressions: opts.verbose,
	}
	if opts.memory {
		cfg.Native = memnative.New()
	}

	lib, err := engmat.Open(cfg)
	if errors.Is(err, engmat.ErrNotBuilt) {
		return nil, fmt.Errorf("%w: rebuild with -tags matlab or pass -memory", err)
	}
	if err != nil {
		return nil, err
	}
	if opts.memory {
		if err := writeDemo(lib); err != nil {
			_ = lib.Close()
			return nil, err
		}
	}
	return lib, nil
}

// demoFile exists only on the in-memory library's disk.
const demoFile = "demo.mat"

func writeDemo(lib *engmat.Library) error {
	f, err := lib.OpenFile(demoFile, engmat.ModeWrite)
	if err != nil {
		return fmt.Errorf("write %s: %w", demoFile, err)
	}
	defer f.Close()

	if err := f.PutDense("magic", [][]float64{{8, 1, 6}, {3, 5, 7}, {4, 9, 2}}); err != nil {
		return fmt.Errorf("write %s: %w", demoFile, err)
	}
	if err := f.PutDense("v", [][]float64{{1, 2, 3}}); err != nil {
		return fmt.Errorf("write %s: %w", demoFile, err)
	}
	return nil
}

func run(ctx context.Context, w io.Writer, opts options, lib *engmat.Library) error {
	switch {
	case opts.interactive:
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("interactive mode needs a terminal")
		}
		return runInteractive(ctx, lib)
	case opts.matPath != "":
		return runMat(w, lib, opts)
	default:
		return runEval(ctx, w, lib, opts.eval)
	}
}

func runMat(w io.Writer, lib *engmat.Library, opts options) error {
	mode := engmat.ModeRead
	if opts.del != "" {
		mode = engmat.ModeUpdate
	}

	f, err := lib.OpenFile(opts.matPath, mode)
	if err != nil {
		return err
	}
	defer f.Close()

	if opts.del != "" {
		if err := f.DeleteMatrix(opts.del); err != nil {
			return err
		}
		fmt.Fprintf(w, "deleted %s from %s\n", opts.del, opts.matPath)
	}

	if opts.get != "" {
		data, err := f.GetDense(opts.get)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s =\n\n%s\n", opts.get, formatRows(data))
	}

	if opts.list || (opts.get == "" && opts.del == "") {
		vars, err := f.Variables()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, variableTable(vars))
	}
	return f.Close()
}

func runEval(ctx context.Context, w io.Writer, lib *engmat.Library, expr string) error {
	e, err := lib.OpenEngine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := e.EvaluateString(ctx, expr)
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	return e.Close()
}
