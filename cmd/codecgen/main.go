// Command codecgen writes the codec registration file of a Go package.
//
// It loads the package with go/packages, describes every exported struct as a
// record and every configured interface as a union, validates names against
// the package, and emits an init function registering the descriptors:
//
//	codecgen -pkg ./examples/geometry -config codec.yaml
//
// Flags override the matching keys of the YAML config.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"structcodec/internal/analyze"
	"structcodec/internal/diagnostic"
	"structcodec/internal/gen"
	"structcodec/internal/mapping"
)

var errInvalid = errors.New("validation failed")

type options struct {
	pkg      string
	config   string
	out      string
	output   string
	registry string
	verbose  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("codecgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.pkg, "pkg", ".", "package pattern to describe")
	fs.StringVar(&opts.config, "config", "", "YAML config file")
	fs.StringVar(&opts.out, "out", "", "output directory (default: the package directory)")
	fs.StringVar(&opts.output, "o", "", "output file name (default: <package>_codec.go)")
	fs.StringVar(&opts.registry, "registry", "", "registry expression (default: codec.Default)")
	fs.BoolVar(&opts.verbose, "v", false, "log debug details")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := newLogger(stderr, opts.verbose)
	defer func() { _ = logger.Sync() }()

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if err := generate(logger, opts, set); err != nil {
		logger.Error("codecgen failed", zap.Error(err))
		return 1
	}

	return 0
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		level.SetLevel(zap.DebugLevel)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)

	return zap.New(core)
}

func loadConfig(opts options, set map[string]bool) (*mapping.File, error) {
	cfg := &mapping.File{Version: mapping.CurrentVersion}

	if opts.config != "" {
		loaded, err := mapping.LoadFile(opts.config)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if set["pkg"] || cfg.Package == "" {
		cfg.Package = opts.pkg
	}

	if set["o"] {
		cfg.Output = opts.output
	}

	return cfg, nil
}

func generate(logger *zap.Logger, opts options, set map[string]bool) error {
	cfg, err := loadConfig(opts, set)
	if err != nil {
		return err
	}

	analyzer := analyze.NewAnalyzer()
	analyzer.Exclude = cfg.Exclude

	pkgs, err := analyzer.LoadPackages(cfg.Package)
	if err != nil {
		return err
	}

	if len(pkgs) > 1 && (opts.out != "" || cfg.Output != "") {
		return fmt.Errorf("pattern %q matched %d packages; -out and output need a single package", cfg.Package, len(pkgs))
	}

	for _, pkg := range pkgs {
		logger.Debug("analyzed package",
			zap.String("package", pkg.Path),
			zap.Int("records", len(pkg.Records)),
			zap.Int("interfaces", len(pkg.Interfaces)),
		)

		model, diags := gen.Build(pkg, cfg)
		report(logger, pkg.Path, diags)

		if diags.HasErrors() {
			return fmt.Errorf("%s: %w: %w", pkg.Path, errInvalid, diags.Error())
		}

		dir := opts.out
		if dir == "" {
			dir = pkg.Dir
		}

		g := gen.NewGenerator(gen.GeneratorConfig{
			Filename:  cfg.Output,
			OutputDir: dir,
			Registry:  opts.registry,
		})

		file, err := g.Generate(model)
		if err != nil {
			return fmt.Errorf("%s: %w", pkg.Path, err)
		}

		if err := gen.WriteFiles([]gen.GeneratedFile{*file}, dir); err != nil {
			return err
		}

		logger.Info("wrote registrations",
			zap.String("package", pkg.Path),
			zap.String("dir", dir),
			zap.String("file", file.Filename),
			zap.Int("records", len(model.Records)),
			zap.Int("unions", len(model.Unions)),
		)
	}

	return nil
}

func report(logger *zap.Logger, pkgPath string, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fields := []zap.Field{
			zap.String("package", pkgPath),
			zap.String("code", d.Code),
		}

		if d.Type != "" {
			fields = append(fields, zap.String("type", d.Type))
		}

		if d.FieldPath != "" {
			fields = append(fields, zap.String("field", d.FieldPath))
		}

		if len(d.Suggestions) > 0 {
			fields = append(fields, zap.Strings("suggestions", d.Suggestions))
		}

		switch d.Severity {
		case diagnostic.DiagnosticError:
			logger.Error(d.Message, fields...)
		case diagnostic.DiagnosticWarning:
			logger.Warn(d.Message, fields...)
		default:
			logger.Debug(d.Message, fields...)
		}
	}
}
