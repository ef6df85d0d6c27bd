package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	md2latex "github.com/alnah/go-md2latex"
	"github.com/alnah/go-md2latex/internal/config"
	"github.com/alnah/go-md2latex/internal/fileutil"
	"github.com/alnah/go-md2latex/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input file specified")
	ErrNoTemplate   = errors.New("no template specified")
	ErrTooManyArgs  = errors.New("too many arguments")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrReadTemplate = errors.New("failed to read template file")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// filePermissions is the mode of written LaTeX files.
const filePermissions = 0o644

// job is a fully resolved conversion request.
type job struct {
	inputPath    string
	templatePath string
	outputPath   string // empty = stdout
	listFields   bool
}

// runConvert loads configuration, resolves paths and performs the conversion.
func runConvert(ctx context.Context, args []string, flags *cliFlags, env *Environment, logger *log.Logger) error {
	envCfg := loadEnvConfig(env.Getenv)

	cfg := config.DefaultConfig()
	if name := resolveConfigName(flags.common.config, envCfg); name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return withHint(ctx, nil, md2latex.Input{}, fmt.Errorf("loading config: %w", err))
		}
		cfg = loaded
		logger.Debug("loaded config", "name", name)
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	logger.SetLevel(levelFor(flags.common.verbose, flags.common.quiet, cfg.Log.Level))

	j, err := resolveJob(args, flags, cfg)
	if err != nil {
		return withHint(ctx, nil, md2latex.Input{}, err)
	}

	markdown, template, err := readInputs(j, env)
	if err != nil {
		return err
	}

	conv, err := md2latex.NewConverter(
		md2latex.WithDefaults(cfg.Defaults),
		md2latex.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if j.listFields {
		return listFields(ctx, conv, markdown, template, env.Stdout)
	}

	return convertFile(ctx, conv, j, markdown, template, env, logger)
}

// mergeFlags applies CLI flags over the config. Flags always win.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
}

// resolveJob maps positional arguments and config onto a job.
// The template argument is optional when the config names one.
func resolveJob(args []string, flags *cliFlags, cfg *config.Config) (*job, error) {
	j := &job{
		templatePath: cfg.Template.Path,
		outputPath:   cfg.Output.Path,
		listFields:   flags.listFields,
	}

	switch len(args) {
	case 0:
		// --list-fields only needs a template.
		if !flags.listFields {
			return nil, ErrNoInput
		}
	case 1:
		if flags.listFields && j.templatePath == "" {
			// A single argument with --list-fields is the template.
			j.templatePath = args[0]
		} else {
			j.inputPath = args[0]
		}
	case 2:
		j.inputPath = args[0]
		j.templatePath = args[1]
	default:
		return nil, fmt.Errorf("%w: expected at most 2, got %d", ErrTooManyArgs, len(args))
	}

	if j.templatePath == "" {
		return nil, ErrNoTemplate
	}
	if j.outputPath != "" && !j.listFields {
		if err := fileutil.ValidateOutputPath(j.outputPath); err != nil {
			return nil, err
		}
	}
	return j, nil
}

// readInputs reads the markdown (when given) and template files.
func readInputs(j *job, env *Environment) (markdown, template string, err error) {
	if j.inputPath != "" {
		data, err := env.ReadFile(j.inputPath)
		if err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
		}
		markdown = string(data)
	}

	data, err := env.ReadFile(j.templatePath)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrReadTemplate, err)
	}
	return markdown, string(data), nil
}

// listFields prints the template's fields one per line. With a document,
// fields that neither the frontmatter nor the defaults define are marked.
func listFields(ctx context.Context, conv *md2latex.Converter, markdown, template string, w io.Writer) error {
	fields := md2latex.TemplateFields(template)

	missing := map[string]bool{}
	if markdown != "" {
		names, err := conv.MissingFields(ctx, md2latex.Input{Markdown: markdown, Template: template})
		if err != nil {
			return err
		}
		for _, name := range names {
			missing[name] = true
		}
	}

	for _, field := range fields {
		if missing[field] {
			fmt.Fprintf(w, "%s\t(missing)\n", field)
			continue
		}
		fmt.Fprintln(w, field)
	}
	return nil
}

// convertFile runs the conversion and writes the result. Output files are
// replaced atomically, so a failed run never leaves a partial file.
func convertFile(ctx context.Context, conv *md2latex.Converter, j *job, markdown, template string, env *Environment, logger *log.Logger) error {
	p := newProgress(logger, env.Now)
	input := md2latex.Input{Markdown: markdown, Template: template}

	result, err := conv.Convert(ctx, input)
	if err != nil {
		return withHint(ctx, conv, input, err)
	}

	if j.outputPath == "" {
		_, err := fmt.Fprintln(env.Stdout, result.LaTeX)
		return err
	}

	if err := fileutil.WriteFileAtomic(j.outputPath, result.LaTeX, filePermissions); err != nil {
		return fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	p.done("Wrote "+j.outputPath, "input", j.inputPath)
	return nil
}

// hintedError carries an actionable hint next to the wrapped error.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// withHint attaches the hint matching err, if any. conv may be nil when
// the failure happened before a converter existed.
func withHint(ctx context.Context, conv *md2latex.Converter, input md2latex.Input, err error) error {
	var hint string
	switch {
	case errors.Is(err, md2latex.ErrMissingFrontmatter):
		hint = hints.ForMissingFrontmatter()
	case errors.Is(err, md2latex.ErrInvalidFrontmatter):
		hint = hints.ForInvalidFrontmatter()
	case errors.Is(err, md2latex.ErrUnknownDirective):
		hint = hints.ForUnknownDirective()
	case errors.Is(err, md2latex.ErrUnsupportedImage):
		hint = hints.ForUnsupportedImage()
	case errors.Is(err, md2latex.ErrUnknownNodeType):
		hint = hints.ForUnknownNodeType()
	case errors.Is(err, md2latex.ErrUnrenderableCode):
		hint = hints.ForUnrenderableCode()
	case errors.Is(err, md2latex.ErrUnresolvedField):
		var missing []string
		if conv != nil {
			missing, _ = conv.MissingFields(ctx, input)
		}
		hint = hints.ForUnresolvedField(missing)
	case errors.Is(err, ErrNoTemplate):
		hint = hints.ForTemplateRequired()
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(triedPaths(err))
	}
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// triedPaths extracts the searched locations from a config lookup error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
