package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"ir/interpreter-go/pkg/ast"
	"ir/interpreter-go/pkg/bytecode"
	"ir/interpreter-go/pkg/driver"
	"ir/interpreter-go/pkg/interpreter"
	"ir/interpreter-go/pkg/lexer"
	"ir/interpreter-go/pkg/optimizer"
	"ir/interpreter-go/pkg/printer"
)

const cliToolVersion = "ir 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(os.Stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "repl":
		return runRepl(args[1:])
	case "fmt":
		return runFmt(args[1:])
	case "optimize":
		return runOptimize(args[1:])
	case "compile":
		return runCompile(args[1:])
	case "tokens":
		return runTokens(args[1:])
	case "build":
		return runBuild(args[1:])
	case "store":
		return runStore(args[1:])
	default:
		if looksLikePathCandidate(args[0]) {
			return runEntry(args)
		}
		fmt.Fprintf(os.Stderr, "ir: unknown command %q\n", args[0])
		printUsage(os.Stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  ir run [--optimize] [--optimizer deep|shallow] [--backend tree|bytecode] [--trace] [file|program]
  ir repl [--optimize] [--trace]
  ir fmt [-w] <file>
  ir optimize [--optimizer deep|shallow] <file>
  ir compile [--optimize] <file>
  ir tokens <file>
  ir build [--optimize] [-o out.irb] <file>
  ir store [--db path] save <name> <file> | load <name> | list | rm <name>
  ir version
`)
}

// runSettings collects execution options from ir.yml and the command line.
// Flags the user passed win over the manifest.
type runSettings struct {
	optimize  bool
	optimizer driver.OptimizerMode
	backend   driver.Backend
	trace     bool
}

func defaultSettings(manifest *driver.Manifest) runSettings {
	settings := runSettings{optimizer: driver.OptimizerDeep, backend: driver.BackendTree}
	if manifest != nil {
		settings.optimize = manifest.Optimize
		settings.optimizer = manifest.Optimizer
		settings.backend = manifest.Backend
		settings.trace = manifest.Trace
	}
	return settings
}

func (s runSettings) optimizerOptions(logger logrus.FieldLogger) []optimizer.Option {
	opts := []optimizer.Option{optimizer.WithLogger(logger)}
	if s.optimizer == driver.OptimizerShallow {
		opts = append(opts, optimizer.Shallow())
	}
	return opts
}

func runEntry(args []string) int {
	manifest, err := loadManifestFrom(".")
	if err != nil && !errors.Is(err, driver.ErrManifestNotFound) {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}
	settings := defaultSettings(manifest)

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	optimize := fs.Bool("optimize", settings.optimize, "fold constants before running")
	mode := fs.String("optimizer", string(settings.optimizer), "optimizer depth: deep or shallow")
	backend := fs.String("backend", string(settings.backend), "execution backend: tree or bytecode")
	trace := fs.Bool("trace", settings.trace, "log every statement and call to stderr")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return 1
	}
	settings.optimize = *optimize
	settings.optimizer = driver.OptimizerMode(*mode)
	settings.backend = driver.Backend(*backend)
	settings.trace = *trace
	if !settings.optimizer.IsValid() {
		fmt.Fprintf(os.Stderr, "unknown optimizer %q\n", *mode)
		return 1
	}
	if !settings.backend.IsValid() {
		fmt.Fprintf(os.Stderr, "unknown backend %q\n", *backend)
		return 1
	}

	var entry string
	switch len(positional) {
	case 0:
		if manifest == nil {
			fmt.Fprintf(os.Stderr, "ir run requires a source file (%s not found)\n", driver.ManifestName)
			return 1
		}
		entry = manifest.EntryPath()
	case 1:
		entry = positional[0]
		if manifest != nil {
			if path, ok := manifest.FindProgram(entry); ok {
				entry = path
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(positional[1:], " "))
		return 1
	}
	return executeEntry(entry, settings)
}

func executeEntry(entry string, settings runSettings) int {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		fmt.Fprintln(os.Stderr, "ir run requires a source file")
		return 1
	}
	logger := newLogger(os.Stderr, settings.trace)

	program, err := driver.LoadProgram(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}
	if settings.optimize {
		program = optimizer.Optimize(program, settings.optimizerOptions(logger)...)
	}

	switch settings.backend {
	case driver.BackendBytecode:
		code, err := bytecode.NewCompiler().Compile(program)
		if err != nil {
			fmt.Fprintf(os.Stderr, "compile error: %v\n", err)
			return 1
		}
		return exitStatus(bytecode.NewVM(os.Stdout, logger).Run(code))
	default:
		interp := interpreter.New(
			interpreter.WithOutput(os.Stdout),
			interpreter.WithLogger(logger),
		)
		return exitStatus(interp.Run(program))
	}
}

// exitStatus maps a run result to a process status: the program's exit code,
// 1 for a failure, 0 otherwise.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	if exit, ok := interpreter.AsExit(err); ok {
		return int(exit.Code)
	}
	fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
	return 1
}

func newLogger(w io.Writer, trace bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if trace {
		logger.SetLevel(logrus.TraceLevel)
	}
	return logger
}

func runFmt(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	write := fs.Bool("w", false, "write the result back to the source file")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return 1
	}
	path, ok := singleFile("fmt", positional)
	if !ok {
		return 1
	}
	program, err := driver.LoadProgram(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}
	formatted := printer.String(program)
	if !*write {
		fmt.Fprint(os.Stdout, formatted)
		return 0
	}
	if filepath.Ext(path) == ".irb" {
		fmt.Fprintf(os.Stderr, "refusing to overwrite binary program %s\n", path)
		return 1
	}
	if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
		return 1
	}
	return 0
}

func runOptimize(args []string) int {
	fs := flag.NewFlagSet("optimize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	mode := fs.String("optimizer", string(driver.OptimizerDeep), "optimizer depth: deep or shallow")
	trace := fs.Bool("trace", false, "log every fold to stderr")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return 1
	}
	path, ok := singleFile("optimize", positional)
	if !ok {
		return 1
	}
	settings := runSettings{optimize: true, optimizer: driver.OptimizerMode(*mode)}
	if !settings.optimizer.IsValid() {
		fmt.Fprintf(os.Stderr, "unknown optimizer %q\n", *mode)
		return 1
	}
	program, err := driver.LoadProgram(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}
	logger := newLogger(os.Stderr, *trace)
	fmt.Fprint(os.Stdout, printer.String(optimizer.Optimize(program, settings.optimizerOptions(logger)...)))
	return 0
}

func runCompile(args []string) int {
	program, ok := loadForBackend("compile", args)
	if !ok {
		return 1
	}
	code, err := bytecode.NewCompiler().Compile(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile error: %v\n", err)
		return 1
	}
	fmt.Fprint(os.Stdout, bytecode.Disassemble(code))
	return 0
}

func runBuild(args []string) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	optimize := fs.Bool("optimize", false, "fold constants before writing")
	out := fs.String("o", "", "output path (default: source name with .irb)")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return 1
	}
	path, ok := singleFile("build", positional)
	if !ok {
		return 1
	}
	program, err := driver.LoadProgram(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}
	if *optimize {
		program = optimizer.Optimize(program)
	}
	target := *out
	if target == "" {
		target = strings.TrimSuffix(path, filepath.Ext(path)) + ".irb"
	}
	if err := driver.WriteProgram(target, program); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build: %v\n", err)
		return 1
	}
	return 0
}

func runTokens(args []string) int {
	path, ok := singleFile("tokens", args)
	if !ok {
		return 1
	}
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
		return 1
	}
	tokens, err := lexer.Tokenize(string(source))
	for _, tok := range tokens {
		fmt.Fprintln(os.Stdout, tok)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

func loadForBackend(name string, args []string) ([]ast.Statement, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	optimize := fs.Bool("optimize", false, "fold constants first")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return nil, false
	}
	path, ok := singleFile(name, positional)
	if !ok {
		return nil, false
	}
	program, err := driver.LoadProgram(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return nil, false
	}
	if *optimize {
		program = optimizer.Optimize(program)
	}
	return program, true
}

// parseInterspersed lets flags follow positional arguments, so both
// `ir build -o x.irb main.ir` and `ir build main.ir -o x.irb` work.
// Everything after a literal "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var rest []string
	for idx, arg := range args {
		if arg == "--" {
			args, rest = args[:idx], args[idx+1:]
			break
		}
	}
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return append(positional, rest...), nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func singleFile(cmd string, args []string) (string, bool) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "ir %s requires exactly one file\n", cmd)
		return "", false
	}
	return args[0], true
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	manifestPath, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(manifestPath)
}

func looksLikePathCandidate(arg string) bool {
	if arg == "" {
		return false
	}
	if strings.Contains(arg, "/") || strings.Contains(arg, "\\") {
		return true
	}
	switch filepath.Ext(arg) {
	case ".ir", ".irb":
		return true
	}
	return strings.HasPrefix(arg, ".")
}
