package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"ir/interpreter-go/pkg/interpreter"
	"ir/interpreter-go/pkg/optimizer"
	"ir/interpreter-go/pkg/parser"
)

const (
	promptMain  = "ir> "
	promptCont  = "... "
	historyFile = ".ir_history"
)

// replSession holds the interpreter state shared by every line entered.
type replSession struct {
	interp   *interpreter.Interpreter
	out      io.Writer
	errOut   io.Writer
	optimize bool
	logger   logrus.FieldLogger
}

func newReplSession(out, errOut io.Writer, optimize bool, logger logrus.FieldLogger) *replSession {
	return &replSession{
		interp: interpreter.New(
			interpreter.WithOutput(out),
			interpreter.WithLogger(logger),
		),
		out:      out,
		errOut:   errOut,
		optimize: optimize,
		logger:   logger,
	}
}

// eval runs one complete input. It reports whether the session should end and
// the status to end it with.
func (s *replSession) eval(code string) (bool, int) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return false, 0
	}
	if strings.HasPrefix(trimmed, ":") {
		return s.command(trimmed)
	}
	program, err := parser.Parse([]byte(code))
	if err != nil {
		fmt.Fprintln(s.errOut, err)
		return false, 0
	}
	if s.optimize {
		program = optimizer.Optimize(program, optimizer.WithLogger(s.logger))
	}
	if err := s.interp.Run(program); err != nil {
		if exit, ok := interpreter.AsExit(err); ok {
			return true, int(exit.Code)
		}
		fmt.Fprintf(s.errOut, "runtime error: %v\n", err)
	}
	return false, 0
}

func (s *replSession) command(line string) (bool, int) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":q":
		return true, 0
	case ":help":
		fmt.Fprintln(s.out, ":env        list visible variables")
		fmt.Fprintln(s.out, ":fns        list defined functions")
		fmt.Fprintln(s.out, ":optimize   toggle constant folding (or :optimize on|off)")
		fmt.Fprintln(s.out, ":quit       leave the REPL")
	case ":env":
		vars := s.interp.Variables()
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(s.out, "%s = %s\n", name, vars[name])
		}
	case ":fns":
		for _, name := range s.interp.Functions() {
			fmt.Fprintln(s.out, name)
		}
	case ":optimize":
		switch {
		case len(fields) == 1:
			s.optimize = !s.optimize
		case fields[1] == "on":
			s.optimize = true
		case fields[1] == "off":
			s.optimize = false
		default:
			fmt.Fprintf(s.errOut, "usage: :optimize [on|off]\n")
			return false, 0
		}
		fmt.Fprintf(s.out, "optimize: %t\n", s.optimize)
	default:
		fmt.Fprintf(s.errOut, "unknown command %s. Type :help for a list.\n", fields[0])
	}
	return false, 0
}

func runRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	optimize := fs.Bool("optimize", false, "fold constants before each input runs")
	trace := fs.Bool("trace", false, "log every statement and call to stderr")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := newReplSession(os.Stdout, os.Stderr, *optimize, newLogger(os.Stderr, *trace))
	for {
		code, ok := readUntilComplete(ln)
		if !ok {
			fmt.Fprintln(os.Stdout)
			return 0
		}
		if strings.TrimSpace(code) != "" {
			ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		}
		if done, status := session.eval(code); done {
			return status
		}
	}
}

// readUntilComplete keeps prompting while the accumulated input only fails to
// parse because it ended early.
func readUntilComplete(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parser.Parse([]byte(src)); perr != nil && parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
