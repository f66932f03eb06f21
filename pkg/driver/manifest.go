package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the project file FindManifest looks for.
const ManifestName = "ir.yml"

// Manifest represents the parsed contents of ir.yml.
type Manifest struct {
	Path      string
	Dir       string
	Name      string
	Entry     string
	Optimize  bool
	Optimizer OptimizerMode
	Backend   Backend
	Trace     bool
	Store     string
	// Programs maps a program name to its source path, in file order.
	Programs     map[string]string
	ProgramOrder []string
}

// OptimizerMode selects how far the constant folder descends.
type OptimizerMode string

const (
	OptimizerDeep    OptimizerMode = "deep"
	OptimizerShallow OptimizerMode = "shallow"
)

func (m OptimizerMode) IsValid() bool {
	return m == OptimizerDeep || m == OptimizerShallow
}

// Backend selects the execution engine.
type Backend string

const (
	BackendTree     Backend = "tree"
	BackendBytecode Backend = "bytecode"
)

func (b Backend) IsValid() bool {
	return b == BackendTree || b == BackendBytecode
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

var ErrManifestNotFound = errors.New("manifest: no " + ManifestName + " found")

// FindManifest walks from start towards the filesystem root and returns the
// first ir.yml it sees.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

// LoadManifest parses ir.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*$`)

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	} else if !namePattern.MatchString(m.Name) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("name %q must be an identifier", m.Name))
	}
	if m.Entry == "" && len(m.ProgramOrder) == 0 {
		errs.Issues = append(errs.Issues, "entry or programs must be provided")
	}
	if !m.Optimizer.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("optimizer must be %q or %q, got %q", OptimizerDeep, OptimizerShallow, m.Optimizer))
	}
	if !m.Backend.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("backend must be %q or %q, got %q", BackendTree, BackendBytecode, m.Backend))
	}
	for _, name := range m.ProgramOrder {
		if !namePattern.MatchString(name) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("programs.%s: name must be an identifier", name))
		}
		if m.Programs[name] == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("programs.%s: path must be provided", name))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Resolve interprets path relative to the manifest's directory.
func (m *Manifest) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.Dir, path)
}

// EntryPath returns the program `ir run` executes by default: entry, or the
// first declared program.
func (m *Manifest) EntryPath() string {
	if m.Entry != "" {
		return m.Resolve(m.Entry)
	}
	if len(m.ProgramOrder) > 0 {
		return m.Resolve(m.Programs[m.ProgramOrder[0]])
	}
	return ""
}

// FindProgram resolves a named program declared under programs.
func (m *Manifest) FindProgram(name string) (string, bool) {
	path, ok := m.Programs[strings.TrimSpace(name)]
	if !ok {
		return "", false
	}
	return m.Resolve(path), true
}

// StorePath returns the resolved program catalog path, or "" when unset.
func (m *Manifest) StorePath() string {
	return m.Resolve(m.Store)
}

type manifestFile struct {
	Name      string     `yaml:"name"`
	Entry     string     `yaml:"entry"`
	Optimize  bool       `yaml:"optimize"`
	Optimizer string     `yaml:"optimizer"`
	Backend   string     `yaml:"backend"`
	Trace     bool       `yaml:"trace"`
	Store     string     `yaml:"store"`
	Programs  programMap `yaml:"programs"`
}

// programMap keeps the declaration order of the programs mapping.
type programMap struct {
	items []programMapEntry
}

type programMapEntry struct {
	name string
	path string
}

func (pm *programMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		pm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: programs must be a mapping")
	}
	items := make([]programMapEntry, 0, len(value.Content)/2)
	seen := make(map[string]struct{}, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		var key, path string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: programs must not use empty keys")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("manifest: program %q declared twice", key)
		}
		seen[key] = struct{}{}
		if err := value.Content[i+1].Decode(&path); err != nil {
			return fmt.Errorf("manifest: program %q: %w", key, err)
		}
		items = append(items, programMapEntry{name: key, path: strings.TrimSpace(path)})
	}
	pm.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:         path,
		Dir:          filepath.Dir(path),
		Name:         strings.TrimSpace(mf.Name),
		Entry:        strings.TrimSpace(mf.Entry),
		Optimize:     mf.Optimize,
		Optimizer:    OptimizerMode(strings.ToLower(strings.TrimSpace(mf.Optimizer))),
		Backend:      Backend(strings.ToLower(strings.TrimSpace(mf.Backend))),
		Trace:        mf.Trace,
		Store:        strings.TrimSpace(mf.Store),
		Programs:     make(map[string]string, len(mf.Programs.items)),
		ProgramOrder: make([]string, 0, len(mf.Programs.items)),
	}
	if result.Optimizer == "" {
		result.Optimizer = OptimizerDeep
	}
	if result.Backend == "" {
		result.Backend = BackendTree
	}
	for _, item := range mf.Programs.items {
		result.Programs[item.name] = item.path
		result.ProgramOrder = append(result.ProgramOrder, item.name)
	}
	return result
}
