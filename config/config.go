// Package config describes a loadable system as a YAML manifest and
// builds a ready engine.Engine from it with a With*/Build chainable
// Builder.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/draklowell/dragonfly8b9m-sim/component"
	"github.com/draklowell/dragonfly8b9m-sim/engine"
	"github.com/draklowell/dragonfly8b9m-sim/loader"
)

// ModuleManifest is one module's entry in a system Manifest: the path
// to its netlist file and the module prefix it will be loaded under.
type ModuleManifest struct {
	Netlist string `yaml:"netlist"`
	Prefix  string `yaml:"prefix"`
}

// Manifest describes a complete loadable system: every module's
// netlist, the directory holding the microcode ROM images, and the
// CPU ROM image to preload the motherboard with.
type Manifest struct {
	Modules      []ModuleManifest `yaml:"modules"`
	MicrocodeDir string           `yaml:"microcode_dir"`
	ROMImage     string           `yaml:"rom_image"`
}

// LoadManifestFromYAML reads and parses a system manifest from disk.
func LoadManifestFromYAML(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: parsing manifest %s: %w", path, err)
	}

	return &m, nil
}

// Builder assembles a ready engine.Engine from a Manifest, resolving
// relative file paths against a base directory.
type Builder struct {
	baseDir  string
	manifest *Manifest
}

// NewBuilder returns an empty Builder rooted at baseDir (normally the
// manifest file's own directory).
func NewBuilder(baseDir string) Builder {
	return Builder{baseDir: baseDir}
}

// WithManifest sets the system manifest to load.
func (b Builder) WithManifest(m *Manifest) Builder {
	b.manifest = m
	return b
}

// Build reads every module netlist and the eight microcode tables
// named by the manifest, then loads them into a fresh engine.Engine
// (spec.md §4.6, §4.7, §6.2).
func (b Builder) Build() (*engine.Engine, error) {
	if b.manifest == nil {
		return nil, fmt.Errorf("config: no manifest set")
	}

	modules := make([]loader.Module, 0, len(b.manifest.Modules))
	for _, mm := range b.manifest.Modules {
		data, err := os.ReadFile(b.path(mm.Netlist))
		if err != nil {
			return nil, fmt.Errorf("config: reading netlist %s: %w", mm.Netlist, err)
		}
		modules = append(modules, loader.Module{Name: mm.Prefix, Data: string(data)})
	}

	tables, err := loadTables(b.path(b.manifest.MicrocodeDir))
	if err != nil {
		return nil, err
	}

	var rom []byte
	if b.manifest.ROMImage != "" {
		rom, err = os.ReadFile(b.path(b.manifest.ROMImage))
		if err != nil {
			return nil, fmt.Errorf("config: reading rom image %s: %w", b.manifest.ROMImage, err)
		}
	}

	eng := engine.New()
	if err := eng.Load(modules, tables, rom); err != nil {
		return nil, err
	}

	return eng, nil
}

func (b Builder) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(b.baseDir, p)
}

// loadTables reads table0.bin..table7.bin from dir, in on-disk
// position order (spec.md §4.6 step 4, §6.2).
func loadTables(dir string) ([8][]byte, error) {
	var tables [8][]byte
	for i := 0; i < 8; i++ {
		name := filepath.Join(dir, fmt.Sprintf("table%d.bin", i))
		data, err := os.ReadFile(name)
		if err != nil {
			return tables, fmt.Errorf("config: reading microcode table %s: %w", name, err)
		}
		if len(data) != component.EEPROMSize {
			return tables, fmt.Errorf("config: table %s has incorrect size: %d bytes", name, len(data))
		}
		tables[i] = data
	}
	return tables, nil
}
