package sequence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	animerrors "github.com/go-drift/animatronic/pkg/errors"
	"github.com/go-drift/animatronic/pkg/style"
)

// Format is a sequence file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension. Unknown
// extensions are treated as YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// File is the on-disk form of a set of animations.
//
//	components:
//	  box: {left: 0px, background-color: "#ff0000"}
//	phases:
//	  - box: {from: {left: 0px}, to: {left: 100px}, duration: 300}
//	animations:
//	  bounce:
//	    - box: {from: {left: 0px}, to: {left: 40px}, stiffness: 200, damping: 10}
//
// Phases is played as DefaultName. Components lists the initial styles of
// the components a host should register before playing.
type File struct {
	Components map[string]style.Map        `yaml:"components" toml:"components" json:"components"`
	Phases     []map[string]any            `yaml:"phases" toml:"phases" json:"phases"`
	Animations map[string][]map[string]any `yaml:"animations" toml:"animations" json:"animations"`
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, animerrors.Wrap(decodeOp, animerrors.KindParse, err)
	}
	return &f, nil
}

// LoadFile reads and decodes a sequence file, choosing the format from its
// extension.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(data, FormatFromPath(path))
}

// Names returns every animation name declared in f, sorted.
func (f *File) Names() []string {
	names := slices.Collect(maps.Keys(f.Animations))
	if len(f.Phases) > 0 {
		names = append(names, DefaultName)
	}
	slices.Sort(names)
	return names
}

// Generator decodes every animation of f into a Named generator. The
// declarations are validated, but component names are not checked.
func (f *File) Generator() (Named, error) {
	if len(f.Phases) > 0 {
		if _, dup := f.Animations[DefaultName]; dup {
			return nil, animerrors.New(decodeOp, animerrors.KindParse,
				"phases and animations.%s are both declared", DefaultName)
		}
	}
	named := make(Named, len(f.Animations)+1)
	add := func(name string, raw []map[string]any) error {
		seq, err := DecodeSequence(raw)
		if err != nil {
			ae := animerrors.Wrap(decodeOp, animerrors.KindParse, err)
			ae.Animation = name
			return ae
		}
		named[name] = Static(seq)
		return nil
	}
	if len(f.Phases) > 0 {
		if err := add(DefaultName, f.Phases); err != nil {
			return nil, err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(f.Animations)) {
		if err := add(name, f.Animations[name]); err != nil {
			return nil, err
		}
	}
	if len(named) == 0 {
		return nil, animerrors.New(decodeOp, animerrors.KindEmptySequence, "file declares no animations")
	}
	return named, nil
}
