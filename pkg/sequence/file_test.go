package sequence

import (
	"errors"
	"reflect"
	"testing"
	"time"

	animerrors "github.com/go-drift/animatronic/pkg/errors"
)

func TestLoadFile_YAML(t *testing.T) {
	f, err := LoadFile("testdata/intro.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Names(); !reflect.DeepEqual(got, []string{DefaultName, "pulse"}) {
		t.Errorf("Names = %v", got)
	}
	if f.Components["box"]["background-color"] != "#ff0000" {
		t.Errorf("components = %v", f.Components)
	}

	gen, err := f.Generator()
	if err != nil {
		t.Fatal(err)
	}
	seq, err := gen.Resolve("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != 2 {
		t.Fatalf("phases = %d, want 2", len(seq))
	}
	bar := seq[0]["bar"][0]
	if bar.Delay != 100*time.Millisecond || *bar.Duration != 200*time.Millisecond {
		t.Errorf("bar = %+v", bar)
	}
	if track := seq[1]["bar"]; len(track) != 2 || track[0].Mode() != ModeSpring || track[1].Mode() != ModeTime {
		t.Errorf("phase 1 bar track = %+v", track)
	}
	if _, err := gen.Resolve("pulse", nil); err != nil {
		t.Errorf("pulse: %v", err)
	}
	if _, err := gen.Resolve("missing", nil); !errors.Is(err, animerrors.ErrUnknownAnimation) {
		t.Errorf("missing: %v", err)
	}
}

func TestLoadFile_TOML(t *testing.T) {
	f, err := LoadFile("testdata/intro.toml")
	if err != nil {
		t.Fatal(err)
	}
	gen, err := f.Generator()
	if err != nil {
		t.Fatal(err)
	}
	seq, err := gen.Resolve("pulse", nil)
	if err != nil {
		t.Fatal(err)
	}
	box := seq[0]["box"]
	if len(box) != 2 || box[0].Mode() != ModeTime || box[1].Mode() != ModeSpring {
		t.Errorf("pulse box = %+v", box)
	}
	if *box[1].Stiffness != 170 || *box[1].Damping != 26 {
		t.Errorf("spring = %v/%v", *box[1].Stiffness, *box[1].Damping)
	}
}

func TestLoadFile_JSON(t *testing.T) {
	f, err := LoadFile("testdata/intro.json")
	if err != nil {
		t.Fatal(err)
	}
	gen, err := f.Generator()
	if err != nil {
		t.Fatal(err)
	}
	seq, err := gen.Resolve(DefaultName, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d := seq[0]["box"][0]; *d.Duration != 250*time.Millisecond || d.To["opacity"] != float64(1) {
		t.Errorf("box = %+v", d)
	}
}

func TestFile_GeneratorRejectsInvalidDeclarations(t *testing.T) {
	f, err := LoadFile("testdata/conflict.yaml")
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Generator()
	if !errors.Is(err, animerrors.ErrTimingConflict) {
		t.Fatalf("err = %v, want timing conflict", err)
	}
	var ae *animerrors.AnimationError
	if errors.As(err, &ae) && (ae.Animation != DefaultName || ae.Phase != 0 || ae.Component != "box") {
		t.Errorf("location = %q phase %d %q", ae.Animation, ae.Phase, ae.Component)
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode([]byte("phases: [1, 2"), FormatYAML); !errors.Is(err, animerrors.ErrParse) {
		t.Errorf("bad yaml: %v", err)
	}
	if _, err := Decode([]byte("unknown: 1\n"), FormatYAML); err == nil {
		t.Error("unknown top-level field accepted")
	}
	if _, err := Decode([]byte("{}"), Format("xml")); err == nil {
		t.Error("unknown format accepted")
	}
	f, err := Decode([]byte("{}"), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Generator(); !errors.Is(err, animerrors.ErrEmptySequence) {
		t.Errorf("empty file: %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.yaml": FormatYAML, "a.yml": FormatYAML, "a.TOML": FormatTOML, "a.json": FormatJSON, "a": FormatYAML,
	} {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
