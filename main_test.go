package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/nf/rainbow/rainbow"
)

func TestReadLabel(t *testing.T) {
	dir := t.TempDir()
	for _, c := range []struct {
		content string
		want    string
		err     bool
	}{
		{"wasm-4", "wasm-4", false},
		{"hi\n", "hi", false},
		{"go go\r\nignored\n", "go go", false},
		{"\nsecond", "", true},
		{"", "", true},
	} {
		file := filepath.Join(dir, "label.txt")
		if err := os.WriteFile(file, []byte(c.content), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := readLabel(file)
		if (err != nil) != c.err {
			t.Errorf("readLabel(%q) returned error %v, want error: %v", c.content, err, c.err)
			continue
		}
		if got != c.want {
			t.Errorf("readLabel(%q) returned %q, want %q", c.content, got, c.want)
		}
	}
	if _, err := readLabel(filepath.Join(dir, "missing")); err == nil {
		t.Error("readLabel of missing file succeeded")
	}
}

func TestLoadCart(t *testing.T) {
	file := filepath.Join(t.TempDir(), "label.txt")
	if err := os.WriteFile(file, []byte("gopher\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := loadCart(rainbow.DefaultConfig(), file)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Config().Label; got != "gopher" {
		t.Errorf("label == %q, want %q", got, "gopher")
	}

	if err := os.WriteFile(file, []byte("much too long\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadCart(rainbow.DefaultConfig(), file); err == nil {
		t.Error("loadCart accepted a label wider than the screen")
	}
}

func TestOptionsCheck(t *testing.T) {
	for _, c := range []struct {
		name string
		o    options
		ok   bool
	}{
		{"gui", options{gui: true, scale: 3}, true},
		{"debug", options{gui: true, debug: true, scale: 3}, true},
		{"headless png", options{headless: 10, png: "out.png", scale: 1}, true},
		{"png alone", options{gui: true, png: "out.png", scale: 3}, false},
		{"negative frames", options{headless: -1, scale: 3}, false},
		{"headless dev", options{headless: 1, dev: "label.txt", scale: 3}, false},
		{"cli debug", options{debug: true, scale: 3}, false},
		{"zero scale", options{headless: 1, scale: 0}, false},
	} {
		if err := c.o.check(); (err == nil) != c.ok {
			t.Errorf("%s: check() returned %v, want ok: %v", c.name, err, c.ok)
		}
	}
}

func TestRunHeadlessWritesPNG(t *testing.T) {
	c, err := rainbow.New(rainbow.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(t.TempDir(), "out.png")
	if err := runHeadless(c, 30, file, 2); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(file)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 320 {
		t.Errorf("image is %dx%d, want 320x320", b.Dx(), b.Dy())
	}
}
