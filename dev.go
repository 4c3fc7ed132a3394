package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/rainbow/machine"
	"github.com/nf/rainbow/rainbow"
)

// devMode watches labelFile and, whenever it changes, swaps a fresh
// cart built from cfg and the file's contents into r.
// The returned func stops watching.
func devMode(r *machine.Runner, cfg rainbow.Config, labelFile string) (stop func(), err error) {
	labelFile = filepath.Clean(labelFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(filepath.Dir(labelFile)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		var reload <-chan time.Time
		for {
			select {
			case <-reload:
				reload = nil
				c, err := loadCart(cfg, labelFile)
				if err != nil {
					log.Printf("dev: %v", err)
					break
				}
				log.Printf("dev: reset with label %q", c.Config().Label)
				r.Swap(c)
			case ev, ok := <-watcher.Event:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) == labelFile && !ev.IsAttrib() {
					reload = time.After(100 * time.Millisecond)
				}
			case err, ok := <-watcher.Error:
				if !ok {
					return
				}
				log.Printf("dev: watcher: %v", err)
			case <-r.Done():
				return
			}
		}
	}()
	return func() { watcher.Close() }, nil
}

func loadCart(cfg rainbow.Config, labelFile string) (*rainbow.Cart, error) {
	label, err := readLabel(labelFile)
	if err != nil {
		return nil, err
	}
	cfg.Label = label
	return rainbow.New(cfg)
}

// readLabel returns the first line of file.
func readLabel(file string) (string, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	label, _, _ := strings.Cut(string(b), "\n")
	label = strings.TrimSuffix(label, "\r")
	if label == "" {
		return "", fmt.Errorf("%s: no label on first line", file)
	}
	return label, nil
}
