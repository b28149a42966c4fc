package lesson

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/fuelquest/internal/domain"
)

// LoadFile overlays the YAML lesson file at path onto the catalog. Unknown
// slide or habit keys are rejected so typos do not go unnoticed.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading lesson file: %w", err)
	}

	var next Content
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("parsing lesson file %s: %w", path, err)
	}
	if err := validate(next); err != nil {
		return fmt.Errorf("lesson file %s: %w", path, err)
	}

	c.overlay(next)
	c.log.Info("lesson: loaded %s", path)
	return nil
}

func validate(next Content) error {
	for k := range next.Scripts {
		if !domain.IsSlide(k) {
			return fmt.Errorf("unknown slide %q in scripts", k)
		}
	}
	for k := range next.Hints {
		if !domain.IsSlide(k) {
			return fmt.Errorf("unknown slide %q in hints", k)
		}
	}
	for k, q := range next.Quizzes {
		if !domain.IsHabit(k) {
			return fmt.Errorf("unknown habit %q in quizzes", k)
		}
		if len(q.Keywords) == 0 {
			return fmt.Errorf("quiz %q has no keywords", k)
		}
	}
	for _, f := range next.SugarFoods {
		switch f.Category {
		case domain.CategorySugar, domain.CategoryCarb, domain.CategoryGood:
		default:
			return fmt.Errorf("sugar food %q has unknown category %q", f.Name, f.Category)
		}
	}
	return nil
}

// Watch reloads the lesson file whenever it changes, until ctx is
// cancelled. It watches the parent directory, so editors that save by
// writing a temp file and renaming it over the original keep reloading.
// Reload errors are logged and the previous content is kept.
func (c *Catalog) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	c.log.Debug("lesson: watching %s in %s", name, dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := c.LoadFile(path); err != nil {
				c.log.Warn("lesson: reload failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Warn("lesson: watcher error: %v", err)
		}
	}
}
