package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
)

// walkMaxWorkers is the default concurrency for fastwalk.
const walkMaxWorkers = 4

// errWalkMaxItems stops the walk once the item cap is reached. It is filtered
// from the returned error so callers never see it as a failure.
var errWalkMaxItems = errors.New("max items reached")

// errWalkCanceled signals context cancellation inside the walk callback. It is
// converted back into ctx.Err() before returning.
var errWalkCanceled = errors.New("walk canceled")

// DefaultSkipDirs lists directory base names skipped by default. These cover
// common large trees that are rarely worth browsing.
var DefaultSkipDirs = []string{
	".git",
	".cache",
	"node_modules",
	"vendor",
	"__pycache__",
	"build",
	"dist",
}

// WalkOptions bound a directory walk.
type WalkOptions struct {
	MaxDepth int // 0 means unlimited
	MaxItems int // 0 means unlimited
	SkipDirs []string
}

// WalkMetrics describe how a walk ended.
type WalkMetrics struct {
	Elapsed    time.Duration
	Items      int
	Sections   int
	Terminated string // complete, max-items, canceled, deadline
}

// Walk scans root concurrently and groups every regular file by the directory
// that holds it. Sections are titled with the directory path relative to root
// ("." for root itself) and sorted by title; items are sorted by name.
//
// Context cancellation and the item cap stop the walk early. Because fastwalk
// runs callbacks concurrently a few extra files may be seen after the stop
// signal; the cap is enforced again when the result is assembled.
func Walk(ctx context.Context, root string, opts WalkOptions) (Catalog, WalkMetrics, error) {
	startedAt := time.Now()
	finalize := func(c Catalog, terminated string) WalkMetrics {
		return WalkMetrics{
			Elapsed:    time.Since(startedAt),
			Items:      c.Len(),
			Sections:   len(c.Sections),
			Terminated: terminated,
		}
	}

	root = strings.TrimSpace(root)
	if root == "" {
		return Catalog{}, finalize(Catalog{}, "complete"), ErrEmptyRoot
	}
	rootClean, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return Catalog{}, finalize(Catalog{}, "complete"), fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Stat(rootClean)
	if err != nil {
		return Catalog{}, finalize(Catalog{}, "complete"), fmt.Errorf("stat %s: %w", rootClean, err)
	}
	if !info.IsDir() {
		return Catalog{}, finalize(Catalog{}, "complete"), fmt.Errorf("%s: %w", rootClean, ErrNotDir)
	}

	skip := make(map[string]struct{}, len(opts.SkipDirs))
	for _, d := range opts.SkipDirs {
		skip[d] = struct{}{}
	}

	var (
		mu      sync.Mutex
		groups  = make(map[string][]string, 64)
		count   int
		stopped bool
	)

	conf := &fastwalk.Config{
		NumWorkers: walkMaxWorkers,
		Follow:     false,
		Sort:       fastwalk.SortNone,
		MaxDepth:   opts.MaxDepth,
	}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// fastwalk hands a callback's stop error back on the directory
			// it was reading; pass it on so the walk ends.
			if errors.Is(err, errWalkMaxItems) || errors.Is(err, errWalkCanceled) {
				return err
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return errWalkCanceled
		default:
		}

		if d.IsDir() {
			if _, ok := skip[d.Name()]; ok && path != rootClean {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(rootClean, filepath.Dir(path))
		if err != nil {
			return nil
		}

		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return errWalkMaxItems
		}
		groups[rel] = append(groups[rel], d.Name())
		count++
		if opts.MaxItems > 0 && count >= opts.MaxItems {
			stopped = true
			return errWalkMaxItems
		}
		return nil
	}

	err = fastwalk.Walk(conf, rootClean, fastwalk.IgnorePermissionErrors(walkFn))
	if err != nil && !errors.Is(err, errWalkMaxItems) && !errors.Is(err, errWalkCanceled) {
		return Catalog{}, finalize(Catalog{}, "complete"), fmt.Errorf("walk %s: %w", rootClean, err)
	}

	mu.Lock()
	full := stopped
	mu.Unlock()

	if errors.Is(err, errWalkCanceled) || (!full && ctx.Err() != nil) {
		c := assemble(rootClean, groups, opts.MaxItems)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return c, finalize(c, "deadline"), ctx.Err()
		}
		return c, finalize(c, "canceled"), context.Canceled
	}

	terminated := "complete"
	if full {
		terminated = "max-items"
	}
	c := assemble(rootClean, groups, opts.MaxItems)
	return c, finalize(c, terminated), nil
}

// assemble turns directory groups into sorted sections, keeping at most
// maxItems items overall when maxItems is positive.
func assemble(root string, groups map[string][]string, maxItems int) Catalog {
	dirs := make([]string, 0, len(groups))
	for dir := range groups {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)

	c := Catalog{Root: root, Sections: make([]Section, 0, len(dirs))}
	remaining := maxItems
	for _, dir := range dirs {
		names := groups[dir]
		slices.Sort(names)
		if maxItems > 0 {
			if remaining <= 0 {
				break
			}
			if len(names) > remaining {
				names = names[:remaining]
			}
			remaining -= len(names)
		}
		items := make([]Item, len(names))
		for i, name := range names {
			items[i] = Item{Name: name, Path: filepath.Join(dir, name)}
		}
		c.Sections = append(c.Sections, Section{Title: filepath.ToSlash(dir), Items: items})
	}
	return c
}
