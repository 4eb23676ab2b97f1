// Package pipeline batch-renders theme sections: parse, apply the
// registered behaviors for a target viewport, serialize, write.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/dom"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/engine"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/ui"
)

type Renderer struct {
	Viewport   int
	Multiplier int
	ShopHost   string
	Behaviors  []engine.Behavior

	Log   *ui.Logger
	Stats *ui.Stats
}

func New(viewport int, behaviors []engine.Behavior, log *ui.Logger) *Renderer {
	return &Renderer{
		Viewport:  viewport,
		Behaviors: behaviors,
		Log:       log,
		Stats:     &ui.Stats{},
	}
}

// RenderMarkup applies the behaviors to one section and returns the
// serialized result. Fragments come back as fragments; full documents
// keep their doctype scaffolding.
func (r *Renderer) RenderMarkup(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}

	ctx := engine.NewContext(doc, r.Viewport)
	ctx.ShopHost = r.ShopHost
	ctx.Multiplier = r.Multiplier
	ctx.Log = r.Log
	ctx.Stats = r.Stats

	host := engine.NewHost(ctx)
	defer host.Close()

	for _, b := range r.Behaviors {
		host.RegisterBehavior(b)
	}
	host.Ready()

	var buf bytes.Buffer
	if dom.LooksLikeDocument(markup) {
		err = dom.Render(&buf, doc)
	} else {
		err = dom.RenderFragment(&buf, doc)
	}
	if err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}

	return buf.String(), nil
}

// RenderInput renders one input into outDir. The output is written to a
// .tmp file and renamed into place, so readers never see a half-written
// section. Returns the output path and its size.
func (r *Renderer) RenderInput(in Input, outDir string) (string, int64, error) {
	markup := in.Markup
	if in.Path != "" {
		raw, err := os.ReadFile(in.Path)
		if err != nil {
			return "", 0, err
		}
		markup = string(raw)
	}

	rendered, err := r.RenderMarkup(markup)
	if err != nil {
		return "", 0, err
	}

	outPath := filepath.Join(outDir, OutputName(in.Name))
	tmpPath := outPath + ".tmp"

	if err := os.WriteFile(tmpPath, []byte(rendered), 0644); err != nil {
		return "", 0, err
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, err
	}

	if r.Stats != nil {
		r.Stats.TotalDocuments.Add(1)
		r.Stats.TotalBytes.Add(int64(len(rendered)))
	}

	return outPath, int64(len(rendered)), nil
}

type renderState struct {
	mu        sync.Mutex
	done      int
	doneBytes int64
}

// RenderAll renders the inputs through a worker pool and reports the
// written files. Failed sections are logged and skipped; the error is
// non-nil only when nothing rendered.
func (r *Renderer) RenderAll(ctx context.Context, inputs []Input, outDir string, workers int, ph *ui.ProgressHandle) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create output folder: %w", err)
	}

	total := len(inputs)
	if workers < 1 {
		workers = 1
	}
	if workers > total && total > 0 {
		workers = total
	}

	rs := &renderState{}
	if ph != nil {
		ph.Update(0, total, 0)
	}

	var filesMu sync.Mutex
	files := make([]string, 0, total)
	failed := 0

	jobs := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			in := inputs[i]

			path, n, err := r.RenderInput(in, outDir)

			rs.mu.Lock()
			rs.done++
			rs.doneBytes += n
			if ph != nil {
				ph.Update(rs.done, total, rs.doneBytes)
			}
			rs.mu.Unlock()

			if err != nil {
				if r.Log != nil {
					r.Log.Errorf("section %s failed: %v", in.Name, err)
				}
				filesMu.Lock()
				failed++
				filesMu.Unlock()
				continue
			}

			filesMu.Lock()
			files = append(files, path)
			filesMu.Unlock()
		}
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go worker()
	}

	for i := range inputs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			if ph != nil {
				ph.MarkDone()
			}
			return files, ctx.Err()
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()
	if ph != nil {
		ph.MarkDone()
	}

	if len(files) == 0 && failed > 0 {
		return nil, fmt.Errorf("all %d sections failed", failed)
	}

	return files, nil
}
