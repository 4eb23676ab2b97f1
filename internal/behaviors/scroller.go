package behaviors

import (
	"github.com/freshwaterdesigns/freshwater-cdn/internal/engine"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/scroller"
)

// Scroller runs the infinite-scroll duplicator over every scroller in
// the document.
type Scroller struct{}

func (Scroller) Name() string { return "scroller" }

func (Scroller) Apply(ctx *engine.Context) int {
	d := scroller.NewDuplicator(ctx.Multiplier, ctx.Logger())
	scrollers, clones := d.ProcessAll(ctx.Doc, ctx.Viewport)

	if ctx.Stats != nil {
		ctx.Stats.TotalScrollers.Add(int64(scrollers))
		ctx.Stats.TotalClones.Add(int64(clones))
	}

	return clones
}
