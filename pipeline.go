// Package layered is the hierarchical (Sugiyama) graph layout engine:
// given a directed graph of sized nodes and edges with optional length
// and dimension constraints, Run computes an (x,y) for every node and
// a source-to-target polyline for every edge, with edges flowing in a
// consistent direction and crossings reduced.
//
// Run wires together the package-internal stages (core.Build through
// core.Emit) with the two external collaborators, order and position,
// into a ten-stage pipeline: Build, Acyclic, Rank, Normalize, Order,
// Position, Denormalize, Fixup, Unacyclic, Emit, each running to
// completion before the next begins.
package layered

import (
	"github.com/charmbracelet/log"

	"github.com/graphlayout/layered/config"
	"github.com/graphlayout/layered/core"
	"github.com/graphlayout/layered/logging"
	"github.com/graphlayout/layered/order"
	"github.com/graphlayout/layered/position"
)

// Run executes the full layout pipeline against in, returning the
// positioned output graph. logger may be nil; when set, each stage
// logs its elapsed time and current node/edge counts as an optional
// debug channel. onStage, if given, is called with each stage's name
// once it completes, so a caller can drive a progress display (see
// internal/progress) without coupling this package to it.
func Run(in *core.InputGraph, cfg config.Config, logger *log.Logger, onStage ...func(string)) (*core.OutputGraph, error) {
	report := func(string) {}
	if len(onStage) > 0 && onStage[0] != nil {
		report = onStage[0]
	}

	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, &core.Error{Kind: core.InvalidInput, Stage: "config", Msg: "invalid configuration", Err: err}
	}

	st := logging.Begin(logger, "build")
	g, err := core.Build(in)
	if err != nil {
		st.Fail(err)
		return nil, err
	}
	st.Done(len(g.Nodes()), len(g.Edges()))
	report("build")

	core.FitClusterDimensions(g)
	compoundSt := core.CollapseCompoundEdges(g)

	st = logging.Begin(logger, "acyclic")
	acSt := core.MakeAcyclic(g)
	st.Done(len(g.Nodes()), len(g.Edges()))
	report("acyclic")

	// Scoped acquire/release: doubling minLen and halving rankSep
	// together reserves a rank's worth of room for edge labels, and
	// both halves are restored on every exit path.
	release := core.ReserveLabelSpace(g)
	labelCfg := cfg
	labelCfg.RankSep /= 2
	defer release()

	st = logging.Begin(logger, "rank")
	if err := core.Rank(g, core.RankOptions{UseSimplex: cfg.UseSimplex()}); err != nil {
		st.Fail(err)
		return nil, err
	}
	st.Done(len(g.Nodes()), len(g.Edges()))
	report("rank")

	st = logging.Begin(logger, "normalize")
	normSt := core.Normalize(g)
	st.Done(len(g.Nodes()), len(g.Edges()))
	report("normalize")

	st = logging.Begin(logger, "order")
	order.Run(g, cfg.OrderMaxSweeps)
	st.Done(len(g.Nodes()), len(g.Edges()))
	report("order")

	st = logging.Begin(logger, "position")
	position.Run(g, labelCfg)
	st.Done(len(g.Nodes()), len(g.Edges()))
	report("position")

	st = logging.Begin(logger, "denormalize")
	core.Denormalize(g, normSt)
	st.Done(len(g.Nodes()), len(g.Edges()))
	report("denormalize")

	st = logging.Begin(logger, "fixup")
	core.Fixup(g, acSt)
	st.Done(len(g.Nodes()), len(g.Edges()))
	report("fixup")

	st = logging.Begin(logger, "unacyclic")
	core.Unacyclic(g, acSt)
	core.DedupUndirected(g)
	st.Done(len(g.Nodes()), len(g.Edges()))
	report("unacyclic")

	core.RestoreCompoundEdges(g, compoundSt)
	core.RecalculateClusterPositions(g)

	st = logging.Begin(logger, "emit")
	out := core.Emit(g, in.Directed, acSt)
	st.Done(len(out.Nodes), len(out.Edges))
	report("emit")

	return out, nil
}
