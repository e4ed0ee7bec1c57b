// Package pkg provides the libraries behind quiverview, a viewer and editor
// for quivers: directed multigraphs with parallel arrows and self-loops.
//
// # Overview
//
// A quiver travels through the packages in one direction:
//
//	Quiver([nodes], [[src, dst, label], ...]) text
//	         ↓
//	    [codec] (parse, serialize)
//	         ↓
//	    [quiver] (nodes, edge instances, loop geometry)
//	         ↓
//	    [layout] (spring or Graphviz placement)
//	         ↓
//	    [route] (curved arcs, loop petals, arrowheads)
//	         ↓
//	    [render/term] braille canvas or [render/svg] document
//
// [pick] closes the loop for the interactive viewer: it turns pointer
// gestures and pasted text into model updates and asks for a redraw.
//
// # Quick Start
//
//	q, err := codec.Deserialize(`Quiver(["1", "2"], [["1", "2", "a"], ["1", "2", "b"]])`)
//	if err != nil {
//	    return err
//	}
//	if err := layout.Apply(ctx, layout.DefaultSpring(), q); err != nil {
//	    return err
//	}
//	scene := route.New(config.DefaultView()).Route(q)
//	out := svg.Render(scene, render.NewViewport(config.DefaultView(), 600, 600))
//
// # Main Packages
//
// [quiver] - The model. Parallel arrows are distinct instances with their own
// ID; self-loops carry a direction, magnitude and spread angle.
//
// [codec] - The Quiver( ... ) text form, embedded anywhere in surrounding
// text such as a REPL transcript.
//
// [layout] - Node placement. [layout.Spring] is seeded and deterministic;
// [layout.Graphviz] runs dot, neato, circo and the other Graphviz engines.
//
// [route] - Pure geometry: arc curvatures that keep parallel and opposite
// arrows apart, cubic loop petals and their arrowheads.
//
// [pick] - The gesture state machine (idle, mouse-down) that drags nodes and
// loops, adds nodes on double click and replaces the model on paste.
//
// [config] - Drawing and layout settings, read from TOML.
//
// [errors] - Coded errors (PARSE_ERROR, DEGENERATE_GEOMETRY, ...).
//
// [observability] - Hooks for parse, layout, route and edit events.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -short ./pkg/...             # Skip the Graphviz runtime
//	go test -run Example ./pkg/codec     # Examples only
package pkg
