// Package quiver provides the in-memory model of a quiver: a directed
// multigraph whose arrows may repeat between the same two nodes and may loop
// from a node back to itself.
//
// # Overview
//
// A [Quiver] owns three things:
//
//   - Nodes, identified by unique strings and carrying a 2D position
//   - Edge instances, each with its own UUID discriminator and optional label
//   - Self-loop metadata ([LoopMeta]) for every edge whose source equals its target
//
// Edges are additionally indexed by ordered pair, so [Quiver.Count] is an
// O(1) lookup. The edge router relies on this to compute arc curvature.
//
// # Basic Usage
//
//	q := quiver.New()
//	q.AddNode("u")
//	q.AddNode("v")
//	q.AddEdge("u", "v", "a")
//	q.AddEdge("u", "v", "b") // parallel instance, same pair
//	q.AddEdge("v", "v", "")  // self-loop, gets default LoopMeta
//
//	q.Count("u", "v") // 2
//
// # Identifiers for New Nodes
//
// [Quiver.NextNodeID] returns the identifier the viewer assigns to a node
// added by double-click: the decimal string of NodeCount()+1, advanced past
// any identifier that is already taken.
//
// # Concurrency
//
// A Quiver is not safe for concurrent use. The viewer mutates it from a single
// event loop.
package quiver
