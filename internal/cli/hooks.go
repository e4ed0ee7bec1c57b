package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports viewer events on the CLI logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnParse(_ context.Context, size, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "bytes", size, "err", err)
		return
	}
	h.logger.Debug("parsed quiver", "bytes", size, "nodes", nodes, "edges", edges, "took", d)
}

func (h logHooks) OnLayout(_ context.Context, engine string, nodes int, d time.Duration, err error) {
	h.logger.Debug("layout", "engine", engine, "nodes", nodes, "took", d, "err", err)
}

func (h logHooks) OnRoute(_ context.Context, primitives, warnings int, d time.Duration) {
	if warnings > 0 {
		h.logger.Debug("routed with warnings", "primitives", primitives, "warnings", warnings)
	}
}

func (h logHooks) OnNodeAdded(_ context.Context, id string) {
	h.logger.Debug("node added", "id", id)
}

func (h logHooks) OnModelReplaced(_ context.Context, nodes, edges int) {
	h.logger.Debug("model replaced", "nodes", nodes, "edges", edges)
}
