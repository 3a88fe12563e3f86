package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscene/pkg/observability"
)

// installHooks routes cache and scene events to the debug log.
func installHooks(logger *log.Logger) {
	h := debugHooks{logger: logger}
	observability.SetCacheHooks(h)
	observability.SetSceneHooks(h)
}

// debugHooks logs cache and scene events at debug level.
type debugHooks struct {
	logger *log.Logger
}

func (h debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h debugHooks) OnEdit(op, kind, id string, d time.Duration) {
	h.logger.Debug("edit", "op", op, "kind", kind, "id", id, "duration", d)
}

func (h debugHooks) OnGeometry(kind, id string, vertices, faces int) {
	h.logger.Debug("geometry", "kind", kind, "id", id, "vertices", vertices, "faces", faces)
}

func (h debugHooks) OnRoute(id string, segments, joints int) {
	h.logger.Debug("route", "id", id, "segments", segments, "joints", joints)
}

// spinnerHooks shows the running pipeline stage on a spinner.
type spinnerHooks struct {
	observability.NoopPipelineHooks
	spinner *Spinner
}

func (h spinnerHooks) OnBuildStart(_ context.Context, entities int) {
	h.spinner.SetMessage("Building scene...")
}

func (h spinnerHooks) OnExportStart(_ context.Context, formats []string) {
	h.spinner.SetMessage("Exporting " + strings.Join(formats, ", ") + "...")
}
