package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Conceptual-Machines/wave-divider/internal/controller"
	"github.com/Conceptual-Machines/wave-divider/internal/export"
	"github.com/Conceptual-Machines/wave-divider/internal/presets"
	"github.com/Conceptual-Machines/wave-divider/internal/wave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, data EditorData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Editor(data).Render(context.Background(), &buf))
	return buf.String()
}

func defaultSnapshot() controller.Snapshot {
	return controller.Snapshot{
		State:      wave.State{Params: wave.DefaultParams(), Flags: wave.DefaultFlags()},
		ExportMode: export.ModeHTML,
	}
}

func TestEditorControls(t *testing.T) {
	html := render(t, EditorData{Snapshot: defaultSnapshot()})

	assert.True(t, strings.HasPrefix(html, `<!doctype html><html lang="en"><head>`))
	assert.Contains(t, html, `<option value="smooth" selected>smooth</option>`)
	assert.Contains(t, html, `<option value="bottom" selected>bottom</option>`)
	assert.Contains(t, html, `data-field="amplitude" min="1" max="100" step="1" value="20"`)
	assert.Contains(t, html, `data-field="frequency" min="0.5" max="8" step="0.5" value="1"`)
	assert.Contains(t, html, `data-field="color_top" value="#0d1117"`)
	assert.Contains(t, html, `data-flag="animate" aria-pressed="true"`)
	assert.Contains(t, html, `data-flag="flip" aria-pressed="false"`)
	assert.Contains(t, html, `data-mode="html" aria-pressed="true"`)
	assert.Contains(t, html, `<p class="placeholder">`)
	assert.True(t, strings.HasSuffix(html, "</html>"))
}

func TestEditorPresetsPreviewAndExport(t *testing.T) {
	catalog := []presets.Preset{{Label: `Random <1>`, Thumbnail: `<svg id="thumb"></svg>`}}
	html := render(t, EditorData{
		Snapshot: defaultSnapshot(),
		Presets:  catalog,
		Markup:   `<svg id="live"></svg>`,
		Code:     `<img src="https://x/wave?a=1&b=2" />`,
	})

	assert.Contains(t, html, `data-preset="0" title="Random &lt;1&gt;"><svg id="thumb"></svg>`)
	assert.Contains(t, html, `<svg id="live"></svg>`)
	assert.NotContains(t, html, `<p class="placeholder">`)
	assert.Contains(t, html, `&lt;img src=&#34;https://x/wave?a=1&amp;b=2&#34; /&gt;</textarea>`)
}
