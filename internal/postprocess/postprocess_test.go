package postprocess

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docrender/internal/diagnostics"
)

func newProcessor(sink diagnostics.Sink) *Processor {
	return New(
		map[string]string{"Acme": "com.example.acme"},
		map[string]string{"com.example.vendor": "https://docs.example.com/vendor"},
		sink,
	)
}

func TestProcess_DocumentedModuleByBundleID(t *testing.T) {
	p := newProcessor(nil)
	out := p.Process(`<p>See doc://com.example.acme/documentation/acme/widget for details.</p>`, 2)
	require.Equal(t, `<p>See <a href="../../documentation/acme/widget/index.html">widget</a> for details.</p>`, out)
}

func TestProcess_DocumentedModuleByNameCaseInsensitive(t *testing.T) {
	p := newProcessor(nil)
	out := p.Process(`doc://acme/documentation/acme`, 0)
	require.Equal(t, `<a href="documentation/acme/index.html">acme</a>`, out)
}

func TestProcess_ExternalBundleForcesTrailingSlashAndLowercase(t *testing.T) {
	p := newProcessor(nil)
	out := p.Process(`doc://com.example.vendor/Documentation/Vendor/Thing`, 1)
	require.Equal(t, `<a href="https://docs.example.com/vendor/documentation/vendor/thing">Thing</a>`, out)
}

func TestProcess_UnresolvedLeftIntactWithDiagnostic(t *testing.T) {
	sink := &diagnostics.Collector{}
	p := newProcessor(sink)
	in := `<p>doc://unknown.bundle/some/path</p>`
	require.Equal(t, in, p.Process(in, 0))
	require.Equal(t, 1, sink.Count(diagnostics.SeverityWarning))
}

func TestProcess_SkipsTokensInsideCodeRegions(t *testing.T) {
	p := newProcessor(nil)
	in := `<pre><code>let url = "doc://com.example.acme/documentation/acme"</code></pre>`
	require.Equal(t, in, p.Process(in, 0))

	// After the code region closes, tokens resolve again.
	in2 := `<code>doc://com.example.acme/documentation/acme</code> then doc://com.example.acme/documentation/acme`
	out := p.Process(in2, 0)
	require.Contains(t, out, `<code>doc://com.example.acme/documentation/acme</code>`)
	require.Contains(t, out, `<a href="documentation/acme/index.html">acme</a>`)
}

func TestProcess_TwoTokensNoOffsetCorruption(t *testing.T) {
	p := newProcessor(nil)
	in := `a doc://com.example.acme/documentation/acme/first b doc://com.example.acme/documentation/acme/second c`
	out := p.Process(in, 0)
	require.Equal(t,
		`a <a href="documentation/acme/first/index.html">first</a> b <a href="documentation/acme/second/index.html">second</a> c`,
		out)
}
