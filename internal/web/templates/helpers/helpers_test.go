package helpers

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderMarkdownSanitises(t *testing.T) {
	out, err := RenderMarkdown("By signing up you agree to the [Terms](/terms). <script>alert(1)</script>")
	require.NoError(t, err)
	require.Contains(t, out, `<a href="/terms">Terms</a>`)
	require.False(t, strings.Contains(out, "<script"), "script tags must be stripped: %s", out)

	empty, err := RenderMarkdown("   ")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestMarkdownComponentLinksExternalTargets(t *testing.T) {
	var buf bytes.Buffer
	err := Markdown("Read the [policy](https://stayhub.example.com/privacy)").Render(context.Background(), &buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), `target="_blank"`)
	require.NotContains(t, buf.String(), "nofollow")
}
