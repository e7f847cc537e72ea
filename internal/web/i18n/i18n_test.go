package i18n

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestResolveHonorsQValues(t *testing.T) {
	b, err := LoadEmbedded("ja", []string{"ja", "en"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := b.Resolve("ja;q=0.8, en;q=0.9")
	if got != "en" {
		t.Fatalf("expected en, got %s", got)
	}
}

func TestResolveRegionAndFallback(t *testing.T) {
	t.Parallel()

	b, err := LoadEmbedded("ja", nil)
	require.NoError(t, err)

	require.Equal(t, "en", b.Resolve("en-US,en;q=0.9"))
	require.Equal(t, "ja", b.Resolve(""))
	require.Equal(t, "ja", b.Resolve("not a header;;"))
	require.Equal(t, "ja", b.Resolve("de-DE"))
}

func TestTranslateFallsBackToDefaultThenKey(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"ja.yaml": {Data: []byte("greeting: \"こんにちは\"\nonly.ja: \"日本語のみ\"\n")},
		"en.yaml": {Data: []byte("greeting: \"Hello\"\n")},
	}
	b, err := Load(fsys, "ja", []string{"ja", "en"})
	require.NoError(t, err)

	require.Equal(t, "Hello", b.T("en", "greeting"))
	require.Equal(t, "日本語のみ", b.T("en", "only.ja"))
	require.Equal(t, "missing.key", b.T("en", "missing.key"))
	require.Equal(t, []string{"en", "ja"}, b.Supported())
}

func TestLoadRequiresFallbackBundle(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en.yaml": {Data: []byte("greeting: \"Hello\"\n")},
	}
	_, err := Load(fsys, "ja", []string{"ja", "en"})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrFallbackMissing))
}

func TestLoadSkipsMissingOptionalLocale(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"ja.yaml": {Data: []byte("greeting: \"こんにちは\"\n")},
	}
	b, err := Load(fsys, "ja", []string{"ja", "en", "fr"})
	require.NoError(t, err)
	require.False(t, b.IsSupported("fr"))
	require.Equal(t, "ja", b.Resolve("fr-FR,fr;q=0.9"))
}

func TestLocalizerUsesFallbackForUnknownLanguage(t *testing.T) {
	t.Parallel()

	b, err := LoadEmbedded("ja", nil)
	require.NoError(t, err)

	loc := b.For("xx")
	require.Equal(t, "ja", loc.Lang())
	require.Equal(t, "ログイン", loc.T("page.login.title"))
	require.Equal(t, "Log in", b.For("en").T("page.login.title"))
}

func TestBundlesShareKeys(t *testing.T) {
	t.Parallel()

	b, err := LoadEmbedded("ja", nil)
	require.NoError(t, err)
	for key := range b.dict["ja"] {
		_, ok := b.dict["en"][key]
		require.Truef(t, ok, "en bundle missing key %q", key)
	}
}

func TestLocalizerLangFollowsBundleFallback(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en.yaml": {Data: []byte("greeting: \"hello\"\n")},
	}
	b, err := Load(fsys, "en", []string{"en", "ja"})
	require.NoError(t, err)

	require.Equal(t, "en", b.For("de").Lang())
	require.Equal(t, "en", Localizer{bundle: b}.Lang())
	require.Equal(t, DefaultLanguage, Localizer{}.Lang())
}
