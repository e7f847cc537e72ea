package cards

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/anns25/stayhub-web/internal/web/httpserver/middleware"
	"github.com/anns25/stayhub-web/internal/web/i18n"
	"github.com/anns25/stayhub-web/internal/web/templates/layout"
)

func TestCardsRenderForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		card   func(CardData) templ.Component
		action string
		fields []string
	}{
		{name: NameLogin, card: LoginCard, action: "/api/auth/login", fields: []string{"email", "password", "remember"}},
		{name: NameRegister, card: RegisterCard, action: "/api/auth/register", fields: []string{"name", "email", "password", "password_confirm"}},
		{name: NameForgotPassword, card: ForgotPasswordCard, action: "/api/auth/forgot-password", fields: []string{"email"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			data := testCardData(t, "en")
			data.Action = tc.action
			doc := render(t, tc.card(data))

			section := doc.Find("section[data-card]")
			require.Equal(t, 1, section.Length())
			require.Equal(t, tc.name, section.AttrOr("data-card", ""))

			form := section.Find("form")
			require.Equal(t, 1, form.Length())
			require.Equal(t, "post", form.AttrOr("method", ""))
			require.Equal(t, tc.action, form.AttrOr("action", ""))
			require.Equal(t, "tok-123", form.Find(`input[type="hidden"][name="_csrf"]`).AttrOr("value", ""))
			for _, name := range tc.fields {
				require.Equal(t, 1, form.Find(`input[name="`+name+`"]`).Length(), "missing field %s", name)
			}
			require.Equal(t, 1, form.Find(`button[type="submit"]`).Length())

			headingID := section.AttrOr("aria-labelledby", "")
			require.Equal(t, 1, section.Find("h1#"+headingID).Length())
		})
	}
}

func TestLoginCardLinksAndLabels(t *testing.T) {
	t.Parallel()

	doc := render(t, LoginCard(testCardData(t, "en")))

	require.Equal(t, "Welcome back", strings.TrimSpace(doc.Find("h1").Text()))
	require.Equal(t, "Email address", strings.TrimSpace(doc.Find(`label[for="login-email"]`).Text()))
	require.Equal(t, "/forgot-password", doc.Find(`[data-card-link="forgot"]`).AttrOr("href", ""))
	require.Equal(t, "/register", doc.Find(`[data-card-link="register"]`).AttrOr("href", ""))
}

func TestRegisterCardFootnote(t *testing.T) {
	t.Parallel()

	doc := render(t, RegisterCard(testCardData(t, "en")))

	footnote := doc.Find("[data-card-footnote]")
	require.Equal(t, "/terms", footnote.Find("a").First().AttrOr("href", ""))
	require.Equal(t, "/privacy", footnote.Find("a").Last().AttrOr("href", ""))
	require.Equal(t, "/login", doc.Find(`[data-card-link="login"]`).AttrOr("href", ""))

	data := testCardData(t, "ja")
	data.Footnote = "Read the <script>alert(1)</script> [rules](https://example.com/rules)."
	doc = render(t, RegisterCard(data))
	footnote = doc.Find("[data-card-footnote]")
	require.Equal(t, 0, footnote.Find("script").Length())
	require.Equal(t, "_blank", footnote.Find("a").AttrOr("target", ""))
}

func TestForgotPasswordCardLinksBackToLogin(t *testing.T) {
	t.Parallel()

	doc := render(t, ForgotPasswordCard(testCardData(t, "ja")))

	require.Equal(t, "/login", doc.Find(`[data-card-link="login"]`).AttrOr("href", ""))
	require.Equal(t, 0, doc.Find(`input[type="password"]`).Length())
}

func TestCardSurfaceFollowsTheme(t *testing.T) {
	t.Parallel()

	data := testCardData(t, "en")
	data.Theme = layout.ThemeDark
	section := render(t, LoginCard(data)).Find("section[data-card]")
	require.True(t, section.HasClass("bg-slate-900"))
	require.False(t, section.HasClass("bg-white"))

	data.Theme = layout.ThemeLight
	section = render(t, LoginCard(data)).Find("section[data-card]")
	require.True(t, section.HasClass("bg-white"))
}

func TestCardsEscapeUntrustedValues(t *testing.T) {
	t.Parallel()

	data := testCardData(t, "en")
	data.Links.Register = "javascript:alert(1)"
	data.CSRF = middleware.CSRFState{Token: `"><script>alert(1)</script>`}

	var buf bytes.Buffer
	require.NoError(t, LoginCard(data).Render(context.Background(), &buf))
	require.NotContains(t, buf.String(), "<script>")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, string(templ.FailedSanitizationURL), doc.Find(`[data-card-link="register"]`).AttrOr("href", ""))
	hidden := doc.Find(`input[type="hidden"][name="_csrf"]`)
	require.Equal(t, 1, hidden.Length())
	require.Equal(t, data.CSRF.Token, hidden.AttrOr("value", ""))
}

func TestCardsPropagateRenderErrors(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := RegisterCard(testCardData(t, "en")).Render(ctx, &buf)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, buf.String())
}

func testCardData(t *testing.T, lang string) CardData {
	t.Helper()

	bundle, err := i18n.LoadEmbedded("ja", []string{"ja", "en"})
	require.NoError(t, err)
	return CardData{
		Localizer: bundle.For(lang),
		Action:    "/api/auth/login",
		CSRF:      middleware.CSRFState{Token: "tok-123", HeaderName: "X-CSRF-Token", FieldName: "_csrf"},
		Links:     Links{Login: "/login", Register: "/register", ForgotPassword: "/forgot-password"},
	}
}

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return doc
}
