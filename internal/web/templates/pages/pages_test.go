package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/anns25/stayhub-web/internal/web/httpserver/middleware"
	"github.com/anns25/stayhub-web/internal/web/i18n"
	"github.com/anns25/stayhub-web/internal/web/templates/cards"
	"github.com/anns25/stayhub-web/internal/web/templates/layout"
)

var allCards = []string{cards.NameLogin, cards.NameRegister, cards.NameForgotPassword}

func TestPagesMountExactlyOneCard(t *testing.T) {
	t.Parallel()

	cases := []struct {
		card string
		page func(Data) templ.Component
	}{
		{card: cards.NameLogin, page: LoginPage},
		{card: cards.NameRegister, page: RegisterPage},
		{card: cards.NameForgotPassword, page: ForgotPasswordPage},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.card, func(t *testing.T) {
			t.Parallel()

			doc := render(t, tc.page(testData(t)))

			container := doc.Find("[data-auth-container]")
			require.Equal(t, 1, container.Length())
			require.Equal(t, 1, container.Children().Length(), "container should mount a single child")
			require.Equal(t, tc.card, container.Children().First().AttrOr("data-card", ""))

			require.Equal(t, 1, doc.Find("[data-card]").Length())
			for _, other := range allCards {
				if other == tc.card {
					continue
				}
				require.Equal(t, 0, doc.Find(`[data-card="`+other+`"]`).Length(), "%s should not render", other)
			}
			require.Contains(t, container.AttrOr("class", ""), "min-h-screen")
			require.Equal(t, 1, doc.Find("html").Length())
		})
	}
}

func TestPageFragmentSkipsDocument(t *testing.T) {
	t.Parallel()

	data := testData(t)
	data.Fragment = true

	var buf bytes.Buffer
	require.NoError(t, RegisterPage(data).Render(context.Background(), &buf))
	require.NotContains(t, buf.String(), "<html")
	require.NotContains(t, buf.String(), "<title")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	container := doc.Find("[data-auth-container]")
	require.Contains(t, container.AttrOr("class", ""), "min-h-full")
	require.NotContains(t, container.AttrOr("class", ""), "min-h-screen")
	require.Equal(t, cards.NameRegister, container.Children().First().AttrOr("data-card", ""))
}

func TestPageTitleFallsBackToData(t *testing.T) {
	t.Parallel()

	data := testData(t)
	data.Title = "Log in"
	doc := render(t, LoginPage(data))
	require.Equal(t, "Log in | StayHub", doc.Find("title").Text())
}

func testData(t *testing.T) Data {
	t.Helper()

	bundle, err := i18n.LoadEmbedded("ja", []string{"ja", "en"})
	require.NoError(t, err)
	csrf := middleware.CSRFState{Token: "tok", HeaderName: "X-CSRF-Token", FieldName: "_csrf"}
	return Data{
		Document:  layout.DocumentData{AppName: "StayHub", Lang: "en", CSRF: csrf},
		Container: layout.ContainerProps{Theme: layout.ThemeLight, Backdrop: true},
		Card: cards.CardData{
			Localizer: bundle.For("en"),
			Action:    "/api/auth/login",
			CSRF:      csrf,
			Links:     cards.Links{Login: "/login", Register: "/register", ForgotPassword: "/forgot-password"},
		},
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
