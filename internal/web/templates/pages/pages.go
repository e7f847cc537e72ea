// Package pages composes the auth route pages: one card mounted in the auth container,
// wrapped in the document shell unless only a fragment was requested.
package pages

import (
	"github.com/a-h/templ"

	"github.com/anns25/stayhub-web/internal/web/templates/cards"
	"github.com/anns25/stayhub-web/internal/web/templates/layout"
)

// Data is shared by every auth page.
type Data struct {
	Title     string
	Document  layout.DocumentData
	Container layout.ContainerProps
	Card      cards.CardData
	// Fragment skips the document shell and renders the container in compact mode.
	Fragment bool
}

// LoginPage mounts LoginCard.
func LoginPage(data Data) templ.Component {
	return page(data, cards.LoginCard(data.Card))
}

// RegisterPage mounts RegisterCard.
func RegisterPage(data Data) templ.Component {
	return page(data, cards.RegisterCard(data.Card))
}

// ForgotPasswordPage mounts ForgotPasswordCard.
func ForgotPasswordPage(data Data) templ.Component {
	return page(data, cards.ForgotPasswordCard(data.Card))
}

func page(data Data, card templ.Component) templ.Component {
	props := data.Container
	if data.Fragment {
		props.Compact = true
		return layout.Container(props, card)
	}
	doc := data.Document
	if doc.Title == "" {
		doc.Title = data.Title
	}
	return layout.Document(doc, layout.Container(props, card))
}
