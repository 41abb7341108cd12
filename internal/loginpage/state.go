// Package loginpage is the example screen: a login form and two sibling
// widgets sharing one AppStore.
package loginpage

import (
	"github.com/vango-dev/refstore/pkg/features/form"
	"github.com/vango-dev/refstore/pkg/features/refstore"
)

// Theme is the colour scheme toggled by Children1.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// AppStore is the state shared by the screen.
type AppStore struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Theme    Theme  `json:"theme"`
}

// Store is the screen's store declaration. Every App render gets its own
// instance through Store.Provider.
var Store = refstore.CreateRefContext(AppStore{
	Email:    "",
	Password: "",
	Theme:    ThemeLight,
}, refstore.WithName("app"))

// EmailPattern is the accepted email shape.
const EmailPattern = `^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`

// LoginValidationSchema validates login credentials. The form's submit does
// not run it yet; the CLI validate command does.
var LoginValidationSchema = form.Object(
	form.String("email", form.Required(""), form.Pattern(EmailPattern, "")),
	form.String("password", form.Required("")),
)
