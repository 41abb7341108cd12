package loginpage

import (
	"github.com/vango-dev/refstore/pkg/features/refstore"
	"github.com/vango-dev/refstore/pkg/vango"
	. "github.com/vango-dev/refstore/pkg/vdom"
)

// App is the root: one store Provider around the page.
func App() *VNode {
	return Store.Provider(Func(Page1))
}

// Page1 lays out the heading, the form and both children.
func Page1() *VNode {
	return Div(
		H1(StyleAttr("margin-bottom: 24px"), Text("hello world")),
		Func(LoginForm),
		Func(Children1),
		Func(Children2),
	)
}

// Children1 shows the theme and toggles it.
func Children1() *VNode {
	theme, setStore := refstore.Use(Store, func(s AppStore) Theme { return s.Theme })

	toggleTheme := func() {
		setStore(refstore.Partial{"theme": theme.Toggle()})
	}

	return Div(
		StyleAttr("background-color: wheat"),
		H2(Text("Hi, I'm children number 1!")),
		P(Textf("Using store from child number 1. Theme: %s", theme)),
		Button(OnClick(toggleTheme), Text("Toggle from children 1")),
	)
}

// Children2 is static and never subscribes.
func Children2() *VNode {
	return H3(Text("Hi, I'm children number2!"))
}

var (
	formStyle = Styles(map[string]string{
		"display":          "flex",
		"flex-direction":   "column",
		"width":            "300px",
		"row-gap":          "16px",
		"background-color": "skyblue",
	})
	fieldStyle = Styles(map[string]string{
		"display":        "flex",
		"flex-direction": "column",
	})
)

// LoginForm edits email and password through two independent accessors.
// Submitting only cancels the browser's navigation.
func LoginForm() *VNode {
	email, setStore := refstore.Use(Store, func(s AppStore) string { return s.Email })
	password, _ := refstore.Use(Store, func(s AppStore) string { return s.Password })

	onSubmitForm := func(e *vango.Event) {
		e.PreventDefault()
	}

	return Form(
		ID("login_form"),
		OnSubmit(onSubmitForm),
		formStyle,
		Div(
			fieldStyle,
			Label(For("input_email"), Text("Email")),
			Input(
				ID("input_email"),
				Type("email"),
				Value(email),
				OnInput(func(value string) { setStore(refstore.Partial{"email": value}) }),
			),
		),
		Div(
			fieldStyle,
			Label(For("input_password"), Text("Password")),
			Input(
				ID("input_password"),
				Type("password"),
				Value(password),
				OnInput(func(value string) { setStore(refstore.Partial{"password": value}) }),
			),
		),
		Button(Type("submit"), Text("Submit")),
	)
}
