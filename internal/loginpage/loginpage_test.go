package loginpage

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/refstore/pkg/server"
	"github.com/vango-dev/refstore/pkg/vango"
	"github.com/vango-dev/refstore/pkg/vdom"
)

func mount(t *testing.T) *server.Session {
	t.Helper()
	s := server.NewSession(App, nil, nil, nil)
	if err := s.Mount(); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

// findHID returns the hydration ID of the first element matching pred.
func findHID(t *testing.T, s *server.Session, pred func(*vdom.VNode) bool) string {
	t.Helper()
	var found string
	var walk func(n *vdom.VNode)
	walk = func(n *vdom.VNode) {
		if n == nil || found != "" {
			return
		}
		if n.Kind == vdom.KindElement && pred(n) {
			found = n.HID
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(s.Tree())
	if found == "" {
		t.Fatal("no matching hydrated element")
	}
	return found
}

func byID(id string) func(*vdom.VNode) bool {
	return func(n *vdom.VNode) bool { return n.Props["id"] == id }
}

func toggleButton(n *vdom.VNode) bool {
	return n.Tag == "button" && n.Props["onclick"] != nil
}

func dispatch(t *testing.T, s *server.Session, hid, typ, value string) *server.ServerMessage {
	t.Helper()
	reply, err := s.HandleEvent(context.Background(), &vango.Event{HID: hid, Type: typ, Value: value})
	if err != nil {
		t.Fatalf("HandleEvent(%s %s) error = %v", hid, typ, err)
	}
	return reply
}

func TestPageInitialRender(t *testing.T) {
	s := mount(t)
	html, err := s.HTML()
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	for _, want := range []string{
		`<h1 style="margin-bottom: 24px">hello world</h1>`,
		`id="login_form"`,
		`background-color: skyblue`,
		`<label for="input_email">Email</label>`,
		`id="input_email" type="email" value=""`,
		`id="input_password" type="password" value=""`,
		`<button type="submit">Submit</button>`,
		"Using store from child number 1. Theme: light",
		"Toggle from children 1",
		"Hi, I&#39;m children number2!",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q:\n%s", want, html)
		}
	}
}

func TestToggleTheme(t *testing.T) {
	s := mount(t)
	hid := findHID(t, s, toggleButton)

	reply := dispatch(t, s, hid, "click", "")
	if !strings.Contains(reply.HTML, "Theme: dark") {
		t.Fatalf("reply HTML missing Theme: dark:\n%s", reply.HTML)
	}

	reply = dispatch(t, s, findHID(t, s, toggleButton), "click", "")
	if !strings.Contains(reply.HTML, "Theme: light") {
		t.Errorf("second toggle should restore light:\n%s", reply.HTML)
	}
}

func TestTypeEmailAndPassword(t *testing.T) {
	s := mount(t)

	dispatch(t, s, findHID(t, s, byID("input_email")), "input", "a@b.co")
	reply := dispatch(t, s, findHID(t, s, byID("input_password")), "input", "x")

	for _, want := range []string{`value="a@b.co"`, `value="x"`, "Theme: light"} {
		if !strings.Contains(reply.HTML, want) {
			t.Errorf("reply HTML missing %q:\n%s", want, reply.HTML)
		}
	}
}

func TestSubmitOnlyPreventsDefault(t *testing.T) {
	s := mount(t)
	dispatch(t, s, findHID(t, s, byID("input_email")), "input", "not-an-email")

	reply := dispatch(t, s, findHID(t, s, byID("login_form")), "submit", "")
	if !reply.PreventDefault {
		t.Error("submit should prevent default")
	}
	if reply.HTML != "" || reply.Error != "" {
		t.Errorf("submit should neither render nor fail: %+v", reply)
	}
}

func TestThemeToggle(t *testing.T) {
	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("Toggle should flip between light and dark")
	}
}

func TestLoginValidationSchema(t *testing.T) {
	tests := []struct {
		name     string
		values   AppStore
		wantOK   bool
		emailErr string
		passErr  string
	}{
		{"valid", AppStore{Email: "user@example.com", Password: "secret"}, true, "", ""},
		{"dotted", AppStore{Email: "first.last@mail.example.org", Password: "x"}, true, "", ""},
		{"missing domain", AppStore{Email: "user@", Password: "x"}, false, "email is invalid", ""},
		{"no tld", AppStore{Email: "user@example", Password: "x"}, false, "email is invalid", ""},
		{"empty email", AppStore{Password: "x"}, false, "email is a required field", ""},
		{"empty password", AppStore{Email: "user@example.com"}, false, "", "password is a required field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := LoginValidationSchema.ValidateStruct(tt.values)
			if errs.OK() != tt.wantOK {
				t.Fatalf("OK() = %v, want %v (%v)", errs.OK(), tt.wantOK, errs.Map())
			}
			if got := errs.Get("email"); got != tt.emailErr {
				t.Errorf("email error = %q, want %q", got, tt.emailErr)
			}
			if got := errs.Get("password"); got != tt.passErr {
				t.Errorf("password error = %q, want %q", got, tt.passErr)
			}
		})
	}
}
