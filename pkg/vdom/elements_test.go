package vdom

import "testing"

func TestCreateElement(t *testing.T) {
	t.Run("basic element", func(t *testing.T) {
		node := Div()
		if node.Kind != KindElement {
			t.Errorf("Kind = %v, want KindElement", node.Kind)
		}
		if node.Tag != "div" {
			t.Errorf("Tag = %v, want div", node.Tag)
		}
	})

	t.Run("with attributes", func(t *testing.T) {
		node := Input(ID("input_email"), Type("email"), Value("a@b.co"))
		if node.Props["id"] != "input_email" {
			t.Errorf("id = %v, want input_email", node.Props["id"])
		}
		if node.Props["type"] != "email" {
			t.Errorf("type = %v, want email", node.Props["type"])
		}
		if node.Props["value"] != "a@b.co" {
			t.Errorf("value = %v, want a@b.co", node.Props["value"])
		}
	})

	t.Run("string children become text", func(t *testing.T) {
		node := Label(For("input_email"), "Email")
		if len(node.Children) != 1 {
			t.Fatalf("Children len = %v, want 1", len(node.Children))
		}
		if node.Children[0].Kind != KindText || node.Children[0].Text != "Email" {
			t.Errorf("child = %+v, want text Email", node.Children[0])
		}
	})

	t.Run("nil arguments are skipped", func(t *testing.T) {
		node := Div(nil, If(false, P()), Span())
		if len(node.Children) != 1 {
			t.Errorf("Children len = %v, want 1", len(node.Children))
		}
	})

	t.Run("empty attribute is skipped", func(t *testing.T) {
		node := Button(AttrIf(false, Disabled()))
		if len(node.Props) != 0 {
			t.Errorf("Props = %v, want empty", node.Props)
		}
	})

	t.Run("key attribute sets Key", func(t *testing.T) {
		node := Div(Key("row-1"))
		if node.Key != "row-1" {
			t.Errorf("Key = %v, want row-1", node.Key)
		}
	})

	t.Run("component child is mounted", func(t *testing.T) {
		comp := Func(func() *VNode { return Text("inner") })
		node := Div(comp)
		if len(node.Children) != 1 || node.Children[0].Kind != KindComponent {
			t.Fatalf("Children = %+v, want one component node", node.Children)
		}
		if got := node.Children[0].Comp.Render().Text; got != "inner" {
			t.Errorf("Render() text = %v, want inner", got)
		}
	})
}

func TestIsVoidElement(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"input", true},
		{"meta", true},
		{"br", true},
		{"div", false},
		{"form", false},
	}

	for _, tt := range tests {
		if got := IsVoidElement(tt.tag); got != tt.want {
			t.Errorf("IsVoidElement(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestStyles(t *testing.T) {
	a := Styles(map[string]string{
		"width":          "300px",
		"display":        "flex",
		"flex-direction": "column",
	})
	want := "display: flex; flex-direction: column; width: 300px"
	if a.Key != "style" || a.Value != want {
		t.Errorf("Styles() = %v=%v, want style=%v", a.Key, a.Value, want)
	}
}

func TestEvents(t *testing.T) {
	tests := []struct {
		name    string
		handler EventHandler
		want    string
	}{
		{"click", OnClick(func() {}), "onclick"},
		{"input", OnInput(func(string) {}), "oninput"},
		{"change", OnChange(func(string) {}), "onchange"},
		{"submit", OnSubmit(func() {}), "onsubmit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.handler.Event != tt.want {
				t.Errorf("Event = %v, want %v", tt.handler.Event, tt.want)
			}
			node := Button(tt.handler)
			if !node.IsInteractive() {
				t.Error("node with handler should be interactive")
			}
		})
	}
}

func TestFragment(t *testing.T) {
	frag := Fragment(H1("hello world"), nil, "text", []*VNode{P(), nil})
	if frag.Kind != KindFragment {
		t.Errorf("Kind = %v, want KindFragment", frag.Kind)
	}
	if len(frag.Children) != 3 {
		t.Errorf("Children len = %v, want 3", len(frag.Children))
	}
}

func TestVKindString(t *testing.T) {
	if KindComponent.String() != "Component" {
		t.Errorf("KindComponent.String() = %v", KindComponent.String())
	}
	if VKind(99).String() != "Unknown" {
		t.Errorf("VKind(99).String() = %v", VKind(99).String())
	}
}
