package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/refstore/pkg/vdom"
)

// DefaultWSPath is the websocket endpoint the client script dials.
const DefaultWSPath = "/ws"

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the composed root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Lang defaults to "en".
	Lang string

	// Styles contains inline CSS blocks for the head.
	Styles []string

	// SessionID is exposed to the client for logging.
	SessionID string

	// WSPath defaults to DefaultWSPath.
	WSPath string
}

// RenderPage renders a complete HTML document to the given writer.
// The body is wrapped in <div id="app"> which the client script replaces on
// every server update.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	wsPath := page.WSPath
	if wsPath == "" {
		wsPath = DefaultWSPath
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", escapeAttr(lang)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "  <meta charset=\"utf-8\">\n  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", escapeScript(style)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</head>\n<body>\n<div id=\"app\">"); err != nil {
		return err
	}

	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "</div>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<script data-session=\"%s\" data-ws=\"%s\">%s</script>\n",
		escapeAttr(page.SessionID), escapeAttr(wsPath), clientScript); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// clientScript forwards DOM events on [data-hid] elements to the server and
// swaps #app with the HTML it sends back. Focus and caret are restored by
// element id so typing into an input survives the swap.
const clientScript = `(function () {
  var tag = document.currentScript;
  var app = document.getElementById("app");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + tag.dataset.ws);

  function target(ev) {
    var el = ev.target;
    while (el && el !== app) {
      if (el.dataset && el.dataset.hid && el.dataset["on" + ev.type]) return el;
      el = el.parentElement;
    }
    return null;
  }

  function send(ev) {
    var el = target(ev);
    if (!el) return;
    if (ev.type === "submit") ev.preventDefault();
    var value = el.value !== undefined ? String(el.value) : "";
    if (ws.readyState === 1) {
      ws.send(JSON.stringify({ hid: el.dataset.hid, type: ev.type, value: value }));
    }
  }

  ["click", "input", "change", "submit"].forEach(function (type) {
    app.addEventListener(type, send, true);
  });

  ws.onmessage = function (msg) {
    var reply = JSON.parse(msg.data);
    if (reply.error) console.warn("[refstore]", reply.error);
    if (reply.html === undefined || reply.html === "") return;
    var active = document.activeElement;
    var id = active && active.id;
    var start = active && active.selectionStart;
    var end = active && active.selectionEnd;
    app.innerHTML = reply.html;
    if (id) {
      var el = document.getElementById(id);
      if (el) {
        el.focus();
        if (start !== null && start !== undefined && el.setSelectionRange) {
          try { el.setSelectionRange(start, end); } catch (e) {}
        }
      }
    }
  };
})();`
