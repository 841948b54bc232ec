package email

import (
	"strings"
	"testing"
)

func TestSanitizeHTMLRemovesScriptTags(t *testing.T) {
	in := `<p>Hello</p><script>alert("x")</script><p>World</p>`
	out, err := SanitizeHTML(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "script") || strings.Contains(out, "alert") {
		t.Errorf("script content survived: %q", out)
	}
	if !strings.Contains(out, "Hello") || !strings.Contains(out, "World") {
		t.Errorf("legitimate content lost: %q", out)
	}
}

func TestSanitizeHTMLRemovesEmbeddedContent(t *testing.T) {
	in := `<div><iframe src="https://evil.example"></iframe><object></object><embed><form action="/x"><input></form></div>`
	out, err := SanitizeHTML(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tag := range []string{"iframe", "object", "embed", "<form"} {
		if strings.Contains(out, tag) {
			t.Errorf("%s survived sanitization: %q", tag, out)
		}
	}
}

func TestSanitizeHTMLDropsEventHandlers(t *testing.T) {
	in := `<img src="logo.png" onerror="steal()"><a href="https://ok.example" onclick="bad()">link</a>`
	out, err := SanitizeHTML(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "onerror") || strings.Contains(out, "onclick") {
		t.Errorf("event handler survived: %q", out)
	}
	if !strings.Contains(out, `src="logo.png"`) {
		t.Errorf("benign attribute lost: %q", out)
	}
	if !strings.Contains(out, `href="https://ok.example"`) {
		t.Errorf("benign href lost: %q", out)
	}
}

func TestSanitizeHTMLNeutralizesJavascriptHrefs(t *testing.T) {
	in := `<a href=" JavaScript:doEvil() ">click</a>`
	out, err := SanitizeHTML(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(strings.ToLower(out), "javascript:") {
		t.Errorf("javascript href survived: %q", out)
	}
	if !strings.Contains(out, `href="#"`) {
		t.Errorf("href not neutralized to #: %q", out)
	}
}

func TestSanitizeHTMLPlainContentUnchanged(t *testing.T) {
	in := `<h1>Role at Acme</h1><p>We think you would be a <strong>great</strong> fit.</p>`
	out, err := SanitizeHTML(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, frag := range []string{"<h1>", "Role at Acme", "<strong>great</strong>"} {
		if !strings.Contains(out, frag) {
			t.Errorf("expected %q in output %q", frag, out)
		}
	}
}
