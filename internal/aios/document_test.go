package aios

import "testing"

func TestParseDocumentFind(t *testing.T) {
	doc := `<a xmlns:x="urn:x"><b><x:c val="1">one</x:c></b><c val="2">two</c><x:c>three</x:c></a>`
	root, err := ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	tests := []struct {
		space, local string
		want         string
	}{
		{"", "c", "one"},
		{"urn:x", "c", "one"},
		{"urn:y", "c", ""},
		{"", "missing", ""},
	}
	for _, tt := range tests {
		el := root.Find(tt.space, tt.local)
		got := ""
		if el != nil {
			got = el.Text
		}
		if got != tt.want {
			t.Errorf("Find(%q, %q) = %q, want %q", tt.space, tt.local, got, tt.want)
		}
	}

	c := root.Children[1]
	if v, ok := c.AttrValue("val"); !ok || v != "2" {
		t.Errorf("AttrValue(val) = %q, %v", v, ok)
	}
	if _, ok := c.AttrValue("other"); ok {
		t.Error("AttrValue(other) should be absent")
	}
}

func TestParseDocumentErrors(t *testing.T) {
	for _, in := range []string{"", "text only", "<a></a><b></b>", "<a><b></a>"} {
		if _, err := ParseDocument([]byte(in)); err == nil {
			t.Errorf("ParseDocument(%q) succeeded", in)
		}
	}
}
