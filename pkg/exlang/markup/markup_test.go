package markup

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTree(t *testing.T) {
	root, err := Parse(`
	<xworkbook>
	  <xsheet name="Data">
	    <xrow r="1" c="B"><xv>Region</xv><xv>Sales</xv></xrow>
	    <xcell addr="A1" v="x"/>
	  </xsheet>
	</xworkbook>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if root.Tag != "xworkbook" {
		t.Fatalf("root tag = %q", root.Tag)
	}
	sheets := root.Find("xsheet")
	if len(sheets) != 1 {
		t.Fatalf("got %d sheets", len(sheets))
	}
	if name, ok := sheets[0].Attr("name"); !ok || name != "Data" {
		t.Errorf("sheet name = %q, %v", name, ok)
	}

	children := sheets[0].Children
	if len(children) != 2 {
		t.Fatalf("got %d children", len(children))
	}
	if children[0].Tag != "xrow" || children[1].Tag != "xcell" {
		t.Errorf("children out of order: %s, %s", children[0].Tag, children[1].Tag)
	}

	row := children[0]
	if r, _ := row.Attr("r"); r != "1" {
		t.Errorf("r = %q", r)
	}
	if c := row.AttrDefault("c", "A"); c != "B" {
		t.Errorf("c = %q", c)
	}
	if missing := row.AttrDefault("nope", "fallback"); missing != "fallback" {
		t.Errorf("AttrDefault = %q", missing)
	}

	values := row.Find("xv")
	if len(values) != 2 {
		t.Fatalf("got %d xv children", len(values))
	}
	if values[0].Text != "Region" || values[1].Text != "Sales" {
		t.Errorf("xv text = %q, %q", values[0].Text, values[1].Text)
	}
}

func TestParseAttrOrder(t *testing.T) {
	root, err := Parse(`<el b="2" a="1" c="3"/>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	names := make([]string, len(root.Attrs))
	for i, a := range root.Attrs {
		names[i] = a.Name
	}
	if strings.Join(names, ",") != "b,a,c" {
		t.Errorf("attribute order = %v", names)
	}
}

func TestParseTextHandling(t *testing.T) {
	// Leaf elements keep their text verbatim, including spaces.
	root, err := Parse(`<xv> spaced </xv>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if root.Text != " spaced " {
		t.Errorf("leaf text = %q", root.Text)
	}

	// Container elements drop the indentation between children.
	root, err = Parse("<a>\n  <b>x</b>\n</a>")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if root.Text != "" {
		t.Errorf("container text = %q", root.Text)
	}

	// Empty elements have empty text.
	root, err = Parse(`<xv></xv>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if root.Text != "" {
		t.Errorf("empty element text = %q", root.Text)
	}
}

func TestParseEntities(t *testing.T) {
	root, err := Parse(`<xv>a &lt; b &amp; c</xv>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if root.Text != "a < b & c" {
		t.Errorf("text = %q", root.Text)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []string{
		`<xworkbook><xsheet></xworkbook>`, // mismatched close
		`<xworkbook>`,                     // unclosed root
		``,                                // empty input
		`just text`,                       // no element at all
	}
	for _, input := range tests {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, expected error", input)
			continue
		}
		var pErr *ParseError
		if !errors.As(err, &pErr) {
			t.Errorf("Parse(%q) = %T, expected *ParseError", input, err)
			continue
		}
		if !strings.HasPrefix(err.Error(), "XML Parse Error: ") {
			t.Errorf("Parse(%q) message = %q", input, err.Error())
		}
	}
}

func TestParseDeclaredCharset(t *testing.T) {
	// ISO-8859-1 bytes with a matching prolog declaration decode via the
	// charset reader. 0xE9 is "é" in Latin-1.
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?><xv>caf` + "\xe9" + `</xv>`
	root, err := ParseReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if root.Text != "café" {
		t.Errorf("text = %q", root.Text)
	}
}
