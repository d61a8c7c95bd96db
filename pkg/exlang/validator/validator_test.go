package validator

import (
	"testing"

	"github.com/ukaji3/exlang-go/pkg/exlang/markup"
)

func mustParse(t *testing.T, text string) *markup.Element {
	t.Helper()
	root, err := markup.Parse(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return root
}

func TestValidateAccepts(t *testing.T) {
	root := mustParse(t, `
	<xworkbook>
	  <xsheet name="Data">
	    <xrow r="1"><xv>Region</xv><xv>Sales</xv></xrow>
	    <xrow r="2" c="B"><xv>120000</xv></xrow>
	    <xcell addr="B4" v="=SUM(B2:B3)"/>
	    <xrange from="A1" to="C1" fill="0" t="number"/>
	    <xrepeat times="3" direction="right"><xv>Q{{i}}</xv></xrepeat>
	    <xmerge addr="A1:C1"/>
	    <xstyle addr="A1:C1" bold="true"/>
	  </xsheet>
	  <xsheet/>
	</xworkbook>`)

	if errs := Validate(root); len(errs) != 0 {
		t.Errorf("Validate returned errors for a valid document: %v", errs)
	}
}

func TestValidateRootTag(t *testing.T) {
	// A wrong root tag short-circuits: even with other violations inside,
	// exactly one error comes back.
	root := mustParse(t, `<workbook><xsheet><xrow/></xsheet></workbook>`)
	errs := Validate(root)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, expected exactly 1: %v", len(errs), errs)
	}
	if errs[0] != "Root tag must be 'xworkbook' but found 'workbook'" {
		t.Errorf("unexpected error: %q", errs[0])
	}
}

func TestValidateAggregates(t *testing.T) {
	// All violations are reported, not just the first.
	root := mustParse(t, `
	<xworkbook>
	  <xsheet name="Bad">
	    <xrow><xv>x</xv></xrow>
	    <xcell addr="A1" v="1" t="integer"/>
	    <xmerge addr="A1"/>
	  </xsheet>
	</xworkbook>`)

	errs := Validate(root)
	if len(errs) != 3 {
		t.Fatalf("got %d errors, expected 3: %v", len(errs), errs)
	}
	expected := []string{
		"xrow missing required attribute 'r'",
		"xcell at A1 has invalid type hint t='integer'",
		"xmerge addr='A1' must be a range like 'A1:B2'",
	}
	for i, want := range expected {
		if errs[i] != want {
			t.Errorf("errs[%d] = %q, expected %q", i, errs[i], want)
		}
	}
}

func TestValidateRow(t *testing.T) {
	root := mustParse(t, `<xworkbook><xsheet><xrow c="B"><xv>x</xv></xrow></xsheet></xworkbook>`)
	errs := Validate(root)
	if len(errs) != 1 || errs[0] != "xrow missing required attribute 'r'" {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestValidateCell(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected []string
	}{
		{
			"missing addr and v",
			`<xworkbook><xsheet><xcell/></xsheet></xworkbook>`,
			[]string{
				"xcell missing required attribute 'addr'",
				"xcell missing required attribute 'v'",
			},
		},
		{
			"bad type hint without addr",
			`<xworkbook><xsheet><xcell v="1" t="int"/></xsheet></xworkbook>`,
			[]string{
				"xcell missing required attribute 'addr'",
				"xcell at ? has invalid type hint t='int'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(mustParse(t, tt.doc))
			if len(errs) != len(tt.expected) {
				t.Fatalf("got %d errors, expected %d: %v", len(errs), len(tt.expected), errs)
			}
			for i, want := range tt.expected {
				if errs[i] != want {
					t.Errorf("errs[%d] = %q, expected %q", i, errs[i], want)
				}
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	root := mustParse(t, `<xworkbook><xsheet><xrange from="A1" t="float"/></xsheet></xworkbook>`)
	errs := Validate(root)
	expected := []string{
		"xrange missing required attribute 'to'",
		"xrange missing required attribute 'fill'",
		"xrange from A1 to ? has invalid type hint t='float'",
	}
	if len(errs) != len(expected) {
		t.Fatalf("got %d errors, expected %d: %v", len(errs), len(expected), errs)
	}
	for i, want := range expected {
		if errs[i] != want {
			t.Errorf("errs[%d] = %q, expected %q", i, errs[i], want)
		}
	}
}

func TestValidateRepeat(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected string
	}{
		{
			"missing times",
			`<xworkbook><xsheet><xrepeat><xv>x</xv></xrepeat></xsheet></xworkbook>`,
			"xrepeat missing required attribute 'times'",
		},
		{
			"times zero",
			`<xworkbook><xsheet><xrepeat times="0"><xv>x</xv></xrepeat></xsheet></xworkbook>`,
			"xrepeat has invalid times='0' (must be an integer >= 1)",
		},
		{
			"times not a number",
			`<xworkbook><xsheet><xrepeat times="three"><xv>x</xv></xrepeat></xsheet></xworkbook>`,
			"xrepeat has invalid times='three' (must be an integer >= 1)",
		},
		{
			"bad direction",
			`<xworkbook><xsheet><xrepeat times="2" direction="up"><xv>x</xv></xrepeat></xsheet></xworkbook>`,
			"xrepeat has invalid direction='up' (must be 'down' or 'right')",
		},
		{
			"nested repeat",
			`<xworkbook><xsheet><xrepeat times="2"><xrepeat times="2"><xv>x</xv></xrepeat></xrepeat></xsheet></xworkbook>`,
			"xrepeat must not contain a nested xrepeat",
		},
		{
			"unexpected child",
			`<xworkbook><xsheet><xrepeat times="2"><xcell addr="A1" v="1"/></xrepeat></xsheet></xworkbook>`,
			"xrepeat contains unexpected child element 'xcell' (only xv is allowed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(mustParse(t, tt.doc))
			if len(errs) != 1 || errs[0] != tt.expected {
				t.Errorf("got %v, expected [%q]", errs, tt.expected)
			}
		})
	}
}

func TestValidateMerge(t *testing.T) {
	for _, addr := range []string{"A1", "A1:", ":B2", "A1:B2:C3"} {
		doc := `<xworkbook><xsheet><xmerge addr="` + addr + `"/></xsheet></xworkbook>`
		errs := Validate(mustParse(t, doc))
		want := "xmerge addr='" + addr + "' must be a range like 'A1:B2'"
		if len(errs) != 1 || errs[0] != want {
			t.Errorf("addr %q: got %v, expected [%q]", addr, errs, want)
		}
	}
}

func TestValidateStyle(t *testing.T) {
	root := mustParse(t, `<xworkbook><xsheet><xstyle addr="A1" bold="yes" italic="1"/></xsheet></xworkbook>`)
	errs := Validate(root)
	expected := []string{
		"xstyle at A1 has invalid bold='yes' (must be 'true' or 'false')",
		"xstyle at A1 has invalid italic='1' (must be 'true' or 'false')",
	}
	if len(errs) != len(expected) {
		t.Fatalf("got %d errors, expected %d: %v", len(errs), len(expected), errs)
	}
	for i, want := range expected {
		if errs[i] != want {
			t.Errorf("errs[%d] = %q, expected %q", i, errs[i], want)
		}
	}

	root = mustParse(t, `<xworkbook><xsheet><xstyle bold="true"/></xsheet></xworkbook>`)
	errs = Validate(root)
	if len(errs) != 1 || errs[0] != "xstyle missing required attribute 'addr'" {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestValidateSheetNames(t *testing.T) {
	t.Run("duplicate explicit names", func(t *testing.T) {
		root := mustParse(t, `<xworkbook><xsheet name="Data"/><xsheet name="Data"/></xworkbook>`)
		errs := Validate(root)
		if len(errs) != 1 || errs[0] != "duplicate sheet name 'Data'" {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("auto name collision", func(t *testing.T) {
		// The unnamed sheet would be auto-named Sheet1, which the
		// explicit name already claims.
		root := mustParse(t, `<xworkbook><xsheet name="Sheet1"/><xsheet/></xworkbook>`)
		errs := Validate(root)
		if len(errs) != 1 || errs[0] != "auto-generated sheet name 'Sheet1' collides with explicit sheet name" {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("collision independent of order", func(t *testing.T) {
		root := mustParse(t, `<xworkbook><xsheet/><xsheet name="Sheet1"/></xworkbook>`)
		errs := Validate(root)
		if len(errs) != 1 || errs[0] != "auto-generated sheet name 'Sheet1' collides with explicit sheet name" {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("no collision with distinct auto names", func(t *testing.T) {
		root := mustParse(t, `<xworkbook><xsheet name="Sheet2"/><xsheet/></xworkbook>`)
		// The single unnamed sheet becomes Sheet1; Sheet2 stays free.
		if errs := Validate(root); len(errs) != 0 {
			t.Errorf("unexpected errors: %v", errs)
		}
	})
}
