// Package markup parses EXLang markup text into a generic attributed
// element tree. It is a thin adapter over encoding/xml: the rest of the
// system only sees element names, ordered attributes, ordered children
// and text content, never xml tokens.
package markup

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the parsed document tree. Attrs and Children
// preserve document order. Text is the concatenated direct character
// data of the element (empty for an empty element).
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// Attr returns the value of the named attribute and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrDefault returns the named attribute value, or def if absent.
func (e *Element) AttrDefault(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// Find returns the direct children with the given tag, in document
// order.
func (e *Element) Find(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// ParseError reports malformed markup. It is distinct from schema
// validation errors and from compile-time address errors.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("XML Parse Error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse parses a complete markup document and returns its root element.
func Parse(text string) (*Element, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader parses a markup document from r. Documents that declare a
// non-UTF-8 encoding in their prolog are decoded via the WHATWG
// encoding index.
func ParseReader(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	root, err := decodeElement(dec)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if root == nil {
		return nil, &ParseError{Err: io.ErrUnexpectedEOF}
	}
	return root, nil
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", charset, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

// decodeElement consumes tokens until the first start element and
// builds the subtree rooted there.
func decodeElement(dec *xml.Decoder) (*Element, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return decodeSubtree(dec, start)
		}
	}
}

func decodeSubtree(dec *xml.Decoder, start xml.StartElement) (*Element, error) {
	el := &Element{Tag: start.Name.Local}
	for _, a := range start.Attr {
		el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
	}
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeSubtree(dec, t)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(el.Children) == 0 {
				el.Text = text.String()
			} else {
				// Container elements only carry indentation between
				// children; value-bearing elements have no children.
				el.Text = strings.TrimSpace(text.String())
			}
			return el, nil
		}
	}
}
