// Package svg encodes scalable vector graphics documents.
package svg

import (
	"encoding/xml"
	"strconv"
)

// Attr is one element attribute, kept in document order.
type Attr struct {
	Name  string
	Value string
}

// Element is one svg element with attributes, optional character data
// and child elements.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []Element
}

// SetAttr appends the attribute, replacing an earlier value under the
// same name.
func (e *Element) SetAttr(name, value string) {
	for idx := range e.Attrs {
		if e.Attrs[idx].Name == name {
			e.Attrs[idx].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// AddChild appends a child element.
func (e *Element) AddChild(child Element) {
	e.Children = append(e.Children, child)
}

// MarshalXML implements interface
func (e Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Name}}
	for _, attr := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: attr.Name},
			Value: attr.Value,
		})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, child := range e.Children {
		if err := child.MarshalXML(enc, xml.StartElement{}); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Document is a complete svg drawing of the given pixel size.
type Document struct {
	Width    float32
	Height   float32
	Elements []Element
}

// Marshal renders the document, xml header included.
func (d Document) Marshal() ([]byte, error) {
	root := Element{Name: "svg", Children: d.Elements}
	root.SetAttr("xmlns", "http://www.w3.org/2000/svg")
	root.SetAttr("width", Number(d.Width))
	root.SetAttr("height", Number(d.Height))
	body, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// Number formats a coordinate or length the compact way svg documents
// usually carry them.
func Number(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
