package aios

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

// Element is one node of a decoded XML document.
type Element struct {
	Name     xml.Name
	Attr     []xml.Attr
	Text     string // character data directly inside this element
	Children []*Element
}

// ParseDocument decodes data into an element tree and returns its root.
// The whole input is consumed, so any well-formedness error is reported.
func ParseDocument(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name, Attr: t.Copy().Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("xml: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("xml: no root element")
	}
	return root, nil
}

// Find returns the first descendant named local in namespace space, in
// document order. An empty space matches any namespace.
func (e *Element) Find(space, local string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name.Local == local && (space == "" || c.Name.Space == space) {
			return c
		}
		if found := c.Find(space, local); found != nil {
			return found
		}
	}
	return nil
}

// AttrValue returns the value of the unqualified attribute local.
func (e *Element) AttrValue(local string) (string, bool) {
	for _, a := range e.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}
