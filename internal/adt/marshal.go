package adt

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

// MemberKind selects how a Member is written.
type MemberKind int

const (
	AttributeMember MemberKind = iota
	ElementMember
	// PlaceholderMember is an element that is always written empty.
	PlaceholderMember
)

// Member is one serializable attribute or child element. Types list their
// members in declaration order; embedding types append their own members
// after the embedded type's list.
type Member struct {
	Kind MemberKind
	Name string
	// Text resolves an attribute value; "" means absent.
	Text func() (string, error)
	// Node resolves a child element; nil means absent.
	Node func() (Node, error)
}

// Node is anything that serializes as an XML element body.
type Node interface {
	XMLMembers() []Member
}

// Root is a Node that knows its document element and namespace.
type Root interface {
	Node
	ObjectType() *ObjectType
}

// Attribute declares an attribute member; an empty value is omitted.
func Attribute(name string, get func() string) Member {
	return Member{
		Kind: AttributeMember,
		Name: name,
		Text: func() (string, error) { return get(), nil },
	}
}

// Element declares a child element member; a nil node is omitted. Getters
// return an untyped nil for an absent pointer.
func Element(name string, get func() Node) Member {
	return Member{
		Kind: ElementMember,
		Name: name,
		Node: func() (Node, error) { return get(), nil },
	}
}

// Placeholder declares an element that is always written empty.
func Placeholder(name string) Member {
	return Member{Kind: PlaceholderMember, Name: name}
}

type xmlAttr struct {
	name  string
	value string
}

type xmlElement struct {
	name     string
	attrs    []xmlAttr
	children []*xmlElement
}

// Marshal serializes root into the ADT XML wire format.
func Marshal(root Root) (string, error) {
	objtype := root.ObjectType()
	ns := objtype.Namespace()

	tree := &xmlElement{name: ns.Prefix + ":" + objtype.XMLName()}
	tree.attrs = append(tree.attrs, xmlAttr{name: "xmlns:" + ns.Prefix, value: ns.URI})
	if ns.Prefix != coreNamespace.Prefix {
		tree.attrs = append(tree.attrs, xmlAttr{name: "xmlns:" + coreNamespace.Prefix, value: coreNamespace.URI})
	}

	if err := buildTree(tree, root); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteByte('\n')
	writeElement(&buf, tree)
	return buf.String(), nil
}

func buildTree(parent *xmlElement, node Node) error {
	for _, m := range node.XMLMembers() {
		switch m.Kind {
		case AttributeMember:
			value, err := m.Text()
			if err != nil {
				return &SerializationError{Member: m.Name, Err: err}
			}
			if value == "" {
				continue
			}
			parent.attrs = append(parent.attrs, xmlAttr{name: m.Name, value: value})

		case ElementMember:
			child, err := m.Node()
			if err != nil {
				return &SerializationError{Member: m.Name, Err: err}
			}
			if child == nil {
				continue
			}
			elem := &xmlElement{name: m.Name}
			if err := buildTree(elem, child); err != nil {
				return err
			}
			parent.children = append(parent.children, elem)

		case PlaceholderMember:
			parent.children = append(parent.children, &xmlElement{name: m.Name})

		default:
			return &SerializationError{Member: m.Name, Err: fmt.Errorf("unknown member kind %d", m.Kind)}
		}
	}
	return nil
}

func writeElement(buf *bytes.Buffer, e *xmlElement) {
	buf.WriteByte('<')
	buf.WriteString(e.name)
	for _, a := range e.attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.name)
		buf.WriteString(`="`)
		// EscapeText only fails on writer errors; bytes.Buffer has none
		_ = xml.EscapeText(buf, []byte(a.value))
		buf.WriteByte('"')
	}

	if len(e.children) == 0 {
		buf.WriteString("/>")
		return
	}

	buf.WriteByte('>')
	for _, c := range e.children {
		buf.WriteByte('\n')
		writeElement(buf, c)
	}
	buf.WriteString("\n</")
	buf.WriteString(e.name)
	buf.WriteByte('>')
}
