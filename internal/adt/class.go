package adt

import (
	"context"
	"net/http"
)

// Class is an ABAP OO class.
type Class struct {
	Object
	superClass *SuperClass
}

type SuperClass struct {
	Name string
}

func (s *SuperClass) XMLMembers() []Member {
	return []Member{
		Attribute("adtcore:name", func() string { return s.Name }),
	}
}

// Include describes a class include such as the local test classes.
type Include struct {
	ADTName     string
	ADTType     string
	IncludeType string
}

func TestClassesInclude() *Include {
	return &Include{ADTName: "CLAS/OC", ADTType: "CLAS/OC", IncludeType: "testclasses"}
}

func (i *Include) XMLMembers() []Member {
	return []Member{
		Attribute("adtcore:name", func() string { return i.ADTName }),
		Attribute("adtcore:type", func() string { return i.ADTType }),
		Attribute("class:includeType", func() string { return i.IncludeType }),
	}
}

func NewClass(conn Connector, name, pkg string, meta *CoreData) *Class {
	c := &Class{
		Object:     newObject(conn, name, ClassType, meta),
		superClass: &SuperClass{},
	}
	c.meta.PackageReference.Name = pkg
	return c
}

func (c *Class) SuperClass() *SuperClass { return c.superClass }

func (c *Class) SetSuperClass(name string) {
	c.superClass = &SuperClass{Name: name}
}

func (c *Class) XMLMembers() []Member {
	return append(c.Object.XMLMembers(),
		Attribute("class:final", func() string { return "true" }),
		Attribute("class:visibility", func() string { return "public" }),
		Element("class:include", func() Node { return TestClassesInclude() }),
		Element("class:superClassRef", func() Node {
			if c.superClass == nil {
				return nil
			}
			return c.superClass
		}),
	)
}

func (c *Class) Create(ctx context.Context, corrNr string) (*Response, error) {
	return c.create(ctx, c, corrNr)
}

// ChangeText replaces the main source. The class must be locked.
func (c *Class) ChangeText(ctx context.Context, content string) error {
	header := http.Header{}
	header.Set("Accept", "text/plain")
	return c.changeText(ctx, content, header)
}
