package adt

import (
	"context"
	"net/http"
)

// Program is an ABAP report.
type Program struct {
	Object
}

// NewProgram binds a program to conn. The package reference of meta is set
// to pkg.
func NewProgram(conn Connector, name, pkg string, meta *CoreData) *Program {
	p := &Program{Object: newObject(conn, name, ProgramType, meta)}
	p.meta.PackageReference.Name = pkg
	return p
}

func (p *Program) XMLMembers() []Member {
	return append(p.Object.XMLMembers(),
		Attribute("adtcore:version", func() string { return "active" }),
	)
}

// Create posts the program definition, optionally within transport corrNr.
func (p *Program) Create(ctx context.Context, corrNr string) (*Response, error) {
	return p.create(ctx, p, corrNr)
}

// ChangeText replaces the main source. The program must be locked.
func (p *Program) ChangeText(ctx context.Context, content string) error {
	return p.changeText(ctx, content, http.Header{})
}
