package adt

import "context"

// Package is an ABAP development package (DEVC).
type Package struct {
	Object
	superPackage *SuperPackage
	transport    *Transport
	attributes   *PackageAttributes
	appComponent *ApplicationComponent
}

type SuperPackage struct {
	Name string
}

func (s *SuperPackage) XMLMembers() []Member {
	return []Member{
		Attribute("adtcore:name", func() string { return s.Name }),
	}
}

type SoftwareComponent struct {
	Name string
}

func (s *SoftwareComponent) XMLMembers() []Member {
	return []Member{
		Attribute("pak:name", func() string { return s.Name }),
	}
}

type ApplicationComponent struct {
	Name string
}

func (a *ApplicationComponent) XMLMembers() []Member {
	return []Member{
		Attribute("pak:name", func() string { return a.Name }),
	}
}

// PackageAttributes holds the package type (development, structure, main).
type PackageAttributes struct {
	PackageType string
}

func (a *PackageAttributes) XMLMembers() []Member {
	return []Member{
		Attribute("pak:packageType", func() string { return a.PackageType }),
	}
}

type TransportLayer struct {
	Name string
}

func (l *TransportLayer) XMLMembers() []Member {
	return []Member{
		Attribute("pak:name", func() string { return l.Name }),
	}
}

// Transport is the package transport configuration.
type Transport struct {
	SoftwareComponent *SoftwareComponent
	Layer             *TransportLayer
}

func (t *Transport) XMLMembers() []Member {
	return []Member{
		Element("pak:softwareComponent", func() Node {
			if t.SoftwareComponent == nil {
				return nil
			}
			return t.SoftwareComponent
		}),
		Element("pak:transportLayer", func() Node {
			if t.Layer == nil {
				return nil
			}
			return t.Layer
		}),
	}
}

// NewPackage binds a package to conn. The package references itself.
func NewPackage(conn Connector, name string, meta *CoreData) *Package {
	p := &Package{
		Object:       newObject(conn, name, PackageType, meta),
		superPackage: &SuperPackage{},
		transport: &Transport{
			SoftwareComponent: &SoftwareComponent{},
			Layer:             &TransportLayer{},
		},
		attributes: &PackageAttributes{},
	}
	p.meta.PackageReference.Name = name
	return p
}

func (p *Package) SuperPackage() *SuperPackage                 { return p.superPackage }
func (p *Package) Transport() *Transport                       { return p.transport }
func (p *Package) Attributes() *PackageAttributes              { return p.attributes }
func (p *Package) ApplicationComponent() *ApplicationComponent { return p.appComponent }

func (p *Package) SetPackageType(packageType string) {
	p.attributes = &PackageAttributes{PackageType: packageType}
}

func (p *Package) SetSuperPackage(name string) {
	p.superPackage = &SuperPackage{Name: name}
}

func (p *Package) SetSoftwareComponent(name string) {
	p.transport.SoftwareComponent = &SoftwareComponent{Name: name}
}

func (p *Package) SetTransportLayer(name string) {
	p.transport.Layer = &TransportLayer{Name: name}
}

func (p *Package) SetAppComponent(name string) {
	p.appComponent = &ApplicationComponent{Name: name}
}

func (p *Package) XMLMembers() []Member {
	return append(p.Object.XMLMembers(),
		Attribute("adtcore:version", func() string { return "active" }),
		Element("pak:attributes", func() Node {
			if p.attributes == nil {
				return nil
			}
			return p.attributes
		}),
		Element("pak:superPackage", func() Node {
			if p.superPackage == nil {
				return nil
			}
			return p.superPackage
		}),
		Element("pak:applicationComponent", func() Node {
			if p.appComponent == nil {
				return nil
			}
			return p.appComponent
		}),
		Element("pak:transport", func() Node {
			if p.transport == nil {
				return nil
			}
			return p.transport
		}),
		Placeholder("pak:translation"),
		Placeholder("pak:useAccesses"),
		Placeholder("pak:packageInterfaces"),
		Placeholder("pak:subPackages"),
	)
}

func (p *Package) Create(ctx context.Context, corrNr string) (*Response, error) {
	return p.create(ctx, p, corrNr)
}
