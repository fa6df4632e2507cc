package adt

// Reference points to a package by name.
type Reference struct {
	Name string
}

func (r *Reference) XMLMembers() []Member {
	return []Member{
		Attribute("adtcore:name", func() string { return r.Name }),
	}
}

// CoreData holds the attributes shared by every repository object.
type CoreData struct {
	Package          string
	Description      string
	Language         string
	MasterLanguage   string
	MasterSystem     string
	Responsible      string
	PackageReference *Reference
}

// NewCoreData returns metadata whose package reference names packageRef.
func NewCoreData(pkg, description, language, masterLanguage, masterSystem, responsible, packageRef string) *CoreData {
	return &CoreData{
		Package:          pkg,
		Description:      description,
		Language:         language,
		MasterLanguage:   masterLanguage,
		MasterSystem:     masterSystem,
		Responsible:      responsible,
		PackageReference: &Reference{Name: packageRef},
	}
}
