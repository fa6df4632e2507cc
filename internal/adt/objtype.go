package adt

import "fmt"

// Namespace is an XML namespace prefix and its URI.
type Namespace struct {
	Prefix string
	URI    string
}

var coreNamespace = Namespace{Prefix: "adtcore", URI: "http://www.sap.com/adt/core"}

// ObjectType is the immutable descriptor shared by all objects of one kind.
type ObjectType struct {
	code     string
	basePath string
	ns       Namespace
	mimeType string
	typeURIs map[string]string
	xmlName  string
}

func NewObjectType(code, basePath string, ns Namespace, mimeType string, typeURIs map[string]string, xmlName string) *ObjectType {
	uris := make(map[string]string, len(typeURIs))
	for mime, suffix := range typeURIs {
		uris[mime] = suffix
	}

	return &ObjectType{
		code:     code,
		basePath: basePath,
		ns:       ns,
		mimeType: mimeType,
		typeURIs: uris,
		xmlName:  xmlName,
	}
}

func (t *ObjectType) Code() string         { return t.code }
func (t *ObjectType) BasePath() string     { return t.basePath }
func (t *ObjectType) Namespace() Namespace { return t.ns }
func (t *ObjectType) MimeType() string     { return t.mimeType }
func (t *ObjectType) XMLName() string      { return t.xmlName }

// URIForType returns the URL suffix, including the leading slash, of the
// object representation in the requested MIME type.
func (t *ObjectType) URIForType(mimeType string) (string, error) {
	suffix, ok := t.typeURIs[mimeType]
	if !ok {
		return "", fmt.Errorf("object %s does not support %s: %w", t.code, mimeType, ErrUnsupportedFormat)
	}
	return "/" + suffix, nil
}

var (
	ProgramType = NewObjectType(
		"PROG/P",
		"programs/programs",
		Namespace{Prefix: "program", URI: "http://www.sap.com/adt/programs/programs"},
		"application/vnd.sap.adt.programs.programs.v2+xml",
		map[string]string{"text/plain": "source/main"},
		"abapProgram",
	)

	ClassType = NewObjectType(
		"CLAS/OC",
		"oo/classes",
		Namespace{Prefix: "class", URI: "http://www.sap.com/adt/oo/classes"},
		"application/vnd.sap.adt.oo.classes.v2+xml",
		map[string]string{"text/plain": "source/main"},
		"abapClass",
	)

	PackageType = NewObjectType(
		"DEVC/K",
		"packages",
		Namespace{Prefix: "pak", URI: "http://www.sap.com/adt/packages"},
		"application/vnd.sap.adt.packages.v1+xml",
		nil,
		"package",
	)
)
