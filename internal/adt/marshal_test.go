package adt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dummyType = NewObjectType(
	"DUMMY/S",
	"awesome/success",
	Namespace{Prefix: "win", URI: "http://www.example.com/never/lose"},
	"application/super.cool.txt+xml",
	map[string]string{"text/plain": "no/bigdeal"},
	"dummies",
)

type dummyChild struct {
	first  string
	second string
}

func (d *dummyChild) XMLMembers() []Member {
	return []Member{
		Attribute("win:second", func() string { return d.second }),
		Attribute("win:first", func() string { return d.first }),
	}
}

type dummyRoot struct {
	members []Member
}

func (d *dummyRoot) ObjectType() *ObjectType { return dummyType }
func (d *dummyRoot) XMLMembers() []Member    { return d.members }

// dummyDerived extends dummyBase the way object kinds extend Object.
type dummyBase struct{}

func (dummyBase) XMLMembers() []Member {
	return []Member{
		Attribute("win:zeta", func() string { return "base-z" }),
		Attribute("win:alpha", func() string { return "base-a" }),
	}
}

type dummyDerived struct {
	dummyBase
}

func (d *dummyDerived) ObjectType() *ObjectType { return dummyType }

func (d *dummyDerived) XMLMembers() []Member {
	return append(d.dummyBase.XMLMembers(),
		Attribute("win:beta", func() string { return "derived-b" }),
	)
}

func TestMarshalDeclarationOrder(t *testing.T) {
	root := &dummyRoot{members: []Member{
		Attribute("win:b", func() string { return "2" }),
		Attribute("win:a", func() string { return "1" }),
		Element("win:child", func() Node { return &dummyChild{first: "F", second: "S"} }),
		Element("win:absent", func() Node { return nil }),
		Attribute("adtcore:empty", func() string { return "" }),
		Placeholder("win:always"),
	}}

	got, err := Marshal(root)
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="UTF-8"?>
<win:dummies xmlns:win="http://www.example.com/never/lose" xmlns:adtcore="http://www.sap.com/adt/core" win:b="2" win:a="1">
<win:child win:second="S" win:first="F"/>
<win:always/>
</win:dummies>`
	assert.Equal(t, want, got)
}

func TestMarshalInheritedMembersFirst(t *testing.T) {
	got, err := Marshal(&dummyDerived{})
	require.NoError(t, err)

	assert.Contains(t, got, `win:zeta="base-z" win:alpha="base-a" win:beta="derived-b"`)
}

func TestMarshalDeterministic(t *testing.T) {
	pkg := NewPackage(nil, "$TEST", NewCoreData("", "description", "EN", "EN", "NPL", "FILAK", ""))
	pkg.SetSoftwareComponent("LOCAL")

	first, err := Marshal(pkg)
	require.NoError(t, err)
	second, err := Marshal(pkg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMarshalEscapesValues(t *testing.T) {
	root := &dummyRoot{members: []Member{
		Attribute("adtcore:description", func() string { return `a "quoted" <b> & c` }),
	}}

	got, err := Marshal(root)
	require.NoError(t, err)
	assert.Contains(t, got, `adtcore:description="a &#34;quoted&#34; &lt;b&gt; &amp; c"`)
}

func TestMarshalSerializationError(t *testing.T) {
	cause := errors.New("no value")

	tests := []struct {
		name   string
		member Member
	}{
		{
			name: "attribute",
			member: Member{
				Kind: AttributeMember,
				Name: "win:broken",
				Text: func() (string, error) { return "", cause },
			},
		},
		{
			name: "element",
			member: Member{
				Kind: ElementMember,
				Name: "win:broken",
				Node: func() (Node, error) { return nil, cause },
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(&dummyRoot{members: []Member{tt.member}})

			var serr *SerializationError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, "win:broken", serr.Member)
			assert.ErrorIs(t, err, cause)
		})
	}
}

func TestMarshalNestedSerializationError(t *testing.T) {
	cause := errors.New("broken child")
	child := &dummyRoot{members: []Member{{
		Kind: AttributeMember,
		Name: "win:inner",
		Text: func() (string, error) { return "", cause },
	}}}

	_, err := Marshal(&dummyRoot{members: []Member{
		Element("win:outer", func() Node { return child }),
	}})

	var serr *SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "win:inner", serr.Member)
}
