package adt

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	lockResultMarker = "dataname=com.sap.adt.lock.Result"
	statefulHeader   = "X-sap-adt-sessiontype"
)

var (
	lockAccept = strings.Join([]string{
		"application/vnd.sap.as+xml;charset=UTF-8;dataname=com.sap.adt.lock.result;q=0.8",
		"application/vnd.sap.as+xml;charset=UTF-8;dataname=com.sap.adt.lock.result2;q=0.9",
	}, ", ")

	lockHandlePattern = regexp.MustCompile(`(?s)<LOCK_HANDLE>(.*?)</LOCK_HANDLE>`)
)

func modLog() *log.Logger {
	return log.Default().WithPrefix("adt")
}

// Object implements the protocol shared by all repository object kinds.
// Kinds embed it and extend XMLMembers with their own members.
type Object struct {
	conn       Connector
	name       string
	objtype    *ObjectType
	meta       *CoreData
	lockHandle string
	locked     bool
}

func newObject(conn Connector, name string, objtype *ObjectType, meta *CoreData) Object {
	if meta == nil {
		meta = &CoreData{}
	}
	if meta.PackageReference == nil {
		meta.PackageReference = &Reference{}
	}

	return Object{
		conn:    conn,
		name:    name,
		objtype: objtype,
		meta:    meta,
	}
}

func (o *Object) Name() string                 { return o.name }
func (o *Object) Connection() Connector        { return o.conn }
func (o *Object) ObjectType() *ObjectType      { return o.objtype }
func (o *Object) CoreData() *CoreData          { return o.meta }
func (o *Object) Package() string              { return o.meta.Package }
func (o *Object) Description() string          { return o.meta.Description }
func (o *Object) SetDescription(d string)      { o.meta.Description = d }
func (o *Object) IsLocked() bool               { return o.locked }
func (o *Object) LockHandle() string           { return o.lockHandle }
func (o *Object) PackageReference() *Reference { return o.meta.PackageReference }

// URI is the object URL fragment relative to sap/bc/adt.
func (o *Object) URI() string {
	return o.objtype.BasePath() + "/" + strings.ToLower(o.name)
}

func (o *Object) XMLMembers() []Member {
	return []Member{
		Attribute("adtcore:description", func() string { return o.meta.Description }),
		Attribute("adtcore:language", func() string { return o.meta.Language }),
		Attribute("adtcore:name", func() string { return o.name }),
		Attribute("adtcore:masterLanguage", func() string { return o.meta.MasterLanguage }),
		Attribute("adtcore:masterSystem", func() string { return o.meta.MasterSystem }),
		Attribute("adtcore:responsible", func() string { return o.meta.Responsible }),
		Element("adtcore:packageRef", func() Node {
			if o.meta.PackageReference == nil {
				return nil
			}
			return o.meta.PackageReference
		}),
	}
}

// Text downloads the plain text representation of the object.
func (o *Object) Text(ctx context.Context) (string, error) {
	suffix, err := o.objtype.URIForType("text/plain")
	if err != nil {
		return "", err
	}
	return o.conn.GetText(ctx, o.URI()+suffix)
}

// create posts the serialized root, which is the kind embedding o.
func (o *Object) create(ctx context.Context, root Root, corrNr string) (*Response, error) {
	body, err := Marshal(root)
	if err != nil {
		return nil, err
	}

	params, err := encodeParams(createParams{CorrNr: corrNr})
	if err != nil {
		return nil, fmt.Errorf("failed to encode create parameters: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", o.objtype.MimeType())

	return o.conn.Execute(ctx, Request{
		Method: http.MethodPost,
		URI:    o.objtype.BasePath(),
		Params: params,
		Header: header,
		Body:   body,
	})
}

// Lock acquires a MODIFY lock and keeps the returned lock handle.
func (o *Object) Lock(ctx context.Context) error {
	if o.locked {
		return fmt.Errorf("object %s: %w", o.URI(), ErrAlreadyLocked)
	}

	params, err := encodeParams(lockParams{Action: "LOCK", AccessMode: LockAccessModeModify})
	if err != nil {
		return fmt.Errorf("failed to encode lock parameters: %w", err)
	}

	header := http.Header{}
	header.Set(statefulHeader, "stateful")
	header.Set("Accept", lockAccept)

	resp, err := o.conn.Execute(ctx, Request{
		Method: http.MethodPost,
		URI:    o.URI(),
		Params: params,
		Header: header,
	})
	if err != nil {
		return err
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), lockResultMarker) {
		return fmt.Errorf("object %s: %w\n%s", o.URI(), ErrLockResult, resp.Text)
	}

	modLog().Debug(resp.Text)

	match := lockHandlePattern.FindStringSubmatch(resp.Text)
	if match == nil {
		return fmt.Errorf("object %s: %w\n%s", o.URI(), ErrLockHandle, resp.Text)
	}

	o.lockHandle = match[1]
	o.locked = true
	modLog().Debug("LockHandle", "handle", o.lockHandle)
	return nil
}

// Unlock releases the lock handle acquired by Lock.
func (o *Object) Unlock(ctx context.Context) error {
	if !o.locked {
		return fmt.Errorf("object %s: %w", o.URI(), ErrNotLocked)
	}

	params, err := encodeParams(unlockParams{Action: "UNLOCK", LockHandle: o.lockHandle})
	if err != nil {
		return fmt.Errorf("failed to encode unlock parameters: %w", err)
	}

	header := http.Header{}
	header.Set(statefulHeader, "stateful")

	if _, err := o.conn.Execute(ctx, Request{
		Method: http.MethodPost,
		URI:    o.URI(),
		Params: params,
		Header: header,
	}); err != nil {
		return err
	}

	o.lockHandle = ""
	o.locked = false
	return nil
}

// Activate activates the object. The server reports activation problems in
// the response body, so any non-empty body is an error.
func (o *Object) Activate(ctx context.Context) error {
	var uri, name strings.Builder
	_ = xml.EscapeText(&uri, []byte("/"+o.conn.URI()+"/"+o.URI()))
	_ = xml.EscapeText(&name, []byte(strings.ToUpper(o.name)))

	body := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<adtcore:objectReferences xmlns:adtcore="http://www.sap.com/adt/core">
<adtcore:objectReference adtcore:uri="%s" adtcore:name="%s"/>
</adtcore:objectReferences>`, uri.String(), name.String())

	params, err := encodeParams(activationParams{Method: "activate", PreauditRequested: true})
	if err != nil {
		return fmt.Errorf("failed to encode activation parameters: %w", err)
	}

	header := http.Header{}
	header.Set("Accept", "application/xml")
	header.Set("Content-Type", "application/xml")

	resp, err := o.conn.Execute(ctx, Request{
		Method: http.MethodPost,
		URI:    "activation",
		Params: params,
		Header: header,
		Body:   body,
	})
	if err != nil {
		return err
	}

	if resp.Text != "" {
		return fmt.Errorf("%w %s: %s", ErrActivation, o.name, resp.Text)
	}
	return nil
}

// changeText uploads content as the main source using the current lock
// handle. The caller is responsible for holding the lock.
func (o *Object) changeText(ctx context.Context, content string, header http.Header) error {
	suffix, err := o.objtype.URIForType("text/plain")
	if err != nil {
		return err
	}

	params, err := encodeParams(lockHandleParams{LockHandle: o.lockHandle})
	if err != nil {
		return fmt.Errorf("failed to encode lock handle: %w", err)
	}

	header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := o.conn.Execute(ctx, Request{
		Method: http.MethodPut,
		URI:    o.URI() + suffix,
		Params: params,
		Header: header,
		Body:   content,
	})
	if err != nil {
		return err
	}

	modLog().Debug("Change text response", "status", resp.StatusCode)
	return nil
}
