package adt

import (
	"context"
	"fmt"
	"net/http"
)

// fakeConnection records requests and replays canned responses.
type fakeConnection struct {
	requests  []Request
	responses []*Response
}

func newFakeConnection(responses ...*Response) *fakeConnection {
	return &fakeConnection{responses: responses}
}

func (f *fakeConnection) URI() string {
	return adtURI
}

func (f *fakeConnection) Execute(ctx context.Context, r Request) (*Response, error) {
	f.requests = append(f.requests, r)

	if len(f.responses) == 0 {
		return &Response{StatusCode: http.StatusOK, Header: http.Header{}}, nil
	}

	resp := f.responses[0]
	f.responses = f.responses[1:]
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &HTTPRequestError{Method: r.Method, URL: r.URI, StatusCode: resp.StatusCode, Body: resp.Text}
	}
	return resp, nil
}

func (f *fakeConnection) GetText(ctx context.Context, uri string) (string, error) {
	header := http.Header{}
	header.Set("Accept", "text/plain")
	resp, err := f.Execute(ctx, Request{Method: http.MethodGet, URI: uri, Header: header})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func lockResponse(handle string) *Response {
	header := http.Header{}
	header.Set("Content-Type", "application/vnd.sap.as+xml; charset=utf-8; dataname=com.sap.adt.lock.Result")
	return &Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Text: fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?><asx:abap xmlns:asx="http://www.sap.com/abapxml" version="1.0"><asx:values><DATA><LOCK_HANDLE>%s</LOCK_HANDLE><CORRNR/><CORRUSER/><CORRTEXT/><IS_LOCAL>X</IS_LOCAL><IS_LINK_UP/><MODIFICATION_SUPPORT>NoModification</MODIFICATION_SUPPORT></DATA></asx:values></asx:abap>`, handle),
	}
}

func textResponse(text string) *Response {
	return &Response{StatusCode: http.StatusOK, Header: http.Header{}, Text: text}
}

var _ Connector = (*fakeConnection)(nil)
