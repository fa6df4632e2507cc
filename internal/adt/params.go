package adt

import (
	"net/url"

	"github.com/google/go-querystring/query"
)

const LockAccessModeModify = "MODIFY"

type lockParams struct {
	Action     string `url:"_action"`
	AccessMode string `url:"accessMode"`
}

type unlockParams struct {
	Action     string `url:"_action"`
	LockHandle string `url:"lockHandle"`
}

type lockHandleParams struct {
	LockHandle string `url:"lockHandle"`
}

type activationParams struct {
	Method            string `url:"method"`
	PreauditRequested bool   `url:"preauditRequested"`
}

type createParams struct {
	CorrNr string `url:"corrnr,omitempty"`
}

func encodeParams(v any) (url.Values, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}
