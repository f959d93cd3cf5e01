// ABOUTME: Response envelope shared by every content API endpoint

package domain

import "encoding/json"

// EnvelopeStatusOK is the only envelope status that indicates success.
const EnvelopeStatusOK = 1

// Envelope is the uniform wrapper around content API responses.
type Envelope struct {
	Status int             `json:"status"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
}

// OK reports whether the envelope indicates a successful response with data.
func (e *Envelope) OK() bool {
	return e.Status == EnvelopeStatusOK
}
