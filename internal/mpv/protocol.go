// Package mpv drives an mpv player over its JSON IPC socket. Requests and
// replies are newline-delimited JSON; mpv interleaves asynchronous event
// lines with replies, so replies are matched by request_id.
package mpv

import "encoding/json"

// Success is the error value mpv reports for a command that worked.
const Success = "success"

// Request is sent from the client to mpv.
type Request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// Response is one line read from mpv. Event is set for asynchronous events
// and empty for command replies.
type Response struct {
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	RequestID int64           `json:"request_id,omitempty"`
	Event     string          `json:"event,omitempty"`
}

// OK reports whether mpv accepted the command.
func (r Response) OK() bool { return r.Error == Success }

// Float decodes Data as a number.
func (r Response) Float() (float64, error) {
	var v float64
	err := json.Unmarshal(r.Data, &v)
	return v, err
}
