// Package rpc implements the newline-delimited JSON protocol spoken between
// the host and the analysis worker: one envelope per line, requests carrying
// {id, method, params} and responses {id, result} or {id, error}.
package rpc

import (
	"bytes"
	"encoding/json"
)

// ProtocolVersion is the static version string reported by initialize.
const ProtocolVersion = "0.1"

// Request is a single request envelope. The id is an opaque value chosen by
// the caller and echoed back verbatim.
type Request struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// Response is a single response envelope. Exactly one of Result and Error is
// set.
type Response struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ErrorBody      `json:"error,omitempty"`
}

// ErrorBody carries a response error.
type ErrorBody struct {
	Message string `json:"message"`
}

var nullValue = json.RawMessage("null")

// DecodeRequest parses one request line. Missing optional fields default
// rather than fail: id to null, params to an empty object.
func DecodeRequest(line []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(bytes.TrimSpace(line), &req); err != nil {
		return Request{}, &ParseError{Line: string(bytes.TrimSpace(line)), Cause: err}
	}
	if len(req.ID) == 0 {
		req.ID = nullValue
	}
	if len(req.Params) == 0 {
		req.Params = json.RawMessage("{}")
	}
	return req, nil
}

// EncodeResponse renders a response as a single newline-terminated line.
func EncodeResponse(resp Response) ([]byte, error) {
	if len(resp.ID) == 0 {
		resp.ID = nullValue
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// EncodeRequest renders a request as a single newline-terminated line.
func EncodeRequest(req Request) ([]byte, error) {
	if len(req.ID) == 0 {
		req.ID = nullValue
	}
	if len(req.Params) == 0 {
		req.Params = json.RawMessage("{}")
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DecodeResponse parses one response line.
func DecodeResponse(line []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(bytes.TrimSpace(line), &resp); err != nil {
		return Response{}, &ParseError{Line: string(bytes.TrimSpace(line)), Cause: err}
	}
	if len(resp.ID) == 0 {
		resp.ID = nullValue
	}
	return resp, nil
}

// errorResponse builds an error envelope echoing the given id.
func errorResponse(id json.RawMessage, message string) Response {
	return Response{ID: id, Error: &ErrorBody{Message: message}}
}

// resultResponse builds a success envelope, marshaling the result value.
func resultResponse(id json.RawMessage, result any) (Response, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return Response{}, err
	}
	return Response{ID: id, Result: data}, nil
}
