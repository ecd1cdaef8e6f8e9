package rpc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest_FullEnvelope(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"id":"7","method":"call_tool","params":{"name":"reload_page"}}`))
	require.NoError(t, err)
	assert.Equal(t, `"7"`, string(req.ID))
	assert.Equal(t, "call_tool", req.Method)
	assert.JSONEq(t, `{"name":"reload_page"}`, string(req.Params))
}

func TestDecodeRequest_MissingOptionalFields(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"method":"initialize"}`))
	require.NoError(t, err)
	assert.Equal(t, "null", string(req.ID))
	assert.Equal(t, "{}", string(req.Params))
}

func TestDecodeRequest_NumericID(t *testing.T) {
	// The id is opaque: whatever JSON value the caller chose is echoed back.
	req, err := DecodeRequest([]byte(`{"id":42,"method":"initialize"}`))
	require.NoError(t, err)
	assert.Equal(t, "42", string(req.ID))
}

func TestDecodeRequest_MalformedLine(t *testing.T) {
	_, err := DecodeRequest([]byte(`{not json`))
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, `{not json`, parseErr.Line)
	assert.Contains(t, err.Error(), "invalid json")
}

func TestEncodeResponse_SingleLine(t *testing.T) {
	out, err := EncodeResponse(Response{ID: json.RawMessage(`"1"`), Result: json.RawMessage(`{"ok":true}`)})
	require.NoError(t, err)

	line := string(out)
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Equal(t, 1, strings.Count(line, "\n"))
	assert.JSONEq(t, `{"id":"1","result":{"ok":true}}`, strings.TrimSpace(line))
}

func TestEncodeResponse_NilIDDefaultsToNull(t *testing.T) {
	out, err := EncodeResponse(errorResponse(nil, "invalid json: boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":null,"error":{"message":"invalid json: boom"}}`, strings.TrimSpace(string(out)))
}

func TestEncodeRequest_DefaultsParams(t *testing.T) {
	out, err := EncodeRequest(Request{ID: json.RawMessage(`"1"`), Method: "initialize"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","method":"initialize","params":{}}`, strings.TrimSpace(string(out)))
}

func TestDecodeResponse_ErrorEnvelope(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"id":"3","error":{"message":"unknown tool: nope"}}`))
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "unknown tool: nope", resp.Error.Message)
	assert.Nil(t, resp.Result)
}
