package validators

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/labstock-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

func newBodyRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSONBody(t *testing.T) {
	var body loginBody
	require.NoError(t, DecodeJSONBody(newBodyRequest(`{"username":"alice","password":"secret1"}`), &body))
	assert.Equal(t, "alice", body.Username)
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var body loginBody
	err := DecodeJSONBody(newBodyRequest(`{"username":"alice","password":"secret1","role":"admin"}`), &body)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "got %v", err)
}

func TestDecodeJSONBodyReportsFieldsByJSONName(t *testing.T) {
	var body loginBody
	err := DecodeJSONBody(newBodyRequest(`{"username":"","password":"123"}`), &body)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, map[string]string{
		"username": "is required",
		"password": "must be at least 6",
	}, typed.Details())
}

func TestTextAcceptsStringsAndNumbers(t *testing.T) {
	var form struct {
		A Text  `json:"a"`
		B Text  `json:"b"`
		C Text  `json:"c"`
		D *Text `json:"d"`
		E *Text `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"50","b":45,"c":null,"e":" x "}`), &form))
	assert.Equal(t, Text("50"), form.A)
	assert.Equal(t, Text("45"), form.B)
	assert.Equal(t, Text(""), form.C)
	assert.Nil(t, form.D.Ptr())
	require.NotNil(t, form.E.Ptr())
	assert.Equal(t, " x ", *form.E.Ptr())

	var bad struct {
		A Text `json:"a"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &bad))
}

func TestQueryText(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?q=%20%20led%20", nil)
	assert.Equal(t, "led", QueryText(req, "q"))
	assert.Equal(t, "", QueryText(req, "missing"))

	long := httptest.NewRequest(http.MethodGet, "/?q="+strings.Repeat("a", 150), nil)
	assert.Len(t, QueryText(long, "q"), maxQueryLength)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := BearerToken(req)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))

	req.Header.Set("Authorization", "Bearer abc.def")
	token, err := BearerToken(req)
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	req.Header.Set("Authorization", "raw-token")
	token, err = BearerToken(req)
	require.NoError(t, err)
	assert.Equal(t, "raw-token", token)
}
