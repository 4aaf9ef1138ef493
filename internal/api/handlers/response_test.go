package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]string{"id": "42"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"id":"42"}}`, rec.Body.String())
}

func TestRespondErrors(t *testing.T) {
	tests := []struct {
		name    string
		respond func(w http.ResponseWriter)
		code    int
		message string
	}{
		{"bad request", func(w http.ResponseWriter) { RespondBadRequest(w, "плохо") }, http.StatusBadRequest, "плохо"},
		{"conflict", func(w http.ResponseWriter) { RespondConflict(w, "занято") }, http.StatusConflict, "занято"},
		{"internal", RespondInternalError, http.StatusInternalServerError, msgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.respond(rec)

			var body Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, rec.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Error)
			assert.Nil(t, body.Data)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Status string `json:"status"`
	}

	var p payload
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"CONFIRMED"}`))
	require.NoError(t, DecodeJSON(r, &p))
	assert.Equal(t, "CONFIRMED", p.Status)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"CONFIRMED","extra":1}`))
	assert.Error(t, DecodeJSON(r, &p))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":`))
	assert.Error(t, DecodeJSON(r, &p))
}
