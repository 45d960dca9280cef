package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerpos/grocer/internal/shared"
)

func TestRespondErrorMapsKinds(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", shared.NotFound("Product not found"), http.StatusNotFound, `{"error":"Product not found"}`},
		{"conflict", fmt.Errorf("products: create: %w", shared.Conflict("Product with this barcode already exists")), http.StatusBadRequest, `{"error":"Product with this barcode already exists"}`},
		{"stock", shared.InsufficientStock("Insufficient quantity in stock"), http.StatusBadRequest, `{"error":"Insufficient quantity in stock"}`},
		{"validation", shared.Validation("name is required"), http.StatusBadRequest, `{"error":"name is required"}`},
		{"generic", errors.New("disk I/O error"), http.StatusInternalServerError, `{"error":"disk I/O error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondError(rr, tc.err)
			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.body, rr.Body.String())
		})
	}
}

type sampleInput struct {
	Name     string `json:"name" validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,gt=0"`
}

func TestDecodeJSONValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Milk","quantity":2}`))
	var in sampleInput
	require.NoError(t, DecodeJSON(req, &in))
	require.Equal(t, "Milk", in.Name)
	require.Equal(t, 2, *in.Quantity)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":0}`))
	err := DecodeJSON(req, &sampleInput{})
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Equal(t, "name is required; quantity must be greater than 0", err.Error())
}

func TestDecodeJSONRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	err := DecodeJSON(req, &sampleInput{})
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Contains(t, err.Error(), "invalid request body")
}
