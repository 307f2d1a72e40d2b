package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/bind"
)

type adjustInput struct {
	Quantity int    `json:"quantityToUpdate" validate:"required,gt=0"`
	Status   string `json:"status"           validate:"nullable,in=increase,decrease"`
}

func TestJSONDecodesAndValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"quantityToUpdate":2,"status":"increase"}`))
	var in adjustInput

	errs, err := bind.JSON(req, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, 2, in.Quantity)
}

func TestJSONReportsRuleFailures(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"quantityToUpdate":0,"status":"sideways"}`))
	var in adjustInput

	errs, err := bind.JSON(req, &in)
	require.NoError(t, err)
	assert.Contains(t, errs, "quantityToUpdate")
	assert.Contains(t, errs, "status")
}

func TestJSONEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	_, err := bind.JSON(req, &adjustInput{})
	assert.ErrorIs(t, err, bind.ErrEmptyBody)
}

func TestJSONTooLarge(t *testing.T) {
	config.Set("MAX_BODY_BYTES", "16")
	defer config.Set("MAX_BODY_BYTES", "")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"`+strings.Repeat("x", 64)+`"}`))
	_, err := bind.JSON(req, &adjustInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}
