package serve

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-parser/internal/config"
	"fjacquet/statement-parser/internal/container"
	"fjacquet/statement-parser/internal/logging"
)

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Server.BodyLimitMB = 4
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestNewServer_UsesContainer(t *testing.T) {
	s := NewServer(newContainer(t))

	assert.Equal(t, 4<<20, s.App().Config().BodyLimit)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewServer_ProcessRoute(t *testing.T) {
	s := NewServer(newContainer(t))

	req := httptest.NewRequest(http.MethodPost, "/api/process",
		strings.NewReader(`[{"date":"2024-01-01","description":"Pharmacy","amount":-20}]`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Transactions []struct {
			Category string `json:"category"`
		} `json:"transactions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Transactions, 1)
	assert.Equal(t, "HEALTHCARE", body.Transactions[0].Category)
}

func TestCommandFlags(t *testing.T) {
	f := Cmd.Flags().Lookup("address")
	require.NotNil(t, f)
	assert.Equal(t, "a", f.Shorthand)
}
