package textgen_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrune/botcore/internal/clients/textgen"
	"github.com/openrune/botcore/internal/config"
	"github.com/openrune/botcore/internal/errors"
)

func testConfig(endpoint string) config.TextGenConfig {
	cfg := config.Default().TextGen
	cfg.Endpoint = endpoint
	return cfg
}

func TestGenerate(t *testing.T) {
	var got textgen.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(textgen.Response{Text: "hello there"})
	}))
	defer srv.Close()

	client, err := textgen.NewHTTPClient(testConfig(srv.URL))
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), &textgen.Request{
		PromptContext: "player greeted us",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", resp.Text)

	assert.Equal(t, "player greeted us", got.PromptContext)
	assert.Equal(t, 80, got.MaxTokens, "defaults applied from config")
	assert.InDelta(t, 0.8, got.Temperature, 0.001)
}

func TestGenerateEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(textgen.Response{})
	}))
	defer srv.Close()

	client, err := textgen.NewHTTPClient(testConfig(srv.URL))
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), &textgen.Request{PromptContext: "hi"})
	require.NoError(t, err, "empty text is a valid answer, not an error")
	assert.Empty(t, resp.Text)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := textgen.NewHTTPClient(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), &textgen.Request{PromptContext: "hi"})
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestGenerateUnreachable(t *testing.T) {
	client, err := textgen.NewHTTPClient(testConfig("http://127.0.0.1:1"))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), &textgen.Request{PromptContext: "hi"})
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestNewHTTPClientValidation(t *testing.T) {
	_, err := textgen.NewHTTPClient(config.TextGenConfig{TimeoutMS: 100})
	assert.Error(t, err, "endpoint required")

	cfg := testConfig("http://localhost:9999")
	cfg.TimeoutMS = 0
	_, err = textgen.NewHTTPClient(cfg)
	assert.Error(t, err, "timeout required")
}

func TestGenerateNilRequest(t *testing.T) {
	client, err := textgen.NewHTTPClient(testConfig("http://localhost:9999"))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), nil)
	assert.True(t, errors.IsInvalidArgument(err))
}
