package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"Atex/internal/config"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := CORS("https://atex.example", router)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://atex.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestLoadGases(t *testing.T) {
	table, err := loadGases(context.Background(), &config.Config{GasSource: config.GasSourceEmbedded}, nil)
	require.NoError(t, err)
	assert.Positive(t, table.Len())

	path := filepath.Join(t.TempDir(), "site.csv")
	require.NoError(t, os.WriteFile(path, []byte("isim,grup,LEL\nSite gas,IIB,1.5\n"), 0o600))
	table, err = loadGases(context.Background(), &config.Config{GasSource: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Site gas"}, table.Names())
}

func TestRun_RequiresTokenKey(t *testing.T) {
	err := run(context.Background(), &config.Config{}, nil)
	assert.ErrorContains(t, err, "TOKEN_KEY")
}
