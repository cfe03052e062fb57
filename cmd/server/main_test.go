package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/concert-ticketing/internal/checkout"
	"github.com/iliyamo/concert-ticketing/internal/config"
	"github.com/iliyamo/concert-ticketing/internal/repository"
	"github.com/iliyamo/concert-ticketing/internal/selection"
	"github.com/iliyamo/concert-ticketing/internal/session"
)

func TestNewServerWithoutRedis(t *testing.T) {
	cfg := config.Config{
		Env:              "test",
		Port:             "0",
		CatalogSource:    config.CatalogStatic,
		OrderTokenSecret: "secret",
		OrderTokenTTL:    time.Minute,
	}
	e := newServer(cfg, repository.NewStaticConcertRepo(), nil,
		session.NewStore[*selection.Selection]("selection", time.Minute),
		session.NewStore[*checkout.Machine]("checkout", time.Minute),
		nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/concerts/3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "3", body["id"])

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/checkouts", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOpenCatalogStatic(t *testing.T) {
	catalog, db := openCatalog(context.Background(), config.Config{CatalogSource: config.CatalogStatic})
	assert.Nil(t, db)
	all, err := catalog.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 6)
}
