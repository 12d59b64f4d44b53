package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbytex91/debridcfg/internal/catalog"
	"github.com/dbytex91/debridcfg/internal/userconfig"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestGeneratePrint(t *testing.T) {
	out, err := execute(t, newGenerateCmd(),
		"--page", "https://addon.example.com/configure",
		"--debrid-key", "k",
		"--tmdb-key", "t",
		"--max-size", "12",
		"--exclude", "cam,4K",
		"--catalogs", "popular_series,latest_movies",
	)
	require.NoError(t, err)

	link := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(link, "https://addon.example.com/ey"))

	token := strings.TrimSuffix(strings.TrimPrefix(link, "https://addon.example.com/"), "/manifest.json")
	c, err := userconfig.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "https://addon.example.com", c.AddonHost)
	assert.Equal(t, userconfig.ServiceRealDebrid, c.Service)
	assert.Equal(t, []userconfig.Quality{userconfig.Quality4K, userconfig.QualityCam}, c.SelectedQualityExclusion)
	assert.Equal(t, []string{"popular_series", "latest_movies"}, c.SelectedCatalogs)
}

func TestGenerateFromExistingURL(t *testing.T) {
	src := &userconfig.Configuration{
		AddonHost: "https://addon.example.com",
		Service:   userconfig.ServiceAllDebrid,
		DebridKey: "old",
		TMDBAPI:   "t",
		MaxSize:   "8",
	}
	src.Normalize()
	token, err := userconfig.Encode(src)
	require.NoError(t, err)

	out, err := execute(t, newGenerateCmd(),
		"--page", "https://addon.example.com/configure",
		"--from", "https://addon.example.com/"+token+"/configure",
		"--debrid-key", "new",
	)
	require.NoError(t, err)

	link := strings.TrimSpace(out)
	token = strings.TrimSuffix(strings.TrimPrefix(link, "https://addon.example.com/"), "/manifest.json")
	c, err := userconfig.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "new", c.DebridKey)
	assert.Equal(t, userconfig.ServiceAllDebrid, c.Service)
	assert.Equal(t, "8", c.MaxSize)
}

func TestGenerateRejectsUnknownQuality(t *testing.T) {
	_, err := execute(t, newGenerateCmd(), "--exclude", "1080")
	require.ErrorIs(t, err, userconfig.ErrUnknownQuality)
	assert.Contains(t, err.Error(), "1080p")
}

func TestGenerateRejectsUnknownCatalog(t *testing.T) {
	_, err := execute(t, newGenerateCmd(), "--catalogs", "nope")
	assert.ErrorIs(t, err, catalog.ErrUnknownEntry)
}

func TestGenerateRequiresFields(t *testing.T) {
	out, err := execute(t, newGenerateCmd(), "--debrid-key", "k")
	assert.ErrorIs(t, err, userconfig.ErrRequiredFields)
	assert.Empty(t, out)
}

func TestDecode(t *testing.T) {
	src := &userconfig.Configuration{DebridKey: "k", TMDBAPI: "t", MaxSize: "1"}
	src.Normalize()
	token, err := userconfig.Encode(src)
	require.NoError(t, err)

	out, err := execute(t, newDecodeCmd(), "http://localhost:7000/"+token+"/configure")
	require.NoError(t, err)
	assert.Contains(t, out, `"debridKey": "k"`)

	_, err = execute(t, newDecodeCmd(), "http://localhost:7000/configure")
	assert.Error(t, err)
}
