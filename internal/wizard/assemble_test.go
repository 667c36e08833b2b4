package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func libraryEntry(t *testing.T, libraries *Dict, name string) *Dict {
	t.Helper()
	inner, ok := libraries.Get("libraries")
	require.True(t, ok)
	entries := inner.(*Dict)
	v, ok := entries.Get(name)
	require.True(t, ok, "library %q missing", name)
	return v.(*Dict)
}

func TestAssembleLibrariesCollectionsOnly(t *testing.T) {
	result := AssembleLibraries(map[string]interface{}{
		"mov-library_Movies-library":            true,
		"mov-library_Movies-collection_actors":  true,
		"mov-library_Movies-collection_network": false,
	})

	entry := libraryEntry(t, result, "Movies")
	assert.Equal(t, []string{"template_variables", "collection_files"}, entry.Keys())

	files, _ := entry.Get("collection_files")
	list := files.([]interface{})
	require.Len(t, list, 1)
	name, _ := list[0].(*Dict).Get("default")
	assert.Equal(t, "actors", name)
}

func TestAssembleLibrariesEntryOrdering(t *testing.T) {
	result := AssembleLibraries(map[string]interface{}{
		"mov-library_Movies-library":                   true,
		"mov-library_Movies-collection_actors":         true,
		"mov-library_Movies-overlay_resolution":        true,
		"mov-library_Movies-attribute_assets_for_all":  true,
		"mov-library_Movies-top_level_remove_overlays": "on",
		"mov-library_Movies-top_level_reset_overlays":  "plex",
	})

	entry := libraryEntry(t, result, "Movies")
	assert.Equal(t, []string{
		"remove_overlays",
		"reset_overlays",
		"template_variables",
		"operations",
		"collection_files",
		"overlay_files",
	}, entry.Keys())

	remove, _ := entry.Get("remove_overlays")
	assert.Equal(t, true, remove)
	reset, _ := entry.Get("reset_overlays")
	assert.Equal(t, "plex", reset)
}

func TestAssembleLibrariesOmitsUnselectedAndEmpty(t *testing.T) {
	result := AssembleLibraries(map[string]interface{}{
		// Selected but no populated facets.
		"mov-library_Empty-library": true,
		// Populated but not selected.
		"mov-library_Skipped-collection_actors": true,
		// Populated and selected.
		"mov-library_Movies-library":           true,
		"mov-library_Movies-collection_actors": true,
	})

	inner, _ := result.Get("libraries")
	entries := inner.(*Dict)
	assert.Equal(t, []string{"Movies"}, entries.Keys())
}

func TestAssembleLibrariesMoviesBeforeShows(t *testing.T) {
	result := AssembleLibraries(map[string]interface{}{
		"sho-library_Anime-library":             true,
		"sho-library_Anime-collection_basic":    true,
		"mov-library_ZMovies-library":           true,
		"mov-library_ZMovies-collection_actors": true,
		"mov-library_AMovies-library":           true,
		"mov-library_AMovies-collection_actors": true,
	})

	inner, _ := result.Get("libraries")
	entries := inner.(*Dict)
	assert.Equal(t, []string{"AMovies", "ZMovies", "Anime"}, entries.Keys())
}

func TestAssembleLibrariesTemplateVariables(t *testing.T) {
	result := AssembleLibraries(map[string]interface{}{
		"mov-library_Movies-library":                            true,
		"mov-library_Movies-collection_actors":                  true,
		"mov-library_Movies-template_variables[sep_style]":      "purple",
		"mov-library_Movies-template_variables[use_separators]": "purple",
	})

	entry := libraryEntry(t, result, "Movies")
	v, ok := entry.Get("template_variables")
	require.True(t, ok)
	tv := v.(*Dict)

	use, _ := tv.Get("use_separator")
	assert.Equal(t, true, use)
	style, _ := tv.Get("sep_style")
	assert.Equal(t, "purple", style)
}

func TestAssembleLibrariesTypeTemplateVariablesFallback(t *testing.T) {
	result := AssembleLibraries(map[string]interface{}{
		"mov-library_Movies-library":           true,
		"mov-library_Movies-collection_actors": true,
		"mov-template_variables": map[string]interface{}{
			"use_separators": "red",
			"sep_style":      "red",
		},
	})

	entry := libraryEntry(t, result, "Movies")
	v, _ := entry.Get("template_variables")
	tv := v.(*Dict)

	use, _ := tv.Get("use_separator")
	assert.Equal(t, true, use)
	style, _ := tv.Get("sep_style")
	assert.Equal(t, "red", style)
}

func TestAssembleLibrariesNoSeparators(t *testing.T) {
	result := AssembleLibraries(map[string]interface{}{
		"mov-library_Movies-library":           true,
		"mov-library_Movies-collection_actors": true,
	})

	entry := libraryEntry(t, result, "Movies")
	v, _ := entry.Get("template_variables")
	tv := v.(*Dict)

	use, _ := tv.Get("use_separator")
	assert.Equal(t, false, use)
	_, hasStyle := tv.Get("sep_style")
	assert.False(t, hasStyle)
}

func TestAssembleLibrariesOverlayFiles(t *testing.T) {
	result := AssembleLibraries(map[string]interface{}{
		"sho-library_TV-library":                true,
		"sho-library_TV-overlay_resolution":     true,
		"sho-library_TV-overlay_ribbon":         false,
		"sho-library_TV-overlay_content_rating": "de",
	})

	entry := libraryEntry(t, result, "TV")
	files, _ := entry.Get("overlay_files")
	list := files.([]interface{})
	require.Len(t, list, 2)

	first, _ := list[0].(*Dict).Get("default")
	assert.Equal(t, "content_rating_de", first)
	second, _ := list[1].(*Dict).Get("default")
	assert.Equal(t, "resolution", second)
}

func TestAssembleLibrariesCommonsenseOverlay(t *testing.T) {
	result := AssembleLibraries(map[string]interface{}{
		"mov-library_Movies-library":                true,
		"mov-library_Movies-overlay_content_rating": "CommonSense",
	})

	entry := libraryEntry(t, result, "Movies")
	files, _ := entry.Get("overlay_files")
	list := files.([]interface{})
	require.Len(t, list, 1)
	name, _ := list[0].(*Dict).Get("default")
	assert.Equal(t, "commonsense", name)
}

func TestAssembleLibrariesOperations(t *testing.T) {
	result := AssembleLibraries(map[string]interface{}{
		"mov-library_Movies-library":                            true,
		"mov-library_Movies-attribute_mass_genre_update_order":  `["tmdb"]`,
		"mov-library_Movies-attribute_mass_genre_update_custom": `["Noir"]`,
		"mov-library_Movies-attribute_mass_genre_update":        "lock",
		"mov-library_Movies-attribute_assets_for_all":           true,
	})

	entry := libraryEntry(t, result, "Movies")
	v, ok := entry.Get("operations")
	require.True(t, ok)
	ops := v.(*Dict)

	assert.Equal(t, []string{"assets_for_all", "mass_genre_update"}, ops.Keys())
	genre, _ := ops.Get("mass_genre_update")
	assert.Equal(t, []interface{}{"tmdb", "Noir", "lock"}, genre)
}

func TestAssembleLibrariesDeterministic(t *testing.T) {
	payload := map[string]interface{}{
		"mov-library_Movies-library":            true,
		"mov-library_Movies-collection_actors":  true,
		"mov-library_Movies-collection_network": true,
		"mov-library_Movies-overlay_resolution": true,
		"sho-library_TV-library":                true,
		"sho-library_TV-collection_basic":       true,
	}

	first := AssembleLibraries(payload)
	for i := 0; i < 10; i++ {
		again := AssembleLibraries(payload)
		assert.Equal(t, dictYAML(t, first), dictYAML(t, again))
	}
}
