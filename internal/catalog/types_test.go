package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemDecodesLenientFields(t *testing.T) {
	raw := `{
		"id_kp": 42,
		"id_imdb": null,
		"name": "  Heat  ",
		"year": 0,
		"rating_kp": 7.9,
		"rating_imdb": "8.3",
		"genre": "Drama, Crime / Thriller",
		"actors": ["Al Pacino", " ", 12, null],
		"country": {"unexpected": true},
		"poster": false,
		"translation_iframe": {
			"10": {"name": "Studio", "quality": "HD", "iframe": "https://p.example/10"},
			"2": {"name": "Dub", "quality": "SD", "iframe": "https://p.example/2"},
			"broken": "not an object"
		}
	}`

	var item Item
	require.NoError(t, json.Unmarshal([]byte(raw), &item))

	assert.Equal(t, "42", item.KinopoiskID.String())
	assert.False(t, item.IMDbID.Present())
	assert.Equal(t, "Heat", item.Title())
	assert.False(t, item.Year.Present())
	assert.Equal(t, "KP 7.9 / IMDb 8.3", item.RatingLabel())
	assert.Equal(t, FlexList{"Drama", "Crime", "Thriller"}, item.Genre)
	assert.Equal(t, FlexList{"Al Pacino", "12"}, item.Actors)
	assert.Empty(t, item.Country)
	assert.False(t, item.Poster.Present())

	require.Len(t, item.Translations, 2)
	assert.Equal(t, "2", item.Translations[0].ID)
	assert.Equal(t, "Dub", item.Translations[0].Name)
	assert.Equal(t, "10", item.Translations[1].ID)
	assert.Equal(t, "https://p.example/10", item.Translations[1].IFrame)
}

func TestTranslationSetAcceptsList(t *testing.T) {
	var set TranslationSet
	require.NoError(t, json.Unmarshal([]byte(`[{"name":"A"},null,{"name":"C"}]`), &set))
	require.Len(t, set, 2)
	assert.Equal(t, "0", set[0].ID)
	assert.Equal(t, "2", set[1].ID)
}

func TestIdentityPriority(t *testing.T) {
	cases := []struct {
		name      string
		item      Item
		wantParam string
		wantValue string
		wantOK    bool
	}{
		{"kinopoisk wins", Item{KinopoiskID: "42", IMDbID: "tt1", Name: "X"}, ParamKinopoisk, "42", true},
		{"imdb before world art", Item{IMDbID: "tt1", WorldArtID: "9"}, ParamIMDb, "tt1", true},
		{"world art before name", Item{WorldArtID: "9", Name: "X"}, ParamWorldArt, "9", true},
		{"name last", Item{Name: " X "}, ParamName, "X", true},
		{"blank ids ignored", Item{KinopoiskID: "  ", Name: "X"}, ParamName, "X", true},
		{"nothing", Item{}, "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			param, value, ok := tc.item.Identity()
			assert.Equal(t, tc.wantParam, param)
			assert.Equal(t, tc.wantValue, value)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
	assert.Equal(t, "unknown", Item{}.Key())
}

func TestSummaryFallsBackToTagline(t *testing.T) {
	assert.Equal(t, "Long story", Item{Description: "Long story", Tagline: "Short"}.Summary())
	assert.Equal(t, "Short", Item{Description: " ", Tagline: "Short"}.Summary())
	assert.Equal(t, "", Item{}.Summary())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList(" a ,b/ c "))
	assert.Empty(t, SplitList(" , / "))
}
