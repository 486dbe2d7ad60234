package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURLOmitsBlankParamsAndAlwaysSetsToken(t *testing.T) {
	blank := "   "
	year := 1995
	raw, err := BuildURL("https://api.example.org/", "secret", Params{
		ParamKinopoisk: "42",
		ParamYear:      &year,
		ParamName:      "",
		ParamIMDb:      nil,
		"note":         &blank,
		"pointer":      (*string)(nil),
		ParamToken:     "override",
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "secret", q.Get(ParamToken))
	assert.Equal(t, "42", q.Get(ParamKinopoisk))
	assert.Equal(t, "1995", q.Get(ParamYear))
	for _, key := range []string{ParamName, ParamIMDb, "note", "pointer"} {
		assert.Falsef(t, q.Has(key), "query has %q", key)
	}
	assert.Len(t, q, 3)
}

func TestBuildURLKeepsBasePath(t *testing.T) {
	raw, err := BuildURL("http://api.example.org/v2/", "t", Params{ParamList: "movie"})
	require.NoError(t, err)
	assert.Equal(t, "http://api.example.org/v2/?list=movie&token=t", raw)
}

func TestBuildURLFormatsEveryNumericKind(t *testing.T) {
	raw, err := BuildURL("https://api.example.org/", "t", Params{
		"i8":  int8(-8),
		"i16": int16(16),
		"i32": int32(1997),
		"u":   uint(7),
		"u8":  uint8(255),
		"u16": uint16(65535),
		"u32": uint32(32),
		"u64": uint64(18446744073709551615),
		"f32": float32(2.5),
		"f64": 7.25,
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	want := map[string]string{
		"i8":  "-8",
		"i16": "16",
		"i32": "1997",
		"u":   "7",
		"u8":  "255",
		"u16": "65535",
		"u32": "32",
		"u64": "18446744073709551615",
		"f32": "2.5",
		"f64": "7.25",
	}
	for key, value := range want {
		assert.Equalf(t, value, q.Get(key), "param %q", key)
	}
}

func TestBuildURLSetsEmptyTokenWhenBlank(t *testing.T) {
	raw, err := BuildURL("https://api.example.org/", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.org/?token=", raw)
}

func TestBuildURLRejectsNonHTTPBase(t *testing.T) {
	for _, base := range []string{"", "ftp://api.example.org/", "api.example.org", "https://"} {
		_, err := BuildURL(base, "t", nil)
		assert.Errorf(t, err, "BuildURL(%q)", base)
	}
}

func TestIsHTTPURL(t *testing.T) {
	assert.True(t, IsHTTPURL("https://player.example/"))
	assert.True(t, IsHTTPURL(" HTTP://player.example "))
	assert.False(t, IsHTTPURL("javascript:alert(1)"))
	assert.False(t, IsHTTPURL("//player.example/"))
	assert.False(t, IsHTTPURL("not a url"))
}
