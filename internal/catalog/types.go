package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Item is one catalogue entry as returned by the API. Items are treated as
// values: a detail fetch produces a new Item with the same Key.
type Item struct {
	KinopoiskID Text `json:"id_kp"`
	IMDbID      Text `json:"id_imdb"`
	WorldArtID  Text `json:"id_world_art"`

	Name         Text `json:"name"`
	OriginalName Text `json:"original_name"`
	Year         Text `json:"year"`

	Description Text     `json:"description"`
	Tagline     Text     `json:"tagline"`
	Genre       FlexList `json:"genre"`
	Country     FlexList `json:"country"`
	Actors      FlexList `json:"actors"`
	Directors   FlexList `json:"directors"`
	Producers   FlexList `json:"producers"`

	RatingKP        Text `json:"rating_kp"`
	RatingIMDb      Text `json:"rating_imdb"`
	RatingMPAA      Text `json:"rating_mpaa"`
	AgeRestrictions Text `json:"age_restrictions"`
	Duration        Text `json:"time"`
	Translation     Text `json:"translation"`
	Quality         Text `json:"quality"`

	Poster       Text           `json:"poster"`
	IFrame       Text           `json:"iframe"`
	Translations TranslationSet `json:"translation_iframe"`
}

// Lookup parameter names understood by the catalogue and player endpoints.
const (
	ParamKinopoisk = "kp"
	ParamIMDb      = "imdb"
	ParamWorldArt  = "world_art"
	ParamName      = "name"
	ParamYear      = "year"
	ParamList      = "list"
	ParamToken     = "token"
)

// Identity returns the single lookup parameter that addresses the item, by
// priority id_kp > id_imdb > id_world_art > name. ok is false when the item
// carries no identifier at all.
func (i Item) Identity() (param, value string, ok bool) {
	switch {
	case i.KinopoiskID.Present():
		return ParamKinopoisk, i.KinopoiskID.String(), true
	case i.IMDbID.Present():
		return ParamIMDb, i.IMDbID.String(), true
	case i.WorldArtID.Present():
		return ParamWorldArt, i.WorldArtID.String(), true
	case i.Name.Present():
		return ParamName, i.Name.String(), true
	default:
		return "", "", false
	}
}

// Key returns the identity value used to address the item in the UI.
func (i Item) Key() string {
	if _, value, ok := i.Identity(); ok {
		return value
	}
	return "unknown"
}

// Title returns the display name.
func (i Item) Title() string {
	if i.Name.Present() {
		return i.Name.String()
	}
	return "Untitled"
}

// Summary returns the description, falling back to the tagline.
func (i Item) Summary() string {
	if i.Description.Present() {
		return i.Description.String()
	}
	return i.Tagline.String()
}

// RatingLabel formats the available ratings as "KP 7.1 / IMDb 6.9".
func (i Item) RatingLabel() string {
	var parts []string
	if i.RatingKP.Present() {
		parts = append(parts, "KP "+i.RatingKP.String())
	}
	if i.RatingIMDb.Present() {
		parts = append(parts, "IMDb "+i.RatingIMDb.String())
	}
	return strings.Join(parts, " / ")
}

// Text is a scalar JSON field that the API sends either as a string or as a
// number. null, false, numeric zero and nested values decode to the empty
// value.
type Text string

// String returns the trimmed value.
func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

// Present reports whether the value is non-blank.
func (t Text) Present() bool {
	return t.String() != ""
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case 'n', 'f':
		*t = ""
	case 't':
		*t = "true"
	case '[', '{':
		*t = ""
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		if f, err := n.Float64(); err == nil && f == 0 {
			*t = ""
			return nil
		}
		*t = Text(n.String())
	}
	return nil
}

// FlexList is a list field that the API sends either as a delimited string
// ("Drama, Comedy" or "Drama / Comedy") or as a JSON array.
type FlexList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *FlexList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*l = nil
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = SplitList(s)
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := make(FlexList, 0, len(raw))
		for _, elem := range raw {
			var t Text
			if err := t.UnmarshalJSON(elem); err != nil {
				continue
			}
			if t.Present() {
				out = append(out, t.String())
			}
		}
		*l = out
	}
	return nil
}

// SplitList splits a comma or slash delimited string into trimmed, non-empty parts.
func SplitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == '/' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Translation is one audio-translation track offered for an item.
type Translation struct {
	ID      string
	Name    string
	Quality string
	IFrame  string
}

// TranslationSet is the ordered translation_iframe mapping.
type TranslationSet []Translation

// UnmarshalJSON implements json.Unmarshaler. Entries that are not objects are
// skipped; the mapping order is kept.
func (s *TranslationSet) UnmarshalJSON(data []byte) error {
	*s = nil
	var members []member
	switch kindOf(data) {
	case "object":
		var err error
		members, err = objectMembers(data)
		if err != nil {
			return err
		}
	case "array":
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		for i, elem := range raw {
			members = append(members, member{key: strconv.Itoa(i), value: elem})
		}
	default:
		return nil
	}

	out := make(TranslationSet, 0, len(members))
	for _, m := range members {
		if kindOf(m.value) != "object" {
			continue
		}
		var entry struct {
			Name    Text `json:"name"`
			Quality Text `json:"quality"`
			IFrame  Text `json:"iframe"`
		}
		if err := json.Unmarshal(m.value, &entry); err != nil {
			continue
		}
		out = append(out, Translation{
			ID:      m.key,
			Name:    entry.Name.String(),
			Quality: entry.Quality.String(),
			IFrame:  entry.IFrame.String(),
		})
	}
	*s = out
	return nil
}

// SearchQuery carries the search form values.
type SearchQuery struct {
	Name     string
	Year     string
	Category string
}

// Params converts the query to request parameters.
func (q SearchQuery) Params() Params {
	return Params{
		ParamName: q.Name,
		ParamYear: q.Year,
		ParamList: q.Category,
	}
}
