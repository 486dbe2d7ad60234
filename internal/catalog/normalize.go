package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Normalize turns the API's data payload into an ordered list of items. The
// upstream uses a list for browse endpoints, a bare object for single matches
// and an id-keyed object elsewhere:
//
//   - absent or null: empty list
//   - array: every object element, in order; falsy and non-object elements are dropped
//   - object with a "name" key: a single item
//   - any other object: its object values, in mapping order
//   - anything else: empty list
//
// Elements that look like items but fail to decode are skipped; the returned
// error joins their decode errors and the decoded items are still returned.
func Normalize(data json.RawMessage) ([]Item, error) {
	switch kindOf(data) {
	case "array":
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode data list: %w", err)
		}
		return decodeItems(raw)

	case "object":
		members, err := objectMembers(data)
		if err != nil {
			return nil, fmt.Errorf("decode data object: %w", err)
		}
		for _, m := range members {
			if m.key == "name" {
				return decodeItems([]json.RawMessage{data})
			}
		}
		raw := make([]json.RawMessage, 0, len(members))
		for _, m := range members {
			raw = append(raw, m.value)
		}
		return decodeItems(raw)

	default:
		return []Item{}, nil
	}
}

func decodeItems(raw []json.RawMessage) ([]Item, error) {
	items := make([]Item, 0, len(raw))
	var errs []error
	for i, elem := range raw {
		if kindOf(elem) != "object" {
			continue
		}
		var item Item
		if err := json.Unmarshal(elem, &item); err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	return items, errors.Join(errs...)
}

// kindOf classifies a raw JSON value by its first significant byte.
func kindOf(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "absent"
	}
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 'n':
		return "null"
	case 't', 'f':
		return "bool"
	default:
		return "number"
	}
}

type member struct {
	key   string
	value json.RawMessage
}

// objectMembers decodes a JSON object keeping its members in the order a
// JavaScript engine would iterate them: integer-like keys ascending first,
// then the remaining keys in document order. A repeated key keeps its first
// position and its last value.
func objectMembers(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object")
	}

	var members []member
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key")
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if pos, seen := index[key]; seen {
			members[pos].value = value
			continue
		}
		index[key] = len(members)
		members = append(members, member{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	sort.SliceStable(members, func(i, j int) bool {
		ai, aok := arrayIndex(members[i].key)
		bi, bok := arrayIndex(members[j].key)
		switch {
		case aok && bok:
			return ai < bi
		default:
			return aok && !bok
		}
	})
	return members, nil
}

// arrayIndex reports whether key is a canonical array index ("0", "17", but
// not "017" or "-1").
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return n, true
}
