package diet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse is returned when the model content is not JSON.
var ErrMalformedResponse = errors.New("diet: malformed model response")

// Shape names the way a model response was recognized.
type Shape string

const (
	ShapeList            Shape = "list"
	ShapeMeals           Shape = "meals"
	ShapeRecommendations Shape = "recommendations"
	ShapeSingle          Shape = "single"
	ShapeFirstListField  Shape = "first_list_field"
	ShapeUnrecognized    Shape = "unrecognized"
)

type field struct {
	key   string
	value json.RawMessage
}

// document is a parsed response. fields keeps object keys in source order.
type document struct {
	raw      json.RawMessage
	isObject bool
	fields   []field
}

func (d document) field(key string) (json.RawMessage, bool) {
	for _, f := range d.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

type shapeMatcher struct {
	shape Shape
	match func(document) ([]json.RawMessage, bool)
}

// shapeMatchers are tried in order; the first match wins.
var shapeMatchers = []shapeMatcher{
	{ShapeList, func(d document) ([]json.RawMessage, bool) {
		return asList(d.raw)
	}},
	{ShapeMeals, func(d document) ([]json.RawMessage, bool) {
		return namedList(d, "meals")
	}},
	{ShapeRecommendations, func(d document) ([]json.RawMessage, bool) {
		return namedList(d, "recommendations")
	}},
	{ShapeSingle, func(d document) ([]json.RawMessage, bool) {
		if !d.isObject {
			return nil, false
		}
		name, _ := d.field("name")
		desc, _ := d.field("description")
		if !truthy(name) || !truthy(desc) {
			return nil, false
		}
		return []json.RawMessage{d.raw}, true
	}},
	{ShapeFirstListField, func(d document) ([]json.RawMessage, bool) {
		for _, f := range d.fields {
			if items, ok := asList(f.value); ok {
				return items, true
			}
		}
		return nil, false
	}},
}

// Normalize parses model content into suggestions. Content that is valid
// JSON but matches no known shape, or yields no usable entries, produces
// ModelFallback. Content that is not JSON returns ErrMalformedResponse.
func Normalize(content string) ([]Suggestion, Shape, error) {
	doc, err := parseDocument(stripFence(content))
	if err != nil {
		return nil, ShapeUnrecognized, err
	}

	for _, m := range shapeMatchers {
		items, ok := m.match(doc)
		if !ok {
			continue
		}
		out := make([]Suggestion, 0, len(items))
		for _, item := range items {
			if s, ok := toSuggestion(item); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return ModelFallback(), m.shape, nil
		}
		return out, m.shape, nil
	}
	return ModelFallback(), ShapeUnrecognized, nil
}

// stripFence removes a surrounding markdown code fence, if any.
func stripFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func parseDocument(content string) (document, error) {
	raw := json.RawMessage(content)
	if !json.Valid(raw) {
		return document{}, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	doc := document{raw: raw}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return document{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if tok != json.Delim('{') {
		return doc, nil
	}
	doc.isObject = true
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return document{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		key, _ := keyTok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return document{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		doc.fields = append(doc.fields, field{key: key, value: value})
	}
	return doc, nil
}

func asList(raw json.RawMessage) ([]json.RawMessage, bool) {
	var items []json.RawMessage
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}
	return items, true
}

func namedList(d document, key string) ([]json.RawMessage, bool) {
	value, ok := d.field(key)
	if !ok {
		return nil, false
	}
	return asList(value)
}

// truthy mirrors a loose presence check: null, false, 0 and "" are absent.
func truthy(raw json.RawMessage) bool {
	switch s := string(bytes.TrimSpace(raw)); s {
	case "", "null", "false", "0", `""`:
		return false
	default:
		return true
	}
}

func toSuggestion(raw json.RawMessage) (Suggestion, bool) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if strings.TrimSpace(text) == "" {
			return Suggestion{}, false
		}
		return Suggestion{Name: text}, true
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return Suggestion{}, false
	}
	s := Suggestion{
		Name:             textValue(obj["name"]),
		Description:      textValue(obj["description"]),
		NutritionSummary: textValue(obj["nutrition"]),
	}
	if s.NutritionSummary == "" {
		s.NutritionSummary = textValue(obj["nutritionSummary"])
	}
	return s, true
}

// textValue returns strings as-is and any other JSON value as compact text.
func textValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
