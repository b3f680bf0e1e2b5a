package render

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SchemeYAML encodes data as a base16 scheme file: scheme, author, then
// base00..base0F in order.
func SchemeYAML(data *Data) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key, value string) {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value, Style: yaml.DoubleQuotedStyle},
		)
	}

	add("scheme", data.Name)
	add("author", data.Author)
	for _, c := range data.Colours {
		add(c.Role, string(c.Hex))
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scheme: %w", err)
	}
	return out, nil
}

// ParseSchemeYAML reads the colours of a base16 scheme file in role order.
func ParseSchemeYAML(b []byte) (Meta, []string, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Meta{}, nil, fmt.Errorf("failed to decode scheme: %w", err)
	}

	meta := Meta{Name: raw["scheme"], Author: raw["author"]}
	colours := make([]string, 0, 16)
	for i := range 16 {
		key := fmt.Sprintf("base%02X", i)
		v, ok := raw[key]
		if !ok {
			return meta, nil, fmt.Errorf("scheme is missing %s", key)
		}
		colours = append(colours, v)
	}
	return meta, colours, nil
}

type schemeJSON struct {
	Scheme  string            `json:"scheme"`
	Author  string            `json:"author,omitempty"`
	Slug    string            `json:"slug"`
	Colours map[string]string `json:"colours"`
	Order   []string          `json:"order"`
}

// SchemeJSON encodes data as indented JSON.
func SchemeJSON(data *Data) ([]byte, error) {
	out := schemeJSON{
		Scheme:  data.Name,
		Author:  data.Author,
		Slug:    data.Slug,
		Colours: make(map[string]string, len(data.Colours)),
	}
	for _, c := range data.Colours {
		out.Colours[c.Role] = string(c.Hex)
		out.Order = append(out.Order, c.Role)
	}
	return json.MarshalIndent(out, "", "  ")
}
