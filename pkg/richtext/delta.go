package richtext

import (
	"encoding/json"
	"fmt"
	"sort"
)

// deltaOp is the wire form of an op, matching the attribute names a
// Quill-style rich-text widget emits: {"insert": "...", "attributes": {...}}.
type deltaOp struct {
	Insert     string         `json:"insert"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// MarshalJSON encodes the op in delta form.
func (o Op) MarshalJSON() ([]byte, error) {
	d := deltaOp{Insert: o.Insert}
	if len(o.Marks) > 0 {
		d.Attributes = make(map[string]any, len(o.Marks))
	}
	for _, m := range o.Marks {
		switch m.Kind {
		case MarkBold, MarkItalic, MarkStrike, MarkUnderline:
			d.Attributes[m.Kind.String()] = true
		case MarkLink:
			d.Attributes["link"] = m.URL
		case MarkHeader:
			d.Attributes["header"] = m.Level
		case MarkOrderedItem:
			d.Attributes["list"] = "ordered"
		case MarkUnorderedItem:
			d.Attributes["list"] = "bullet"
		}
	}
	return json.Marshal(d)
}

// UnmarshalJSON decodes an op from delta form. Unknown attributes are
// rejected so malformed widget events surface instead of silently dropping
// formatting.
func (o *Op) UnmarshalJSON(data []byte) error {
	var d deltaOp
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	o.Insert = d.Insert
	o.Marks = nil
	for key, value := range d.Attributes {
		mark, err := markFromAttribute(key, value)
		if err != nil {
			return err
		}
		o.Marks = append(o.Marks, mark)
	}
	// Attribute maps are unordered; fix a stable nesting order so decoding
	// the same delta twice serializes identically.
	sort.SliceStable(o.Marks, func(i, j int) bool {
		return wrapRank(o.Marks[i].Kind) < wrapRank(o.Marks[j].Kind)
	})
	return o.Validate()
}

// wrapRank orders marks outermost-first for serialization: links wrap the
// whole run, emphasis marks nest inside.
func wrapRank(k MarkKind) int {
	switch k {
	case MarkLink:
		return 0
	case MarkBold:
		return 1
	case MarkItalic:
		return 2
	case MarkStrike:
		return 3
	case MarkUnderline:
		return 4
	}
	return 5
}

func markFromAttribute(key string, value any) (Mark, error) {
	switch key {
	case "bold":
		return Bold(), nil
	case "italic":
		return Italic(), nil
	case "strike":
		return Strike(), nil
	case "underline":
		return Underline(), nil
	case "link":
		url, ok := value.(string)
		if !ok || url == "" {
			return Mark{}, fmt.Errorf("link attribute requires a URL string, got %v", value)
		}
		return Link(url), nil
	case "header":
		level, ok := value.(float64)
		if !ok {
			return Mark{}, fmt.Errorf("header attribute requires a number, got %v", value)
		}
		return Header(int(level)), nil
	case "list":
		switch value {
		case "ordered":
			return OrderedItem(), nil
		case "bullet":
			return UnorderedItem(), nil
		}
		return Mark{}, fmt.Errorf("unknown list style %v", value)
	}
	return Mark{}, fmt.Errorf("unknown attribute %q", key)
}
