package richtext

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDeltaMarshal(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		want string
	}{
		{
			name: "plain text",
			op:   Op{Insert: "hello"},
			want: `{"insert":"hello"}`,
		},
		{
			name: "bold",
			op:   Op{Insert: "x", Marks: []Mark{Bold()}},
			want: `{"insert":"x","attributes":{"bold":true}}`,
		},
		{
			name: "link",
			op:   Op{Insert: "site", Marks: []Mark{Link("https://example.com")}},
			want: `{"insert":"site","attributes":{"link":"https://example.com"}}`,
		},
		{
			name: "header terminator",
			op:   Op{Insert: "\n", Marks: []Mark{Header(2)}},
			want: `{"insert":"\n","attributes":{"header":2}}`,
		},
		{
			name: "ordered list terminator",
			op:   Op{Insert: "\n", Marks: []Mark{OrderedItem()}},
			want: `{"insert":"\n","attributes":{"list":"ordered"}}`,
		},
		{
			name: "bullet list terminator",
			op:   Op{Insert: "\n", Marks: []Mark{UnorderedItem()}},
			want: `{"insert":"\n","attributes":{"list":"bullet"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.op)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestDeltaRoundTrip(t *testing.T) {
	ops := Ops{
		{Insert: "intro "},
		{Insert: "loud", Marks: []Mark{Bold(), Italic()}},
		{Insert: "\n"},
		{Insert: "visit ", Marks: nil},
		{Insert: "here", Marks: []Mark{Link("https://example.com"), Bold()}},
		{Insert: "\n", Marks: []Mark{Header(3)}},
		{Insert: "first"},
		{Insert: "\n", Marks: []Mark{OrderedItem()}},
	}

	data, err := json.Marshal(ops)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded Ops
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !ops.Equal(decoded) {
		t.Errorf("round trip mismatch:\nin:  %+v\nout: %+v", ops, decoded)
	}
}

func TestDeltaUnmarshalRejectsMalformedAttributes(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"unknown attribute", `{"insert":"x","attributes":{"blink":true}}`},
		{"link without url", `{"insert":"x","attributes":{"link":""}}`},
		{"link with non-string", `{"insert":"x","attributes":{"link":7}}`},
		{"unknown list style", `{"insert":"\n","attributes":{"list":"checklist"}}`},
		{"header not a number", `{"insert":"\n","attributes":{"header":"two"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var op Op
			if err := json.Unmarshal([]byte(tt.json), &op); err == nil {
				t.Errorf("expected error for %s", tt.json)
			}
		})
	}
}

func TestDeltaUnmarshalStableMarkOrder(t *testing.T) {
	// The same attribute set must decode to the same mark order regardless
	// of JSON key order, so re-serialization is deterministic.
	a := `{"insert":"x","attributes":{"bold":true,"link":"https://e.com","italic":true}}`
	b := `{"insert":"x","attributes":{"italic":true,"bold":true,"link":"https://e.com"}}`

	var opA, opB Op
	if err := json.Unmarshal([]byte(a), &opA); err != nil {
		t.Fatalf("Unmarshal a: %v", err)
	}
	if err := json.Unmarshal([]byte(b), &opB); err != nil {
		t.Fatalf("Unmarshal b: %v", err)
	}

	for i := range opA.Marks {
		if opA.Marks[i] != opB.Marks[i] {
			t.Fatalf("mark order differs: %+v vs %+v", opA.Marks, opB.Marks)
		}
	}
	if opA.Marks[0].Kind != MarkLink {
		t.Errorf("link should sort outermost, got %v first", opA.Marks[0].Kind)
	}
}

func TestDeltaMarshalEscapesInsert(t *testing.T) {
	op := Op{Insert: "a\nb"}
	data, err := json.Marshal(op)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `\n`) {
		t.Errorf("newline not escaped in %s", data)
	}
}
