package codec

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/quiverview/pkg/errors"
	"github.com/matzehuels/quiverview/pkg/quiver"
)

const fourEdges = `Quiver( ["u","v"], [["u","u","a"],["u","v","b"],["v","u","c"],["v","v","d"]] )`

func TestDeserialize(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantNodes  []string
		wantCounts map[[2]string]int
	}{
		{
			name:      "loops and both directions",
			input:     fourEdges,
			wantNodes: []string{"u", "v"},
			wantCounts: map[[2]string]int{
				{"u", "u"}: 1,
				{"u", "v"}: 1,
				{"v", "u"}: 1,
				{"v", "v"}: 1,
			},
		},
		{
			name:      "surrounding text",
			input:     ">>> print(Q)\nQuiver([\"1\", \"2\"], [[\"1\", \"2\", \"\"], [\"1\", \"2\", \"\"]])\n>>>",
			wantNodes: []string{"1", "2"},
			wantCounts: map[[2]string]int{
				{"1", "2"}: 2,
			},
		},
		{
			name:      "duplicate node ids are idempotent",
			input:     `Quiver(["a", "a", "b"], [])`,
			wantNodes: []string{"a", "b"},
		},
		{
			name:      "edge endpoint not listed",
			input:     `Quiver(["a"], [["a", "z", "f"]])`,
			wantNodes: []string{"a", "z"},
			wantCounts: map[[2]string]int{
				{"a", "z"}: 1,
			},
		},
		{
			name:      "two element tuple",
			input:     `Quiver(["a","b"],[["a","b"]])`,
			wantNodes: []string{"a", "b"},
			wantCounts: map[[2]string]int{
				{"a", "b"}: 1,
			},
		},
		{
			name:      "first malformed occurrence skipped",
			input:     `Quiver(oops) and then Quiver(["x"], [["x","x","l"]])`,
			wantNodes: []string{"x"},
			wantCounts: map[[2]string]int{
				{"x", "x"}: 1,
			},
		},
		{
			name:      "empty quiver",
			input:     `Quiver([], [])`,
			wantNodes: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Deserialize(tt.input)
			if err != nil {
				t.Fatalf("Deserialize: %v", err)
			}

			got := q.NodeIDs()
			if len(got) != len(tt.wantNodes) {
				t.Fatalf("nodes = %v, want %v", got, tt.wantNodes)
			}
			for i := range got {
				if got[i] != tt.wantNodes[i] {
					t.Errorf("nodes[%d] = %q, want %q", i, got[i], tt.wantNodes[i])
				}
			}

			total := 0
			for pair, want := range tt.wantCounts {
				if c := q.Count(pair[0], pair[1]); c != want {
					t.Errorf("Count(%s,%s) = %d, want %d", pair[0], pair[1], c, want)
				}
				total += want
			}
			if q.EdgeCount() != total {
				t.Errorf("EdgeCount() = %d, want %d", q.EdgeCount(), total)
			}
			if err := q.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestDeserializePreservesLabels(t *testing.T) {
	q, err := Deserialize(fourEdges)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	want := map[string]string{"u->u": "a", "u->v": "b", "v->u": "c", "v->v": "d"}
	for _, e := range q.Edges() {
		if got := e.Label; got != want[e.Pair().String()] {
			t.Errorf("label of %s = %q, want %q", e.Pair(), got, want[e.Pair().String()])
		}
	}
	for _, id := range []string{"u", "v"} {
		loops := q.Loops(id)
		if len(loops) != 1 || loops[0].Loop == nil {
			t.Errorf("node %s: want one self-loop with metadata, got %d", id, len(loops))
		}
	}
}

func TestDeserializeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing token", `["u","v"], [["u","v","a"]]`},
		{"empty", ``},
		{"invalid json", `Quiver(["u", ], [])`},
		{"missing comma", `Quiver(["u"] [])`},
		{"missing close paren", `Quiver(["u"], []`},
		{"nodes not array", `Quiver({"u": 1}, [])`},
		{"edges null", `Quiver(["u"], null)`},
		{"numeric node", `Quiver([1, 2], [])`},
		{"short tuple", `Quiver(["u"], [["u"]])`},
		{"long tuple", `Quiver(["u"], [["u","u","a","b"]])`},
		{"non string tuple", `Quiver(["u"], [["u", 2, "a"]])`},
		{"empty node id", `Quiver([""], [])`},
		{"invalid utf-8 node", "Quiver([\"a\xffb\"], [])"},
		{"invalid utf-8 label", "Quiver([\"u\"], [[\"u\", \"u\", \"\xfe\"]])"},
		{"invalid utf-8 endpoint", "Quiver([], [[\"\xc3\", \"v\"]])"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Deserialize(tt.input)
			if err == nil {
				t.Fatalf("Deserialize(%q) succeeded, want error", tt.input)
			}
			if q != nil {
				t.Error("Deserialize returned a quiver alongside an error")
			}
			if !errors.Is(err, errors.ErrCodeParse) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeParse)
			}
		})
	}
}

func TestSerialize(t *testing.T) {
	q := quiver.New()
	q.AddNode("u")
	q.AddNode("v")
	q.AddEdge("u", "v", "b")
	q.AddEdge("v", "v", "")

	want := `Quiver(["u", "v"], [["u", "v", "b"], ["v", "v", ""]])`
	if got := Serialize(q); got != want {
		t.Errorf("Serialize() = %s\nwant %s", got, want)
	}
}

func TestSerializeEscapes(t *testing.T) {
	q := quiver.New()
	q.AddNode(`a"b`)
	q.AddNode("<c>")
	q.AddEdge(`a"b`, "<c>", `f\g`)

	got := Serialize(q)
	if !strings.Contains(got, `"a\"b"`) || !strings.Contains(got, `"<c>"`) || !strings.Contains(got, `"f\\g"`) {
		t.Errorf("Serialize() = %s, escaping is wrong", got)
	}

	back, err := Deserialize(got)
	if err != nil {
		t.Fatalf("Deserialize(Serialize()): %v", err)
	}
	if back.Count(`a"b`, "<c>") != 1 || back.Edges()[0].Label != `f\g` {
		t.Errorf("round trip lost data: %s", Serialize(back))
	}
}

func TestRoundTrip(t *testing.T) {
	q, err := Deserialize(fourEdges)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	back, err := Deserialize(Serialize(q))
	if err != nil {
		t.Fatalf("Deserialize(Serialize()): %v", err)
	}
	if Serialize(back) != Serialize(q) {
		t.Errorf("round trip differs:\n%s\n%s", Serialize(q), Serialize(back))
	}
}

func TestReadWrite(t *testing.T) {
	q, _ := Deserialize(fourEdges)

	var buf bytes.Buffer
	if err := Write(q, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("Write should end with a newline")
	}

	back, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if back.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", back.EdgeCount())
	}
}

func TestReadWriteFile(t *testing.T) {
	q, _ := Deserialize(fourEdges)
	path := filepath.Join(t.TempDir(), "q.quiver")

	if err := WriteFile(q, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if back.NodeCount() != 2 || back.EdgeCount() != 4 {
		t.Errorf("got %d nodes, %d edges; want 2, 4", back.NodeCount(), back.EdgeCount())
	}
}

func TestReadFileErrors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.quiver"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	path := filepath.Join(t.TempDir(), "bad.quiver")
	if err := os.WriteFile(path, []byte("not a quiver"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = ReadFile(path)
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("bad file error = %v, want PARSE_ERROR", err)
	}

	if _, err := ReadFile(""); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("empty path error = %v, want INVALID_PATH", err)
	}
}
