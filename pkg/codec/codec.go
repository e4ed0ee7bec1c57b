package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/quiverview/pkg/errors"
	"github.com/matzehuels/quiverview/pkg/quiver"
)

// Token is the call name that opens a serialized quiver.
const Token = "Quiver("

// Deserialize parses the first quiver found in text.
func Deserialize(text string, opts ...quiver.Option) (*quiver.Quiver, error) {
	if !strings.Contains(text, Token) {
		return nil, errors.New(errors.ErrCodeParse, "no %q token found", Token)
	}

	var firstErr error
	rest, offset := text, 0
	for {
		i := strings.Index(rest, Token)
		if i < 0 {
			break
		}
		body := rest[i+len(Token):]
		q, err := parseBody(body, opts)
		if err == nil {
			return q, nil
		}
		if firstErr == nil {
			firstErr = errors.Wrap(errors.ErrCodeParse, err, "quiver at offset %d", offset+i)
		}
		offset += i + len(Token)
		rest = body
	}
	return nil, firstErr
}

// Serialize writes q in the Quiver( [...], [[...]] ) notation. Node and edge
// order follow insertion order; absent labels are written as "".
func Serialize(q *quiver.Quiver) string {
	nodes := q.NodeIDs()
	edges := make([][3]string, 0, q.EdgeCount())
	for _, e := range q.Edges() {
		edges = append(edges, [3]string{e.Source, e.Target, e.Label})
	}

	var b strings.Builder
	b.WriteString(Token)
	b.WriteString("[")
	for i, id := range nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(id))
	}
	b.WriteString("], [")
	for i, e := range edges {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "[%s, %s, %s]", quote(e[0]), quote(e[1]), quote(e[2]))
	}
	b.WriteString("])")
	return b.String()
}

// quote renders s as a JSON string without HTML escaping.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// parseBody parses "<nodes>, <edges> )" at the start of body.
func parseBody(body string, opts []quiver.Option) (*quiver.Quiver, error) {
	r := strings.NewReader(body)
	dec := json.NewDecoder(r)

	var nodes []json.RawMessage
	if err := dec.Decode(&nodes); err != nil {
		return nil, fmt.Errorf("nodes array: %w", err)
	}
	after := body[dec.InputOffset():]

	after, ok := consume(after, ',')
	if !ok {
		return nil, fmt.Errorf("expected ',' after nodes array")
	}

	dec = json.NewDecoder(strings.NewReader(after))
	var edges []json.RawMessage
	if err := dec.Decode(&edges); err != nil {
		return nil, fmt.Errorf("edges array: %w", err)
	}
	if _, ok := consume(after[dec.InputOffset():], ')'); !ok {
		return nil, fmt.Errorf("expected ')' after edges array")
	}

	return build(nodes, edges, opts)
}

// consume skips leading whitespace and the expected rune.
func consume(s string, want rune) (string, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" || rune(s[0]) != want {
		return s, false
	}
	return s[1:], true
}

func build(rawNodes, rawEdges []json.RawMessage, opts []quiver.Option) (*quiver.Quiver, error) {
	if rawNodes == nil {
		return nil, fmt.Errorf("nodes must be an array")
	}
	if rawEdges == nil {
		return nil, fmt.Errorf("edges must be an array")
	}

	q := quiver.New(opts...)
	for i, raw := range rawNodes {
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("node %d: identifier is not valid UTF-8", i)
		}
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, fmt.Errorf("node %d: identifier must be a string", i)
		}
		if err := errors.ValidateNodeID(id); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if _, err := q.EnsureNode(id); err != nil {
			return nil, fmt.Errorf("node %s: %w", id, err)
		}
	}

	for i, raw := range rawEdges {
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("edge %d: not valid UTF-8", i)
		}
		var tuple []string
		if err := json.Unmarshal(raw, &tuple); err != nil {
			return nil, fmt.Errorf("edge %d: must be an array of strings", i)
		}
		if len(tuple) != 2 && len(tuple) != 3 {
			return nil, fmt.Errorf("edge %d: want [source, destination, label], got %d elements", i, len(tuple))
		}
		src, dst, label := tuple[0], tuple[1], ""
		if len(tuple) == 3 {
			label = tuple[2]
		}
		for _, id := range []string{src, dst} {
			if err := errors.ValidateNodeID(id); err != nil {
				return nil, fmt.Errorf("edge %d: %w", i, err)
			}
			if _, err := q.EnsureNode(id); err != nil {
				return nil, fmt.Errorf("edge %d: %w", i, err)
			}
		}
		if _, err := q.AddEdge(src, dst, label); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", src, dst, err)
		}
	}
	return q, nil
}

// Read decodes the first quiver found in r.
// Read does not close r.
func Read(r io.Reader, opts ...quiver.Option) (*quiver.Quiver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Deserialize(string(data), opts...)
}

// Write writes the serialized quiver followed by a newline.
func Write(q *quiver.Quiver, w io.Writer) error {
	if _, err := io.WriteString(w, Serialize(q)+"\n"); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
