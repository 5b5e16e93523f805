package codec

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Format identifies which on-disk shape a record was decoded from.
type Format int

const (
	// FormatCurrent is a frontmatter block followed by a markdown body.
	FormatCurrent Format = iota
	// FormatLegacyText is the pre-frontmatter markdown layout with
	// emphasis-wrapped "Key: value" lines.
	FormatLegacyText
	// FormatLegacyRecord is the whole-record JSON goal file.
	FormatLegacyRecord
)

func (f Format) String() string {
	switch f {
	case FormatCurrent:
		return "current"
	case FormatLegacyText:
		return "legacy_text"
	case FormatLegacyRecord:
		return "legacy_record"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// document is a file split into its metadata block and body text. meta is nil
// when the file has no usable frontmatter.
type document struct {
	meta *yaml.Node
	body string
}

// splitFrontmatter separates a leading "---" delimited block from the body.
// A missing or unterminated block, a YAML error, or an empty/non-mapping
// block all yield nil metadata and the whole content as body.
func splitFrontmatter(content string) document {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || lines[0] != delimiter {
		return document{body: content}
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if lines[i] == delimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return document{body: content}
	}

	block := strings.Join(lines[1:end], "\n")
	body := strings.TrimSpace(strings.Join(lines[end+1:], "\n"))

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(block), &root); err != nil {
		return document{body: content}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return document{body: body}
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode || len(mapping.Content) == 0 {
		return document{body: body}
	}
	return document{meta: mapping, body: body}
}

// decodeMeta decodes the metadata block into out, reporting false when the
// block is absent. Keys whose values do not fit the target type are left
// unset so the field default table applies to them.
func (d document) decodeMeta(out any) bool {
	if d.meta == nil {
		return false
	}
	err := d.meta.Decode(out)
	if err == nil {
		return true
	}
	var typeErr *yaml.TypeError
	if !errors.As(err, &typeErr) {
		return false
	}

	// A failed key may still have allocated its pointer field. Start over and
	// apply only the keys that decode cleanly on their own.
	target := reflect.ValueOf(out).Elem()
	target.SetZero()
	for i := 0; i+1 < len(d.meta.Content); i += 2 {
		pair := &yaml.Node{Kind: yaml.MappingNode, Content: d.meta.Content[i : i+2]}
		probe := reflect.New(target.Type())
		if pair.Decode(probe.Interface()) != nil {
			continue
		}
		_ = pair.Decode(out)
	}
	return true
}

// joinFrontmatter renders meta as a YAML block between delimiters followed by
// a blank line and body.
func joinFrontmatter(meta any, body string) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var out bytes.Buffer
	out.Grow(buf.Len() + len(body) + 16)
	out.WriteString(delimiter)
	out.WriteByte('\n')
	out.WriteString(strings.TrimSpace(buf.String()))
	out.WriteByte('\n')
	out.WriteString(delimiter)
	out.WriteString("\n\n")
	out.WriteString(body)
	return out.Bytes(), nil
}
