package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"maps"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/GLADI8R/landscape2/internal/core/domain"
	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.LogoNormaliser = (*Normaliser)(nil)

// Editor namespaces whose elements and attributes are dropped.
var editorPrefixes = map[string]bool{
	"sodipodi": true,
	"inkscape": true,
	"sketch":   true,
}

// Elements dropped together with their content.
var droppedElements = map[string]bool{
	"metadata": true,
}

// entityDecl matches a general entity declared in a DOCTYPE internal subset,
// as written by Illustrator exports.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_:][\w.:-]*)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// Normaliser canonicalises SVG documents.
type Normaliser struct{}

// New creates a new SVG normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extension returns the extension of normalised logos.
func (n *Normaliser) Extension() string {
	return "svg"
}

// Normalise returns the canonical form of an SVG document.
func (n *Normaliser) Normalise(data []byte) ([]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty svg", domain.ErrInvalidInput)
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	w := &writer{}
	skipDepth := 0

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed svg: %v", domain.ErrInvalidInput, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if skipDepth > 0 || dropElement(t.Name) {
				skipDepth++
				continue
			}
			if err := w.start(t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if skipDepth > 0 {
				skipDepth--
				continue
			}
			if err := w.end(t); err != nil {
				return nil, err
			}
		case xml.CharData:
			if skipDepth > 0 {
				continue
			}
			w.text(t)
		case xml.Directive:
			if len(w.stack) == 0 && !w.done {
				declareEntities(dec, t)
			}
		case xml.Comment, xml.ProcInst:
		}
	}

	return w.finish()
}

// declareEntities adds the entities declared in a DOCTYPE to a copy of the
// decoder's entity map.
func declareEntities(dec *xml.Decoder, d xml.Directive) {
	matches := entityDecl.FindAllSubmatch(d, -1)
	if len(matches) == 0 {
		return
	}
	entities := maps.Clone(dec.Entity)
	if entities == nil {
		entities = make(map[string]string, len(matches))
	}
	for _, m := range matches {
		value := m[2]
		if m[3] != nil {
			value = m[3]
		}
		entities[string(m[1])] = string(value)
	}
	dec.Entity = entities
}

func dropElement(name xml.Name) bool {
	return editorPrefixes[name.Space] || droppedElements[name.Local]
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// writer serialises tokens canonically and checks the document structure.
type writer struct {
	buf     bytes.Buffer
	stack   []string
	pending bool // start tag written without its closing '>'
	done    bool // root element closed

	chars      strings.Builder // character data not written yet
	afterStart bool            // last tag written was a start tag
}

func (w *writer) start(t xml.StartElement) error {
	if w.done {
		return fmt.Errorf("%w: malformed svg: multiple root elements", domain.ErrInvalidInput)
	}
	if len(w.stack) == 0 && t.Name.Local != "svg" {
		return fmt.Errorf("%w: not an svg document (root element %q)", domain.ErrInvalidInput, qualified(t.Name))
	}
	if err := w.flushText(false); err != nil {
		return err
	}
	w.flushPending()

	name := qualified(t.Name)
	w.buf.WriteByte('<')
	w.buf.WriteString(name)

	attrs := make([]xml.Attr, 0, len(t.Attr))
	for _, a := range t.Attr {
		if editorPrefixes[a.Name.Space] || (a.Name.Space == "xmlns" && editorPrefixes[a.Name.Local]) {
			continue
		}
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return qualified(attrs[i].Name) < qualified(attrs[j].Name)
	})
	for _, a := range attrs {
		w.buf.WriteByte(' ')
		w.buf.WriteString(qualified(a.Name))
		w.buf.WriteString(`="`)
		escape(&w.buf, strings.TrimSpace(a.Value), true)
		w.buf.WriteByte('"')
	}

	w.stack = append(w.stack, name)
	w.pending = true
	w.afterStart = true
	return nil
}

func (w *writer) end(t xml.EndElement) error {
	name := qualified(t.Name)
	if len(w.stack) == 0 || w.stack[len(w.stack)-1] != name {
		return fmt.Errorf("%w: malformed svg: unexpected end element %q", domain.ErrInvalidInput, name)
	}
	if err := w.flushText(true); err != nil {
		return err
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.afterStart = false

	if w.pending {
		w.buf.WriteString("/>")
		w.pending = false
	} else {
		w.buf.WriteString("</")
		w.buf.WriteString(name)
		w.buf.WriteByte('>')
	}
	if len(w.stack) == 0 {
		w.done = true
	}
	return nil
}

// text buffers character data until the next tag, so runs split by
// comments are handled as one.
func (w *writer) text(t xml.CharData) {
	w.chars.Write(t)
}

// flushText writes the buffered character data. Whitespace-only runs are
// dropped and other runs have their whitespace collapsed to single spaces.
// Edge spaces are trimmed only where the text touches its own element's
// start or end tag, so spacing between sibling text and tspans survives.
func (w *writer) flushText(beforeEnd bool) error {
	raw := w.chars.String()
	w.chars.Reset()
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if len(w.stack) == 0 {
		return fmt.Errorf("%w: malformed svg: text outside root element", domain.ErrInvalidInput)
	}

	text := collapseSpace(raw)
	if w.afterStart {
		text = strings.TrimLeft(text, " ")
	}
	if beforeEnd {
		text = strings.TrimRight(text, " ")
	}
	w.flushPending()
	escape(&w.buf, text, false)
	return nil
}

func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}

func (w *writer) flushPending() {
	if w.pending {
		w.buf.WriteByte('>')
		w.pending = false
	}
}

func (w *writer) finish() ([]byte, error) {
	if err := w.flushText(true); err != nil {
		return nil, err
	}
	if !w.done {
		return nil, fmt.Errorf("%w: malformed svg: missing svg root element", domain.ErrInvalidInput)
	}
	return w.buf.Bytes(), nil
}

func escape(buf *bytes.Buffer, s string, attr bool) {
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			if attr {
				buf.WriteString("&quot;")
			} else {
				buf.WriteRune(r)
			}
		case '\n', '\r', '\t':
			if attr {
				buf.WriteByte(' ')
			} else {
				buf.WriteRune(r)
			}
		default:
			buf.WriteRune(r)
		}
	}
}
