// ABOUTME: Streaming HTML transformer built on the x/net/html tokenizer
// ABOUTME: Rewrites registered elements in place while passing everything else through untouched

package rewrite

import (
	"io"

	"golang.org/x/net/html"
)

// voidTags never carry an end tag; removing one drops the start tag alone.
var voidTags = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {},
	"hr": {}, "img": {}, "input": {}, "link": {}, "meta": {},
	"param": {}, "source": {}, "track": {}, "wbr": {},
}

// Element is the start tag handed to a mutator. Attribute keys are
// lowercase, as produced by the tokenizer.
type Element struct {
	Name  string
	attrs map[string]string
}

// Attr returns the value of the named attribute, empty when absent.
func (e *Element) Attr(name string) string {
	return e.attrs[name]
}

// Mutation is a mutator's verdict on one element. The zero value passes
// the element through unchanged. Remove drops the element (and, for
// title/script/style, its subtree); Prepend inserts markup immediately
// after the start tag.
type Mutation struct {
	Remove  bool
	Prepend []byte
}

// MutatorFunc inspects one start tag and decides its mutation.
type MutatorFunc func(el *Element) Mutation

// Transformer applies registered mutators to an HTML stream without
// buffering the document. Bytes outside registered elements are copied
// through verbatim, so malformed markup survives untouched.
type Transformer struct {
	mutators map[string][]MutatorFunc
}

// NewTransformer returns an empty transformer; register mutators with
// OnElement before calling Transform.
func NewTransformer() *Transformer {
	return &Transformer{mutators: make(map[string][]MutatorFunc)}
}

// OnElement registers fn for every occurrence of the named tag. Multiple
// mutators for one tag run in registration order; any Remove wins and
// Prepend fragments concatenate.
func (t *Transformer) OnElement(tag string, fn MutatorFunc) {
	t.mutators[tag] = append(t.mutators[tag], fn)
}

// Transform streams src to dst, applying registered mutators. The
// rewritten document is emitted incrementally; nothing is held back
// beyond the tokenizer's own read buffer.
func (t *Transformer) Transform(src io.Reader, dst io.Writer) error {
	z := html.NewTokenizer(src)

	for {
		tt := z.Next()

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return err
			}
			return nil

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := z.Raw()
			name, hasAttr := z.TagName()
			fns := t.mutators[string(name)]
			if len(fns) == 0 {
				if _, err := dst.Write(raw); err != nil {
					return err
				}
				continue
			}

			el := &Element{Name: string(name)}
			if hasAttr {
				el.attrs = make(map[string]string)
				for {
					key, val, more := z.TagAttr()
					el.attrs[string(key)] = string(val)
					if !more {
						break
					}
				}
			}

			m := Mutation{}
			for _, fn := range fns {
				v := fn(el)
				if v.Remove {
					m.Remove = true
				}
				m.Prepend = append(m.Prepend, v.Prepend...)
			}

			if m.Remove {
				if tt == html.StartTagToken {
					if err := skipSubtree(z, el.Name); err != nil {
						return err
					}
				}
				continue
			}

			if _, err := dst.Write(raw); err != nil {
				return err
			}
			if len(m.Prepend) > 0 {
				if _, err := dst.Write(m.Prepend); err != nil {
					return err
				}
			}

		default:
			if _, err := dst.Write(z.Raw()); err != nil {
				return err
			}
		}
	}
}

// skipSubtree consumes tokens up to and including the end tag matching
// the removed element, tracking same-name nesting. Void elements carry
// no end tag, so only their start tag is dropped.
func skipSubtree(z *html.Tokenizer, tag string) error {
	if _, void := voidTags[tag]; void {
		return nil
	}

	depth := 1
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return err
			}
			return nil
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == tag {
				depth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == tag {
				depth--
				if depth == 0 {
					return nil
				}
			}
		}
	}
}
