package document

import (
	"encoding/json"

	"gitlab.com/tozd/go/errors"
	"gitlab.com/tozd/go/x"

	"github.com/Builditluc/wiki-tui/link"
)

// jsonNode is the on-disk shape of one arena entry. Payload is a
// discriminated union tagged by the separate Kind field; a Link payload's
// bytes are link.MarshalJSON's output, which carries its own "variant" tag.
type jsonNode struct {
	Index      int             `json:"index"`
	Parent     int             `json:"parent"`
	Prev       int             `json:"prev"`
	Next       int             `json:"next"`
	FirstChild int             `json:"firstChild"`
	LastChild  int             `json:"lastChild"`
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// MarshalJSON serialises the document's arena verbatim, one entry per
// node in index order, so node indices (and therefore every render.Word
// back-reference) survive the round trip unchanged.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make([]jsonNode, len(d.nodes))
	for i, n := range d.nodes {
		kind, payload, errE := marshalPayload(n.Payload)
		if errE != nil {
			return nil, errE
		}
		out[i] = jsonNode{
			Index: n.Index, Parent: n.Parent, Prev: n.Prev, Next: n.Next,
			FirstChild: n.FirstChild, LastChild: n.LastChild,
			Kind: kind, Payload: payload,
		}
	}
	return x.MarshalWithoutEscapeHTML(out)
}

// UnmarshalJSON rebuilds the arena from MarshalJSON's output.
func (d *Document) UnmarshalJSON(data []byte) error {
	var in []jsonNode
	errE := x.UnmarshalWithoutUnknownFields(data, &in)
	if errE != nil {
		return errE
	}

	nodes := make([]Node, len(in))
	firstRoot, lastRoot := NoIndex, NoIndex
	for i, jn := range in {
		payload, errE := unmarshalPayload(jn.Kind, jn.Payload)
		if errE != nil {
			return errE
		}
		nodes[i] = Node{
			Index: jn.Index, Parent: jn.Parent, Prev: jn.Prev, Next: jn.Next,
			FirstChild: jn.FirstChild, LastChild: jn.LastChild, Payload: payload,
		}
		if jn.Parent == NoIndex {
			if firstRoot == NoIndex {
				firstRoot = jn.Index
			}
			lastRoot = jn.Index
		}
	}
	d.nodes = nodes
	d.firstRoot = firstRoot
	d.lastRoot = lastRoot
	return nil
}

func marshalPayload(p Payload) (kind string, payload json.RawMessage, errE errors.E) {
	switch v := p.(type) {
	case Section:
		kind = "section"
		payload, errE = x.MarshalWithoutEscapeHTML(v)
	case Header:
		kind = "header"
		payload, errE = x.MarshalWithoutEscapeHTML(v)
	case Paragraph:
		kind = "paragraph"
	case Division:
		kind = "division"
	case Span:
		kind = "span"
	case Blockquote:
		kind = "blockquote"
	case Hatnote:
		kind = "hatnote"
	case RedirectMessage:
		kind = "redirect_message"
	case Disambiguation:
		kind = "disambiguation"
	case Reflink:
		kind = "reflink"
	case OrderedList:
		kind = "ordered_list"
	case UnorderedList:
		kind = "unordered_list"
	case ListItem:
		kind = "list_item"
	case DescriptionList:
		kind = "description_list"
	case DescriptionListTerm:
		kind = "description_list_term"
	case DescriptionListDescription:
		kind = "description_list_description"
	case Text:
		kind = "text"
		payload, errE = x.MarshalWithoutEscapeHTML(v)
	case Bold:
		kind = "bold"
	case Italic:
		kind = "italic"
	case Linebreak:
		kind = "linebreak"
	case Link:
		kind = "link"
		payload, errE = link.MarshalJSON(v.Variant)
	case Unsupported:
		kind = "unsupported"
		payload, errE = x.MarshalWithoutEscapeHTML(v)
	case UnsupportedInline:
		kind = "unsupported_inline"
		payload, errE = x.MarshalWithoutEscapeHTML(v)
	case Unknown:
		kind = "unknown"
	default:
		errE = errors.Errorf("node payload of type %T is not supported", p)
	}
	return kind, payload, errE
}

func unmarshalPayload(kind string, payload json.RawMessage) (Payload, errors.E) { //nolint:ireturn
	switch kind {
	case "section":
		var v Section
		if errE := x.UnmarshalWithoutUnknownFields(payload, &v); errE != nil {
			return nil, errE
		}
		return v, nil
	case "header":
		var v Header
		if errE := x.UnmarshalWithoutUnknownFields(payload, &v); errE != nil {
			return nil, errE
		}
		return v, nil
	case "paragraph":
		return Paragraph{}, nil
	case "division":
		return Division{}, nil
	case "span":
		return Span{}, nil
	case "blockquote":
		return Blockquote{}, nil
	case "hatnote":
		return Hatnote{}, nil
	case "redirect_message":
		return RedirectMessage{}, nil
	case "disambiguation":
		return Disambiguation{}, nil
	case "reflink":
		return Reflink{}, nil
	case "ordered_list":
		return OrderedList{}, nil
	case "unordered_list":
		return UnorderedList{}, nil
	case "list_item":
		return ListItem{}, nil
	case "description_list":
		return DescriptionList{}, nil
	case "description_list_term":
		return DescriptionListTerm{}, nil
	case "description_list_description":
		return DescriptionListDescription{}, nil
	case "text":
		var v Text
		if errE := x.UnmarshalWithoutUnknownFields(payload, &v); errE != nil {
			return nil, errE
		}
		return v, nil
	case "bold":
		return Bold{}, nil
	case "italic":
		return Italic{}, nil
	case "linebreak":
		return Linebreak{}, nil
	case "link":
		variant, errE := link.UnmarshalJSON(payload)
		if errE != nil {
			return nil, errE
		}
		return Link{Variant: variant}, nil
	case "unsupported":
		var v Unsupported
		if errE := x.UnmarshalWithoutUnknownFields(payload, &v); errE != nil {
			return nil, errE
		}
		return v, nil
	case "unsupported_inline":
		var v UnsupportedInline
		if errE := x.UnmarshalWithoutUnknownFields(payload, &v); errE != nil {
			return nil, errE
		}
		return v, nil
	case "unknown":
		return Unknown{}, nil
	default:
		return nil, errors.Errorf(`node payload of kind "%s" is not supported`, kind)
	}
}
