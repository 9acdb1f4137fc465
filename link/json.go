package link

import (
	"encoding/json"

	"gitlab.com/tozd/go/errors"
	"gitlab.com/tozd/go/x"
)

// MarshalJSON encodes l as a {"variant": "...", ...fields} object, the
// same discriminated-union shape used elsewhere in the core for closed
// interface types.
func MarshalJSON(l Link) ([]byte, errors.E) {
	var variant string
	switch l.Variant() {
	case VariantInternal:
		variant = "internal"
	case VariantAnchor:
		variant = "anchor"
	case VariantRedLink:
		variant = "redlink"
	case VariantMedia:
		variant = "media"
	case VariantExternal:
		variant = "external"
	case VariantExternalToInternal:
		variant = "external_to_internal"
	}

	data, errE := x.MarshalWithoutEscapeHTML(l)
	if errE != nil {
		return nil, errE
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.WithStack(err)
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	variantJSON, errE := x.MarshalWithoutEscapeHTML(variant)
	if errE != nil {
		return nil, errE
	}
	fields["variant"] = variantJSON
	return x.MarshalWithoutEscapeHTML(fields)
}

// UnmarshalJSON decodes bytes produced by MarshalJSON back into the
// matching concrete Link implementation.
func UnmarshalJSON(data []byte) (Link, errors.E) { //nolint:ireturn
	var t struct {
		Variant string `json:"variant"`
	}
	errE := x.Unmarshal(data, &t)
	if errE != nil {
		return nil, errE
	}
	switch t.Variant {
	case "internal":
		return unmarshalAs[Internal](data)
	case "anchor":
		return unmarshalAs[AnchorLink](data)
	case "redlink":
		return unmarshalAs[RedLink](data)
	case "media":
		return unmarshalAs[Media](data)
	case "external":
		return unmarshalAs[External](data)
	case "external_to_internal":
		return unmarshalAs[ExternalToInternal](data)
	default:
		return nil, errors.Errorf(`link of variant "%s" is not supported`, t.Variant)
	}
}

func unmarshalAs[T Link](data []byte) (Link, errors.E) { //nolint:ireturn
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.WithStack(err)
	}
	delete(fields, "variant")
	stripped, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var v T
	errE := x.UnmarshalWithoutUnknownFields(stripped, &v)
	if errE != nil {
		return nil, errE
	}
	return v, nil
}
