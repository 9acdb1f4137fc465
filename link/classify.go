package link

import (
	"net/url"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/Builditluc/wiki-tui/language"
)

const (
	wikiPrefix    = "/wiki/"
	redlinkMarker = "redlink=1"
)

// Classify turns an href/title pair, as found on an <a> element of a
// page served from endpoint in language pageLanguage, into exactly one
// Link variant. It never produces
// Media itself — that distinction is made by the caller from the <a>
// element's "rel" attribute, upgrading an External result (see htmlparser).
func Classify(endpoint, href string, title *string, pageLanguage language.Language) (Link, errors.E) {
	decoded, err := url.QueryUnescape(href)
	if err != nil {
		errE := errors.WithStack(err)
		errors.Details(errE)["href"] = href
		return nil, errors.WrapWith(errE, ErrInvalidEncoding)
	}

	parsed, parseErr := url.Parse(decoded)

	switch {
	case parseErr == nil && strings.HasPrefix(parsed.Path, wikiPrefix):
		return classifyWikiLink(endpoint, decoded, parsed, title, pageLanguage)
	case strings.HasPrefix(decoded, "#"):
		a := newAnchorFrom(strings.TrimPrefix(decoded, "#"))
		return AnchorLink{Anchor: a.Anchor, Title: a.Title}, nil
	case strings.Contains(decoded, redlinkMarker):
		return classifyRedLink(endpoint, decoded, title)
	case parseErr == nil && parsed.IsAbs():
		return External{URL: decoded}, nil
	default:
		errE := errors.New("invalid link")
		errors.Details(errE)["href"] = href
		return nil, errors.WrapWith(errE, ErrProcessingFailure)
	}
}

// classifyWikiLink handles hrefs whose path begins with "/wiki/", whether
// written relative ("/wiki/Foo"), protocol-relative ("//host/wiki/Foo") or
// fully qualified ("https://host/wiki/Foo").
func classifyWikiLink(endpoint, decoded string, parsedHref *url.URL, title *string, pageLanguage language.Language) (Link, errors.E) {
	if crossWiki, target := isCrossWiki(endpoint, parsedHref, decoded); crossWiki {
		return ExternalToInternal{URL: target}, nil
	}
	hrefLanguage := resolveLanguage(parsedHref, pageLanguage)

	remainder := strings.TrimPrefix(parsedHref.Path, wikiPrefix)

	namespace := NamespaceMain
	if idx := strings.Index(remainder, ":"); idx >= 0 {
		nsStr, rest := remainder[:idx], remainder[idx+1:]
		ns, ok := namespaceFromString(nsStr)
		if !ok {
			errE := errors.New("unknown namespace")
			errors.Details(errE)["namespace"] = nsStr
			return nil, errors.WrapWith(errE, ErrInvalidNamespace)
		}
		namespace = ns
		remainder = rest
	}

	page := remainder
	var anchorRef *Anchor
	if idx := strings.Index(remainder, "#"); idx >= 0 {
		page = remainder[:idx]
		a := newAnchorFrom(remainder[idx+1:])
		anchorRef = &a
	} else if parsedHref.Fragment != "" {
		a := newAnchorFrom(parsedHref.Fragment)
		anchorRef = &a
	}

	if title == nil || *title == "" {
		errE := errors.New("missing title")
		errors.Details(errE)["href"] = decoded
		return nil, errors.WrapWith(errE, ErrMissingData)
	}

	return Internal{
		Namespace: namespace,
		Page:      page,
		Title:     *title,
		Endpoint:  endpoint,
		Language:  hrefLanguage,
		AnchorRef: anchorRef,
	}, nil
}

func classifyRedLink(endpoint, decoded string, title *string) (Link, errors.E) {
	if title == nil || *title == "" {
		errE := errors.New("missing title")
		errors.Details(errE)["href"] = decoded
		return nil, errors.WrapWith(errE, ErrMissingData)
	}
	return RedLink{URL: absoluteURL(endpoint, decoded), Title: *title}, nil
}

// isCrossWiki reports whether href names an explicit host different from
// endpoint's. A relative href (no host) is always same-wiki.
func isCrossWiki(endpoint string, href *url.URL, decoded string) (bool, string) {
	if href.Host == "" {
		return false, ""
	}
	endpointURL, err := url.Parse(endpoint)
	if err != nil || endpointURL.Host == "" {
		return false, ""
	}
	if strings.EqualFold(href.Host, endpointURL.Host) {
		return false, ""
	}
	return true, absoluteURL(endpoint, decoded)
}

// resolveLanguage determines the language a /wiki/ link should be
// interpreted in: the first dotted label of the href's host if present
// (this only runs once isCrossWiki has ruled out a host mismatch, so the
// label names the same wiki family, e.g. a fully-qualified self-link),
// else the containing page's own language.
func resolveLanguage(href *url.URL, pageLanguage language.Language) language.Language {
	if href.Host == "" {
		return pageLanguage
	}
	labels := strings.Split(href.Host, ".")
	if len(labels) > 0 {
		if l, ok := language.FromCode(labels[0]); ok {
			return l
		}
	}
	return pageLanguage
}

func absoluteURL(endpoint, href string) string {
	base, err := url.Parse(endpoint)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
