package page

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gitlab.com/tozd/go/x"

	"github.com/PuerkitoBio/goquery"

	"github.com/Builditluc/wiki-tui/htmlparser"
	"github.com/Builditluc/wiki-tui/language"
)

// userAgent identifies this client to the MediaWiki action API with a stable product token.
const userAgent = "wiki-tui/0.1 (+https://github.com/Builditluc/wiki-tui)"

// Properties selects which optional action=parse fields a fetch requests
// and, correspondingly, which Page fields get populated.
type Properties int

const (
	PropText Properties = 1 << iota
	PropSections
	PropLangLinks
)

// PropertiesDefault requests everything a Page can carry.
const PropertiesDefault = PropText | PropSections | PropLangLinks

func (p Properties) queryValue() string {
	var parts []string
	if p&PropText != 0 {
		parts = append(parts, "text")
	}
	if p&PropSections != 0 {
		parts = append(parts, "sections")
	}
	if p&PropLangLinks != 0 {
		parts = append(parts, "langlinks")
	}
	return strings.Join(parts, "|")
}

// Builder assembles an action=parse request. Exactly one of Title/PageID
// must be set before Fetch is called.
type Builder struct {
	endpoint   string
	lang       language.Language
	title      string
	pageID     int64
	hasPageID  bool
	properties Properties
	redirects  bool
	revision   int64
	httpClient *retryablehttp.Client
	logger     zerolog.Logger
}

// NewBuilder starts a fetch for a page served from endpoint in language
// lang, with every optional property requested by default.
func NewBuilder(endpoint string, lang language.Language) *Builder {
	return &Builder{
		endpoint:   endpoint,
		lang:       lang,
		properties: PropertiesDefault,
	}
}

func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

func (b *Builder) PageID(id int64) *Builder {
	b.pageID = id
	b.hasPageID = true
	return b
}

func (b *Builder) Properties(p Properties) *Builder {
	b.properties = p
	return b
}

func (b *Builder) Redirects(redirects bool) *Builder {
	b.redirects = redirects
	return b
}

func (b *Builder) Revision(revID int64) *Builder {
	b.revision = revID
	return b
}

func (b *Builder) HTTPClient(client *retryablehttp.Client) *Builder {
	b.httpClient = client
	return b
}

func (b *Builder) Logger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

type apiParseResponse struct {
	Error json.RawMessage  `json:"error,omitempty"`
	Parse *apiParseContent `json:"parse,omitempty"`
}

type apiParseContent struct {
	Title     string        `json:"title"`
	PageID    int64         `json:"pageid"`
	RevID     int64         `json:"revid"`
	Text      string        `json:"text"`
	Sections  []apiSection  `json:"sections"`
	LangLinks []apiLangLink `json:"langlinks"`
}

type apiSection struct {
	TOCLevel int    `json:"toclevel"`
	Line     string `json:"line"`
	Number   string `json:"number"`
	Anchor   string `json:"anchor"`
}

type apiLangLink struct {
	Lang  string `json:"lang"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Fetch issues the action=parse request, shapes the response into a Page,
// and parses the HTML body into Page.Document via htmlparser.
func (b *Builder) Fetch(ctx context.Context) (*Page, errors.E) {
	if b.title == "" && !b.hasPageID {
		return nil, errors.WithStack(ErrMissingIdentifier)
	}

	client := b.httpClient
	if client == nil {
		client = retryablehttp.NewClient()
		client.Logger = nil
	}

	data := url.Values{}
	data.Set("action", "parse")
	data.Set("format", "json")
	data.Set("formatversion", "2")
	data.Set("parsoid", "true")
	data.Set("prop", b.properties.queryValue())
	if b.title != "" {
		data.Set("page", b.title)
	} else {
		data.Set("pageid", strconv.FormatInt(b.pageID, 10))
	}
	if b.redirects {
		data.Set("redirects", "")
	}
	if b.revision != 0 {
		data.Set("revid", strconv.FormatInt(b.revision, 10))
	}

	apiURL := fmt.Sprintf("%s?%s", b.endpoint, data.Encode())
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		errE := errors.WithStack(err)
		errors.Details(errE)["url"] = apiURL
		return nil, errE
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		errE := errors.WithStack(err)
		errors.Details(errE)["url"] = apiURL
		return nil, errE
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errE := errors.WithStack(err)
		errors.Details(errE)["url"] = apiURL
		return nil, errE
	}
	if resp.StatusCode != http.StatusOK {
		errE := errors.New("bad response status")
		errors.Details(errE)["url"] = apiURL
		errors.Details(errE)["code"] = resp.StatusCode
		errors.Details(errE)["body"] = strings.TrimSpace(string(body))
		return nil, errE
	}

	var apiResp apiParseResponse
	errE := x.Unmarshal(body, &apiResp)
	if errE != nil {
		errors.Details(errE)["url"] = apiURL
		return nil, errE
	}
	if apiResp.Error != nil {
		errE := errors.WithStack(ErrResponseError)
		errors.Details(errE)["url"] = apiURL
		errors.Details(errE)["body"] = string(apiResp.Error)
		return nil, errE
	}
	missing := ""
	switch {
	case apiResp.Parse == nil || apiResp.Parse.Title == "":
		missing = "parse.title"
	case apiResp.Parse.PageID == 0:
		missing = "parse.pageid"
	case b.properties&PropText != 0 && apiResp.Parse.Text == "":
		missing = "parse.text"
	}
	if missing != "" {
		errE := errors.WithStack(ErrMissingField)
		errors.Details(errE)["url"] = apiURL
		errors.Details(errE)["field"] = missing
		return nil, errE
	}

	p := &Page{
		ID:       uuid.New(),
		Title:    apiResp.Parse.Title,
		PageID:   apiResp.Parse.PageID,
		RevID:    apiResp.Parse.RevID,
		Endpoint: b.endpoint,
		Language: b.lang,
		Sections: shapeSections(apiResp.Parse.Sections),
	}

	langLinks, errE := shapeLangLinks(b.endpoint, apiResp.Parse.LangLinks)
	if errE != nil {
		return nil, errE
	}
	p.LanguageLinks = langLinks

	if b.properties&PropText != 0 {
		doc, errE := htmlparser.Parse(apiResp.Parse.Text, b.endpoint, b.lang, b.logger)
		if errE != nil {
			return nil, errE
		}
		p.Document = doc
	}

	return p, nil
}

// shapeSections inserts a synthetic (Top) entry at index 0, renumbers the
// real sections from 1, and strips HTML out of each Line.
func shapeSections(apiSections []apiSection) []Section {
	out := make([]Section, 0, len(apiSections)+1)
	out = append(out, Section{Index: 0, TOCLevel: 0, Line: "(Top)", Anchor: contentTopAnchor})
	for i, s := range apiSections {
		out = append(out, Section{
			Index:    i + 1,
			TOCLevel: s.TOCLevel,
			Number:   s.Number,
			Line:     stripHTML(s.Line),
			Anchor:   s.Anchor,
		})
	}
	return out
}

// shapeLangLinks reshapes the API's language-link list, resolving each
// link's language from its "lang" code and replacing endpoint's host with
// the link's own host to produce that sibling wiki's endpoint.
func shapeLangLinks(endpoint string, apiLinks []apiLangLink) ([]LanguageLink, errors.E) {
	base, err := url.Parse(endpoint)
	if err != nil {
		errE := errors.WithStack(err)
		errors.Details(errE)["endpoint"] = endpoint
		return nil, errE
	}

	out := make([]LanguageLink, 0, len(apiLinks))
	for _, ll := range apiLinks {
		lang, _ := language.FromCode(ll.Lang)

		linkHost := ll.URL
		if parsed, err := url.Parse(ll.URL); err == nil && parsed.Host != "" {
			linkHost = parsed.Host
		}
		copied := *base
		copied.Host = linkHost

		out = append(out, LanguageLink{
			Language: lang,
			Title:    ll.Title,
			Endpoint: copied.String(),
			URL:      ll.URL,
		})
	}
	return out, nil
}

// stripHTML discards markup from a section title, keeping only its text
// content (section lines may carry inline formatting such as <i>).
func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
