package page

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"gitlab.com/tozd/go/errors"
	"gitlab.com/tozd/go/x"
)

// searchLimiter throttles srsearch pagination to one request per second
// across all callers, regardless of how fast a caller pages through
// NextOffset.
var searchLimiter = rate.NewLimiter(rate.Every(time.Second), 1)

// SearchHit is one entry of a search result list.
type SearchHit struct {
	Title   string
	PageID  int64
	Snippet string
}

// SearchResult is one page of search results, with the continuation offset
// needed to fetch the next page.
type SearchResult struct {
	Hits           []SearchHit
	TotalHits      int
	Suggestion     string
	RewrittenQuery string
	NextOffset     int
	HasMore        bool
}

type apiSearchResponse struct {
	Error    json.RawMessage   `json:"error,omitempty"`
	Continue map[string]string `json:"continue,omitempty"`
	Query    struct {
		SearchInfo struct {
			TotalHits      int    `json:"totalhits"`
			Suggestion     string `json:"suggestion,omitempty"`
			RewrittenQuery string `json:"rewrittenquery,omitempty"`
		} `json:"searchinfo"`
		Search []struct {
			Title   string `json:"title"`
			PageID  int64  `json:"pageid"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// Search issues one action=query&list=search request for query, starting at
// offset and requesting at most limit results. Callers page through
// results by re-invoking with SearchResult.NextOffset until HasMore is
// false.
func Search(ctx context.Context, httpClient *retryablehttp.Client, endpoint, query string, limit, offset int) (*SearchResult, errors.E) {
	if err := searchLimiter.Wait(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	client := httpClient
	if client == nil {
		client = retryablehttp.NewClient()
		client.Logger = nil
	}

	data := url.Values{}
	data.Set("action", "query")
	data.Set("format", "json")
	data.Set("formatversion", "2")
	data.Set("list", "search")
	data.Set("srsearch", query)
	data.Set("srlimit", strconv.Itoa(limit))
	data.Set("sroffset", strconv.Itoa(offset))
	data.Set("srinfo", "totalhits|suggestion|rewrittenquery")
	data.Set("srprop", "snippet")

	apiURL := endpoint + "?" + data.Encode()
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

	var apiResp apiSearchResponse
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

	result := &SearchResult{
		TotalHits:      apiResp.Query.SearchInfo.TotalHits,
		Suggestion:     apiResp.Query.SearchInfo.Suggestion,
		RewrittenQuery: apiResp.Query.SearchInfo.RewrittenQuery,
	}
	for _, h := range apiResp.Query.Search {
		result.Hits = append(result.Hits, SearchHit{Title: h.Title, PageID: h.PageID, Snippet: h.Snippet})
	}
	if next, ok := apiResp.Continue["sroffset"]; ok {
		result.NextOffset, _ = strconv.Atoi(next)
		result.HasMore = true
	}

	return result, nil
}
