// Package fetch retrieves robot description text from a locator: an http(s) URL, a file:// URL or
// a local path.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"

	goutils "go.viam.com/utils"

	"go.viam.com/robotstate/logging"
)

// A Fetcher resolves a locator to the text it names.
type Fetcher func(ctx context.Context, locator string) (string, error)

// Retriever fetches descriptions over HTTP and from the local filesystem. A nil Client means the
// environment cannot make network requests, and http(s) locators fail with ErrRetrievalUnavailable.
type Retriever struct {
	Client *http.Client
	Logger logging.Logger
}

// NewRetriever returns a Retriever using the given client.
func NewRetriever(client *http.Client, logger logging.Logger) *Retriever {
	return &Retriever{Client: client, Logger: logger}
}

// Fetch retrieves the text named by locator. It satisfies Fetcher.
func (r *Retriever) Fetch(ctx context.Context, locator string) (string, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return "", NewRetrievalFailedError(locator, 0, "invalid locator", err)
	}

	switch u.Scheme {
	case "http", "https":
		return r.fetchHTTP(ctx, locator)
	case "file":
		return r.fetchFile(locator, u.Path)
	case "":
		return r.fetchFile(locator, locator)
	default:
		return "", NewRetrievalUnavailableError(locator, "unsupported scheme "+u.Scheme)
	}
}

func (r *Retriever) fetchHTTP(ctx context.Context, locator string) (string, error) {
	if r.Client == nil {
		return "", NewRetrievalUnavailableError(locator, "no http client available")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return "", NewRetrievalFailedError(locator, 0, "invalid request", err)
	}

	r.Logger.Debugw("fetching description", "url", locator)
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", NewRetrievalFailedError(locator, 0, err.Error(), err)
	}
	defer goutils.UncheckedErrorFunc(resp.Body.Close)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", NewRetrievalFailedError(locator, resp.StatusCode, resp.Status, nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewRetrievalFailedError(locator, resp.StatusCode, "reading body", err)
	}
	return string(body), nil
}

func (r *Retriever) fetchFile(locator, path string) (string, error) {
	r.Logger.Debugw("reading description", "path", path)
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return "", NewRetrievalFailedError(locator, 0, err.Error(), err)
	}
	return string(data), nil
}
