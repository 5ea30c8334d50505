package source

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/dwikikusuma/cartsim/internal/catalog/app"
	"github.com/dwikikusuma/cartsim/internal/catalog/domain"
)

const maxDocumentBytes = 4 << 20

type HTTP struct {
	url    string
	client *http.Client
}

func NewHTTP(url string, timeout time.Duration) *HTTP {
	return &HTTP{url: url, client: &http.Client{Timeout: timeout}}
}

func (h *HTTP) Name() string { return h.url }

func (h *HTTP) Fetch(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read catalog body")
	}

	format := FormatFor(h.url)
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "yaml") {
		format = FormatYAML
	}
	return Decode(data, format)
}

// For returns an HTTP source for http(s) locations and a file source otherwise.
func For(location string, timeout time.Duration) app.Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTP(location, timeout)
	}
	return NewFile(location)
}
