// Package stream proxies video bytes from a remote file-hosting API to the
// player. It is a stateless byte-forwarding adapter: no session semantics,
// no knowledge of rooms.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const metaTimeout = 10 * time.Second

// Client talks to the file-hosting API. Responses are streamed through,
// never buffered whole.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	// No client-wide timeout: content requests stay open for as long as the
	// player keeps reading. Metadata calls bound themselves via context.
	return &Client{baseURL: baseURL, token: token, http: &http.Client{}}
}

type FileMeta struct {
	Size     int64
	MimeType string
}

// Metadata fetches size and mime type for a hosted file.
func (c *Client) Metadata(ctx context.Context, fileID string) (FileMeta, error) {
	ctx, cancel := context.WithTimeout(ctx, metaTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/files/%s?fields=size,mimeType", c.baseURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FileMeta{}, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return FileMeta{}, fmt.Errorf("filehost metadata %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return FileMeta{}, fmt.Errorf("filehost metadata %s: status %d", fileID, resp.StatusCode)
	}

	// The hosting API serializes size as a decimal string.
	var body struct {
		Size     string `json:"size"`
		MimeType string `json:"mimeType"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return FileMeta{}, fmt.Errorf("filehost metadata %s: %w", fileID, err)
	}
	size, err := strconv.ParseInt(body.Size, 10, 64)
	if err != nil {
		return FileMeta{}, fmt.Errorf("filehost metadata %s: bad size %q", fileID, body.Size)
	}
	return FileMeta{Size: size, MimeType: body.MimeType}, nil
}

// Content opens the byte stream for a hosted file. byteRange, when non-empty,
// is passed through as an HTTP Range header value (e.g. "bytes=0-1048575").
// The caller must close the returned body.
func (c *Client) Content(ctx context.Context, fileID, byteRange string) (io.ReadCloser, error) {
	url := fmt.Sprintf("%s/files/%s?alt=media", c.baseURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	if byteRange != "" {
		req.Header.Set("Range", byteRange)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("filehost content %s: %w", fileID, err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("filehost content %s: status %d", fileID, resp.StatusCode)
	}
	return resp.Body, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
