package stream

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// chunkSize caps how much is served per range request; the player asks again
// as it advances.
const chunkSize int64 = 1 << 20

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Stream serves GET /api/stream/drive/:fileId.
//
// With a Range header it answers 206 with a bounded chunk, forwarding the
// narrowed range upstream; without one it answers 200 and streams the whole
// file. Seeking in the player is just another range request.
func (h *Handler) Stream(c *gin.Context) {
	fileID := c.Param("fileId")
	if fileID == "" {
		c.String(http.StatusBadRequest, "missing file id")
		return
	}

	meta, err := h.client.Metadata(c.Request.Context(), fileID)
	if err != nil {
		log.Error().Err(err).Str("module", "stream").Str("file", fileID).Msg("metadata fetch failed")
		c.String(http.StatusBadGateway, "upstream metadata error")
		return
	}

	rangeHeader := c.GetHeader("Range")
	if rangeHeader == "" {
		body, err := h.client.Content(c.Request.Context(), fileID, "")
		if err != nil {
			log.Error().Err(err).Str("module", "stream").Str("file", fileID).Msg("content fetch failed")
			c.String(http.StatusBadGateway, "upstream content error")
			return
		}
		defer body.Close()

		c.Header("Content-Length", strconv.FormatInt(meta.Size, 10))
		c.Header("Content-Type", meta.MimeType)
		c.Status(http.StatusOK)
		h.copy(c, body, fileID)
		return
	}

	start, ok := parseRangeStart(rangeHeader)
	if !ok || start >= meta.Size {
		c.Header("Content-Range", fmt.Sprintf("bytes */%d", meta.Size))
		c.Status(http.StatusRequestedRangeNotSatisfiable)
		return
	}
	end := start + chunkSize
	if end > meta.Size-1 {
		end = meta.Size - 1
	}

	body, err := h.client.Content(c.Request.Context(), fileID, fmt.Sprintf("bytes=%d-%d", start, end))
	if err != nil {
		log.Error().Err(err).Str("module", "stream").Str("file", fileID).Msg("ranged content fetch failed")
		c.String(http.StatusBadGateway, "upstream content error")
		return
	}
	defer body.Close()

	c.Header("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, meta.Size))
	c.Header("Accept-Ranges", "bytes")
	c.Header("Content-Length", strconv.FormatInt(end-start+1, 10))
	c.Header("Content-Type", meta.MimeType)
	c.Status(http.StatusPartialContent)
	h.copy(c, body, fileID)
}

func (h *Handler) copy(c *gin.Context, body io.Reader, fileID string) {
	if _, err := io.Copy(c.Writer, body); err != nil {
		// The player aborting mid-stream lands here; nothing to recover.
		log.Debug().Err(err).Str("module", "stream").Str("file", fileID).Msg("stream copy ended")
	}
}

// parseRangeStart extracts the first byte offset from a Range header.
// Only "bytes=N-" shapes matter for video seeking; anything else is rejected.
func parseRangeStart(header string) (int64, bool) {
	v := strings.TrimPrefix(header, "bytes=")
	if v == header {
		return 0, false
	}
	v, _, _ = strings.Cut(v, "-")
	start, err := strconv.ParseInt(v, 10, 64)
	if err != nil || start < 0 {
		return 0, false
	}
	return start, true
}
