// Package keepalive pings the service's own public URL so free-tier hosts
// don't idle the process out.
package keepalive

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const interval = 10 * time.Minute

// Run pings url every 10 minutes until ctx is canceled. Call in a goroutine;
// does nothing when url is empty.
func Run(ctx context.Context, url string) {
	if url == "" {
		return
	}
	client := &http.Client{Timeout: 30 * time.Second}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ping(ctx, client, url)
		}
	}
}

func ping(ctx context.Context, client *http.Client, url string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "keepalive").Msg("build ping request")
		return
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("module", "keepalive").Msg("ping failed")
		return
	}
	resp.Body.Close()
	log.Info().Str("module", "keepalive").Int("status", resp.StatusCode).Msg("ping ok")
}
