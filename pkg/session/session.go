package session

import (
	"resultctl/pkg/config"
	"resultctl/pkg/result"
	"resultctl/pkg/transcript"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Session owns the response cache for the lifetime of one process
type Session struct {
	Config  *config.AppConfig
	Logger  log.Logger
	Source  *result.CachedSource
	Builder *transcript.Builder
}

// New wires a client, cache and builder from cfg. A non-empty apiOverride
// replaces the configured base URL.
func New(cfg *config.AppConfig, logger log.Logger, apiOverride string) *Session {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	baseURL := cfg.APIBaseURL
	if apiOverride != "" {
		baseURL = apiOverride
	}

	client := result.NewClient(result.ClientOpts{
		BaseURL: baseURL,
		Timeout: cfg.Timeout(),
		Logger:  logger,
	})
	src := result.NewCachedSource(client, cfg.TTL())

	level.Debug(logger).Log("msg", "session ready", "api", client.BaseURL(), "cache_ttl", cfg.TTL(), "workers", cfg.Workers)

	return &Session{
		Config: cfg,
		Logger: logger,
		Source: src,
		Builder: transcript.NewBuilder(src, transcript.BuilderOpts{
			Workers: cfg.Workers,
			Logger:  logger,
		}),
	}
}
