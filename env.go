package main

import "os"

// Build-time defaults injected with -ldflags. They only apply when the
// matching env var is unset.
var (
	defaultScoreAPIURL string
	defaultScoreAPIKey string
)

func loadEmbeddedEnv() {
	if defaultScoreAPIURL != "" {
		if _, exists := os.LookupEnv("TETRIS_SCORE_API_URL"); !exists {
			_ = os.Setenv("TETRIS_SCORE_API_URL", defaultScoreAPIURL)
		}
	}
	if defaultScoreAPIKey != "" {
		if _, exists := os.LookupEnv("TETRIS_SCORE_API_KEY"); !exists {
			_ = os.Setenv("TETRIS_SCORE_API_KEY", defaultScoreAPIKey)
		}
	}
}
