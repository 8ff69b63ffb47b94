package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ferndev/ragchat/pkg/log"
)

type BackendConfig struct {
	BaseURL string        `env:"RAGCHAT_BACKEND_URL" envDefault:"http://localhost:8000/api"`
	Timeout time.Duration `env:"RAGCHAT_BACKEND_TIMEOUT" envDefault:"30s"`
}

func NewBackendConfig(ctx context.Context) *BackendConfig {
	c := &BackendConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse backend config")
	}
	return c
}
