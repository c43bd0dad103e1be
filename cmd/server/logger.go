package main

import (
	"github.com/skovtun/lightning-node-registry/internal/config"
	"github.com/skovtun/lightning-node-registry/internal/logging"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.NewLogger(cfg.ServiceName)
}
