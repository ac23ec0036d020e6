//go:build console

package main

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// runEmbeddedUI is a stub for console-only builds
func runEmbeddedUI(config *Config, serverConfig ServerConfig, logger *zap.Logger) error {
	return errors.New("embedded UI not available in console build. Use -web flag for external browser mode")
}
