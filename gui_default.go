//go:build !console

package main

import (
	"github.com/pkg/errors"
	webview "github.com/webview/webview_go"
	"go.uber.org/zap"
)

// runEmbeddedUI starts the web server and opens an embedded browser window
func runEmbeddedUI(config *Config, serverConfig ServerConfig, logger *zap.Logger) error {
	// The embedded window always talks to a private loopback port
	serverConfig.Addr = "localhost:0"
	ws := NewWebServer(config, serverConfig, logger)

	url, cleanup, err := ws.StartForEmbedded()
	if err != nil {
		return errors.Wrap(err, "start server")
	}
	defer cleanup()

	// false = no debug mode
	w := webview.New(false)
	defer w.Destroy()

	w.SetTitle("Take-Home Pay Calculator")
	w.SetSize(900, 800, webview.HintNone)
	w.Navigate(url)

	// Run blocks until window is closed
	w.Run()

	return nil
}
