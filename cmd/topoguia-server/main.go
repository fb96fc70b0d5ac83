// Command topoguia-server runs the route sheet HTTP service.
//
// Configuration is read from the environment (a .env file is honoured):
//
//   - PORT: listen port (default 8080)
//   - LOG_LEVEL: logrus level (default info)
//   - FONT_DIR: core font definition directory
//   - STATIONERY: PDF whose first pages are drawn under the content
package main

import (
	"github.com/sirupsen/logrus"

	"topoguia/logger"
	"topoguia/server"
)

func main() {
	cfg := server.Load()
	logger.Setup(cfg.LogLevel)

	logrus.WithField("port", cfg.Port).Info("starting topoguia server")
	if err := server.Run(cfg); err != nil {
		logrus.WithError(err).Fatal("server terminated")
	}
}
