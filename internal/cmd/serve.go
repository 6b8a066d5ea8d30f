package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/renato0307/covdir/internal/config"
	"github.com/renato0307/covdir/internal/logging"
	"github.com/renato0307/covdir/internal/server"
)

// ServeCmd starts the SSH server
type ServeCmd struct {
	AuthorizedKeys string `help:"Authorized keys file (default: ~/.ssh/authorized_keys)"`
	Host           string `help:"Host to bind to (default: ssh_host setting or localhost)"`
	Port           string `help:"Port to listen on (default: ssh_port setting or 23234)"`
	Revision       string `help:"Revision shown when a client connects without one"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	settings := cli.currentSettings()

	host := s.Host
	if host == "" {
		host = settings.SSHHost
	}
	if host == "" {
		host = config.DefaultSSHHost
	}
	port := s.Port
	if port == "" {
		port = settings.SSHPort
	}
	if port == "" {
		port = config.DefaultSSHPort
	}

	logging.Logger.Info("Starting covdir SSH server",
		"host", host,
		"port", port,
		"endpoint", cli.Endpoint,
		"repo", cli.Repo)

	srv, err := server.NewServer(server.Config{
		AuthorizedKeysPath: config.ExpandPath(s.AuthorizedKeys),
		DefaultRevision:    s.Revision,
		Host:               host,
		Lookup:             cli.Container.CoverageService,
		Port:               port,
		RepoSource:         cli.Repo,
		Reporter:           cli.Container.Reporter,
		SSHDir:             config.GetSSHDir(),
		Thresholds:         settings.Thresholds(),
		Timeout:            cli.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server (blocks until shutdown)
	return srv.Start(ctx)
}
