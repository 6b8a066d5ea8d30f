package server

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"github.com/renato0307/covdir/internal/logging"
	"github.com/renato0307/covdir/internal/ui"
)

// sessionModel wraps ui.Model to log the session lifecycle
type sessionModel struct {
	*ui.Model
	sessionID string
	startTime time.Time
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		logging.Logger.Info("SSH session ended",
			"session_id", s.sessionID,
			"duration", time.Since(s.startTime).String())
	}

	updatedModel, cmd := s.Model.Update(msg)
	if m, ok := updatedModel.(*ui.Model); ok {
		s.Model = m
	}
	return s, cmd
}

// initialView reads "<revision> [path]" from the SSH command line
func initialView(args []string) (revision, path string) {
	if len(args) > 0 {
		revision = args[0]
	}
	if len(args) > 1 {
		path = args[1]
	}
	return revision, path
}

// teaHandler creates a browser with its own FetchController for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())
	revision, path := initialView(sess.Command())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height),
		"revision", revision,
		"path", path)

	return &sessionModel{
		Model:     s.newModel(revision, path),
		sessionID: sessionID,
		startTime: time.Now(),
	}, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *Server) newModel(revision, path string) *ui.Model {
	if revision == "" {
		revision = s.config.DefaultRevision
	}
	controller := ui.NewFetchController(s.config.Lookup, s.config.Reporter, s.config.RepoSource, s.config.Timeout)
	return ui.NewModel(controller, s.config.Thresholds, revision, path)
}
