package teaprogram

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/flytaly/mdsite/pkg/fswatcher"
	"github.com/flytaly/mdsite/pkg/log"
	"github.com/flytaly/mdsite/pkg/site"
	"github.com/gookit/color"
)

const maxLogLines = 10

type model struct {
	ctx      context.Context
	cancel   context.CancelFunc
	gen      *site.Generator
	watcher  fswatcher.FsWatcher
	interval time.Duration
	root     string

	changes chan changesMsg
	logChan chan log.Record
	done    chan struct{}

	report      *site.Report
	buildErr    error
	watchErr    error
	lastChanges []fswatcher.Event
	logs        []log.Record

	building bool
	pending  bool // changes arrived during a build
	showLog  bool
	quitting bool
	width    int
	help     help.Model
}

// Init builds the site and starts watching the sources
func (m model) Init() tea.Cmd {
	return tea.Batch(
		rebuild(m.ctx, m.gen),
		listenForChanges(m.watcher, m.changes, m.done),
		waitForChanges(m.changes),
		waitForLogs(m.logChan),
		watch(m),
	)
}

func watch(m model) tea.Cmd {
	return func() tea.Msg {
		go func() {
			if err := m.watcher.Start(m.interval); err != nil {
				m.logChan <- log.Record{Level: log.LevelError, Time: time.Now(), Message: err.Error()}
			}
		}()
		return nil
	}
}

func (m model) startBuild() (model, tea.Cmd) {
	if m.building {
		m.pending = true
		return m, nil
	}
	m.building = true
	m.pending = false
	return m, rebuild(m.ctx, m.gen)
}

func (m model) quit() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}
	m.quitting = true
	m.cancel()
	close(m.done)
	_ = m.watcher.Close()
	return m, tea.Quit
}

// Update is called when messages are received. The idea is that you inspect the
// message and send back an updated model accordingly. You can also return
// a command, which is a function that performs I/O and returns a message.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m.quit()
		case key.Matches(msg, keys.Log):
			m.showLog = !m.showLog
			return m, nil
		case key.Matches(msg, keys.Rebuild):
			return m.startBuild()
		}
	case changesMsg:
		m.lastChanges = msg
		next, cmd := m.startBuild()
		return next, tea.Batch(cmd, waitForChanges(m.changes))
	case buildMsg:
		m.building = false
		m.report, m.buildErr = msg.report, msg.err
		if m.pending {
			return m.startBuild()
		}
		return m, nil
	case watchErrMsg:
		m.watchErr = msg.err
		return m, listenForChanges(m.watcher, m.changes, m.done)
	case log.Record:
		m.logs = append(m.logs, msg)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}
		return m, waitForLogs(m.logChan)
	}
	return m, nil
}

// View returns a string based on data in the model. That string which will be
// rendered to the terminal.
func (m model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder

	fmt.Fprintf(&sb, " %s  Watch path: %s\n", color.Green.Sprint("➜"), color.Cyan.Sprint(m.root))
	if len(m.lastChanges) > 0 {
		sb.WriteString(printChanges(m.lastChanges, 5, m.width))
	}
	if m.building {
		sb.WriteString(" building...\n")
	} else if s := Summary(m.report, m.buildErr, m.width); s != "" {
		sb.WriteString(s + "\n")
	}
	if m.watchErr != nil {
		fmt.Fprintf(&sb, " %s %s\n", color.Yellow.Sprint("watcher:"), m.watchErr)
	}
	if m.showLog {
		sb.WriteString("\n")
		for _, r := range m.logs {
			sb.WriteString(" " + r.String() + "\n")
		}
	}
	sb.WriteString("\n " + m.help.View(keys))
	return sb.String()
}

// shouldSkip ignores hidden and excluded directories
func shouldSkip(fi fs.FileInfo) bool {
	return fi.IsDir() && site.ShouldSkipDir(fi.Name())
}

// NewProgram creates a program that rebuilds the site at root whenever its
// content, static files or template change. Logs are shown in the program and
// also written to logger if it is not nil.
func NewProgram(root string, cfg site.Config, logger log.Logger) *tea.Program {
	return tea.NewProgram(newModel(os.DirFS(root), root, cfg, logger))
}

func newModel(fsys fs.FS, root string, cfg site.Config, logger log.Logger) model {
	logChan := make(chan log.Record, 64)
	var genLog log.Logger = log.NewChanLog(logChan)
	if logger != nil {
		genLog = log.MultiLog{genLog, logger}
	}
	gen := site.New(fsys, root, cfg, genLog)
	cfg = gen.Config()

	watcher := fswatcher.NewFsPoller(fsys, root)
	watcher.AddShouldSkipHook(shouldSkip)
	for _, p := range []string{cfg.ContentDir, cfg.StaticDir, cfg.Template} {
		if _, err := watcher.Add(p); err != nil {
			logChan <- log.Record{Level: log.LevelWarning, Time: time.Now(), Message: fmt.Sprintf("not watching %s: %v", p, err)}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return model{
		ctx:      ctx,
		cancel:   cancel,
		gen:      gen,
		watcher:  watcher,
		interval: cfg.Interval,
		root:     root,
		changes:  make(chan changesMsg),
		logChan:  logChan,
		done:     make(chan struct{}),
		building: true,
		help:     help.New(),
	}
}
