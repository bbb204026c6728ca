package teaprogram

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/flytaly/mdsite/pkg/fswatcher"
	"github.com/flytaly/mdsite/pkg/log"
	"github.com/flytaly/mdsite/pkg/site"
)

type changesMsg []fswatcher.Event

type buildMsg struct {
	report *site.Report
	err    error
}

type watchErrMsg struct{ err error }

// listenForChanges collects watcher events until a scan completes and sends
// them as one batch. It returns when the watcher is closed.
func listenForChanges(w fswatcher.FsWatcher, changes chan<- changesMsg, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		var batch []fswatcher.Event
		for {
			select {
			case e := <-w.Events():
				batch = append(batch, e)
			case <-w.ScanComplete():
				if len(batch) == 0 {
					continue
				}
				select {
				case changes <- changesMsg(batch):
				case <-done:
					return nil
				}
				batch = nil
			case err := <-w.Errors():
				return watchErrMsg{err}
			case <-done:
				return nil
			}
		}
	}
}

func waitForChanges(changes <-chan changesMsg) tea.Cmd {
	return func() tea.Msg {
		return <-changes
	}
}

func waitForLogs(logChan <-chan log.Record) tea.Cmd {
	return func() tea.Msg {
		return <-logChan
	}
}

func rebuild(ctx context.Context, gen *site.Generator) tea.Cmd {
	return func() tea.Msg {
		report, err := gen.Build(ctx)
		return buildMsg{report: report, err: err}
	}
}
