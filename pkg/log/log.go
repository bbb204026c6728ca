package log

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gookit/color"
)

type Logger interface {
	Error(format string, v ...any)
	Warning(format string, v ...any)
	Info(format string, v ...any)
	Close() error
}

type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "?"
}

// Colored returns the level name painted for terminal output
func (l Level) Colored() string {
	switch l {
	case LevelWarning:
		return color.Yellow.Sprint(l.String())
	case LevelError:
		return color.Red.Sprint(l.String())
	}
	return color.Cyan.Sprint(l.String())
}

// New returns a logger writing to the file at path, or to the terminal if
// path is empty. The file is appended to.
func New(path string) (Logger, error) {
	if path != "" {
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		return &StdLog{
			err:  log.New(file, LevelError.String()+" ", log.Ldate|log.Ltime),
			wrn:  log.New(file, LevelWarning.String()+" ", log.Ldate|log.Ltime),
			inf:  log.New(file, LevelInfo.String()+" ", log.Ldate|log.Ltime),
			file: file,
		}, nil
	}
	return NewTerminal(os.Stdout, os.Stderr), nil
}

// NewTerminal logs info to out and warnings/errors to errOut with colored
// level prefixes
func NewTerminal(out, errOut io.Writer) Logger {
	return &StdLog{
		err: log.New(errOut, LevelError.Colored()+" ", 0),
		wrn: log.New(errOut, LevelWarning.Colored()+" ", 0),
		inf: log.New(out, "", 0),
	}
}

type StdLog struct {
	err, wrn, inf *log.Logger
	file          *os.File
}

func (l *StdLog) Error(format string, v ...any) {
	_ = l.err.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Info(format string, v ...any) {
	_ = l.inf.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Warning(format string, v ...any) {
	_ = l.wrn.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Record is a single log message sent by ChanLog
type Record struct {
	Level   Level
	Time    time.Time
	Message string
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s %s", r.Time.Format("15:04:05"), r.Level.Colored(), r.Message)
}

// ChanLog sends every message as a Record to a channel. Sending blocks until
// the record is received, so the channel must be drained.
type ChanLog struct {
	records chan<- Record
	now     func() time.Time
}

func NewChanLog(records chan<- Record) *ChanLog {
	return &ChanLog{records: records, now: time.Now}
}

func (l *ChanLog) send(level Level, format string, v ...any) {
	l.records <- Record{Level: level, Time: l.now(), Message: fmt.Sprintf(format, v...)}
}

func (l *ChanLog) Error(format string, v ...any)   { l.send(LevelError, format, v...) }
func (l *ChanLog) Warning(format string, v ...any) { l.send(LevelWarning, format, v...) }
func (l *ChanLog) Info(format string, v ...any)    { l.send(LevelInfo, format, v...) }
func (l *ChanLog) Close() error                    { return nil }

type EmptyLog struct{}

func NewEmptyLog() Logger { return EmptyLog{} }

func (l EmptyLog) Error(string, ...any)   {}
func (l EmptyLog) Warning(string, ...any) {}
func (l EmptyLog) Info(string, ...any)    {}
func (l EmptyLog) Close() error           { return nil }

// MultiLog forwards every message to all of its loggers
type MultiLog []Logger

func (m MultiLog) Error(format string, v ...any) {
	for _, l := range m {
		l.Error(format, v...)
	}
}

func (m MultiLog) Warning(format string, v ...any) {
	for _, l := range m {
		l.Warning(format, v...)
	}
}

func (m MultiLog) Info(format string, v ...any) {
	for _, l := range m {
		l.Info(format, v...)
	}
}

func (m MultiLog) Close() error {
	var errs []error
	for _, l := range m {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
