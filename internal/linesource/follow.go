package linesource

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"fieldscan/internal/logging"
)

// FollowConfig configures a Follow source.
type FollowConfig struct {
	// FromStart reads the whole file before waiting for appends. The
	// default is to seek to the end and deliver only new lines.
	FromStart bool
	// PollInterval re-checks the file on a timer in addition to fsnotify
	// events. Zero disables polling.
	PollInterval time.Duration
	Logger       *slog.Logger
}

// Follow tails a file, delivering complete lines as they are appended.
// ReadLine blocks until a new line is available or ctx is cancelled;
// cancellation reads as a clean end-of-input. Rotation (inode change) and
// truncation are detected and reading restarts from the top of the new
// content.
type Follow struct {
	ctx     context.Context
	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	ticker  *time.Ticker
	tickCh  <-chan time.Time

	file    *os.File
	inode   uint64
	offset  int64
	pending []byte   // bytes past the last newline seen
	queue   [][]byte // complete lines not yet handed out
}

// FollowFile opens path for tailing. The file may not exist yet; it is
// picked up when created.
func FollowFile(ctx context.Context, path string, cfg FollowConfig) (*Follow, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the parent directory so rotation and re-creation are seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	s := &Follow{
		ctx:     ctx,
		path:    path,
		logger:  logging.Default(cfg.Logger).With("component", "follow"),
		watcher: watcher,
	}

	if err := s.open(!cfg.FromStart); err != nil && !os.IsNotExist(err) {
		_ = watcher.Close()
		return nil, err
	}

	if cfg.PollInterval > 0 {
		s.ticker = time.NewTicker(cfg.PollInterval)
		s.tickCh = s.ticker.C
	}

	return s, nil
}

// ReadLine implements Source. It returns io.EOF once ctx is cancelled.
func (s *Follow) ReadLine() ([]byte, error) {
	for {
		if len(s.queue) > 0 {
			line := s.queue[0]
			s.queue = s.queue[1:]
			return line, nil
		}

		s.readAvailable()
		if len(s.queue) > 0 {
			continue
		}

		select {
		case <-s.ctx.Done():
			return nil, io.EOF

		case event, ok := <-s.watcher.Events:
			if !ok {
				return nil, io.EOF
			}
			s.handleEvent(event)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil, io.EOF
			}
			s.logger.Warn("fsnotify error", "error", err)

		case <-s.tickCh:
		}
	}
}

// Name implements Source.
func (s *Follow) Name() string { return s.path }

// Close stops watching and releases the file handle.
func (s *Follow) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	_ = s.watcher.Close()
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

// open (re)opens the file. With seekEnd set, reading starts at the current
// end so old content is not replayed.
func (s *Follow) open(seekEnd bool) error {
	f, err := os.Open(filepath.Clean(s.path))
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}

	s.file = f
	s.inode, _ = fileInode(info)
	s.offset = 0
	s.pending = nil
	if seekEnd {
		s.offset = info.Size()
	}

	s.logger.Debug("tailing file", "path", s.path, "offset", s.offset)
	return nil
}

// handleEvent reacts to a filesystem notification on the watched directory.
func (s *Follow) handleEvent(event fsnotify.Event) {
	if event.Name != s.path {
		return
	}
	switch {
	case event.Has(fsnotify.Create):
		if s.file == nil {
			if err := s.open(false); err != nil {
				s.logger.Warn("failed to open created file", "error", err)
			}
		}
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		if s.file != nil {
			_ = s.file.Close()
			s.file = nil
			s.logger.Debug("file removed, waiting for re-creation", "path", s.path)
		}
	}
}

// readAvailable pulls any bytes appended since the last read, splitting
// complete lines into the queue. A partial trailing line stays pending
// until its newline arrives.
func (s *Follow) readAvailable() {
	if s.file == nil {
		// File may have been created without a Create event reaching us.
		if err := s.open(false); err != nil {
			return
		}
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return
	}

	// Rotation: the path now points at a different file.
	if inode, ok := fileInode(info); ok && s.inode != 0 && inode != s.inode {
		s.logger.Debug("inode change detected, reopening", "path", s.path)
		_ = s.file.Close()
		s.file = nil
		if err := s.open(false); err != nil {
			return
		}
		info, err = os.Stat(s.path)
		if err != nil {
			return
		}
	}

	// Truncation: the file shrank below our position.
	if info.Size() < s.offset {
		s.logger.Debug("truncation detected, resetting", "path", s.path)
		s.offset = 0
		s.pending = nil
	}

	if info.Size() == s.offset {
		return
	}

	chunk := make([]byte, info.Size()-s.offset)
	n, err := s.file.ReadAt(chunk, s.offset)
	if n == 0 && err != nil {
		return
	}
	s.offset += int64(n)
	s.pending = append(s.pending, chunk[:n]...)
	s.splitPending()
}

// splitPending moves complete lines from the pending buffer to the queue.
func (s *Follow) splitPending() {
	for {
		nl := -1
		for i, b := range s.pending {
			if b == '\n' {
				nl = i
				break
			}
		}
		if nl < 0 {
			return
		}
		line := s.pending[:nl]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		out := make([]byte, len(line))
		copy(out, line)
		s.queue = append(s.queue, out)
		s.pending = s.pending[nl+1:]
	}
}

// fileInode extracts the inode number from file info.
func fileInode(info os.FileInfo) (uint64, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return stat.Ino, true
}
