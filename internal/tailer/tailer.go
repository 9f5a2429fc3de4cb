// Package tailer follows a growing log file and hands out what was appended
// as complete lines.
package tailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Tailer follows one file. The directory is watched rather than the file so
// that a rotated log (renamed away and recreated) is picked up.
type Tailer struct {
	path      string
	fromStart bool

	file    *os.File
	offset  int64
	partial []byte
}

// New creates a Tailer for path. With fromStart the existing content is
// delivered first; otherwise only what is written after Run starts.
func New(path string, fromStart bool) *Tailer {
	return &Tailer{path: filepath.Clean(path), fromStart: fromStart}
}

// Run blocks until ctx is done, calling onChunk with every batch of new
// complete lines. onChunk runs on the Run goroutine.
func (t *Tailer) Run(ctx context.Context, onChunk func(chunk string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(t.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(t.path), err)
	}
	if err := t.open(!t.fromStart); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	defer t.close()

	log.Info().Str("path", t.path).Msg("following log file")
	t.drain(onChunk)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != t.path {
				continue
			}
			switch {
			case event.Has(fsnotify.Create):
				log.Info().Str("path", t.path).Msg("log file recreated, reading from the start")
				t.close()
				if err := t.open(false); err != nil {
					log.Warn().Err(err).Msg("reopen log file")
					continue
				}
				t.drain(onChunk)
			case event.Has(fsnotify.Write):
				t.drain(onChunk)
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				t.drain(onChunk)
				t.close()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (t *Tailer) open(seekEnd bool) error {
	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	t.file = f
	t.offset = 0
	t.partial = nil
	if seekEnd {
		off, err := f.Seek(0, io.SeekEnd)
		if err != nil {
			f.Close()
			t.file = nil
			return fmt.Errorf("seek log file: %w", err)
		}
		t.offset = off
	}
	return nil
}

func (t *Tailer) close() {
	if t.file != nil {
		t.file.Close()
		t.file = nil
	}
}

// drain reads everything appended since the last call. A shrunken file was
// truncated in place and is read again from the start.
func (t *Tailer) drain(onChunk func(string)) {
	if t.file == nil {
		if err := t.open(false); err != nil {
			return
		}
	}
	info, err := t.file.Stat()
	if err != nil {
		log.Warn().Err(err).Msg("stat log file")
		return
	}
	if info.Size() < t.offset {
		log.Info().Str("path", t.path).Msg("log file truncated, reading from the start")
		t.offset = 0
		t.partial = nil
	}
	if info.Size() == t.offset {
		return
	}

	buf := make([]byte, info.Size()-t.offset)
	n, err := t.file.ReadAt(buf, t.offset)
	if err != nil && !errors.Is(err, io.EOF) {
		log.Warn().Err(err).Msg("read log file")
		return
	}
	t.offset += int64(n)

	data := append(t.partial, buf[:n]...)
	end := bytes.LastIndexByte(data, '\n')
	if end < 0 {
		t.partial = data
		return
	}
	t.partial = append([]byte(nil), data[end+1:]...)
	onChunk(string(data[:end+1]))
}
