package streaming

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ReadWriteSwap holds two exclusively-locked temp files, one serving as
// the current read source and the other as the current write sink; Swap
// flips their roles and truncates the file that becomes the new sink, so
// a multi-pass file-backed optimizer can ping-pong a circuit between
// push-T-forward and partitioning without ever holding the whole thing
// in memory.
type ReadWriteSwap struct {
	a, b    *os.File
	aIsRead bool
}

// NewReadWriteSwap takes ownership of two temp files, exclusively
// locking both so no other process can interleave writes.
func NewReadWriteSwap(a, b *os.File) (*ReadWriteSwap, error) {
	if err := unix.Flock(int(a.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return nil, fmt.Errorf("streaming: locking first tempfile: %w", err)
	}
	if err := unix.Flock(int(b.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return nil, fmt.Errorf("streaming: locking second tempfile: %w", err)
	}
	return &ReadWriteSwap{a: a, b: b, aIsRead: true}, nil
}

// NewTempReadWriteSwap creates and locks two fresh OS temp files.
func NewTempReadWriteSwap() (*ReadWriteSwap, error) {
	a, err := os.CreateTemp("", "qarrot-stream-a-*")
	if err != nil {
		return nil, fmt.Errorf("streaming: creating first tempfile: %w", err)
	}
	b, err := os.CreateTemp("", "qarrot-stream-b-*")
	if err != nil {
		a.Close()
		os.Remove(a.Name())
		return nil, fmt.Errorf("streaming: creating second tempfile: %w", err)
	}
	return NewReadWriteSwap(a, b)
}

// Read returns the file currently serving as the read source.
func (s *ReadWriteSwap) Read() *os.File {
	if s.aIsRead {
		return s.a
	}
	return s.b
}

// Write returns the file currently serving as the write sink.
func (s *ReadWriteSwap) Write() *os.File {
	if s.aIsRead {
		return s.b
	}
	return s.a
}

// Swap flips read/write roles: the file that was being written to is
// rewound so the next pass reads what was just written, and the file
// that was being read from is rewound and truncated so the next writer
// starts from empty.
func (s *ReadWriteSwap) Swap() error {
	nowWrite, nowRead := s.a, s.b
	if !s.aIsRead {
		nowWrite, nowRead = s.b, s.a
	}
	s.aIsRead = !s.aIsRead

	if _, err := nowWrite.Seek(0, os.SEEK_SET); err != nil {
		return fmt.Errorf("streaming: rewinding new write file: %w", err)
	}
	if err := nowWrite.Truncate(0); err != nil {
		return fmt.Errorf("streaming: truncating new write file: %w", err)
	}
	if _, err := nowRead.Seek(0, os.SEEK_SET); err != nil {
		return fmt.Errorf("streaming: rewinding new read file: %w", err)
	}
	return nil
}

// Close unlocks and closes both files, removing them from disk.
func (s *ReadWriteSwap) Close() error {
	var firstErr error
	for _, f := range []*os.File{s.a, s.b} {
		name := f.Name()
		unix.Flock(int(f.Fd()), unix.LOCK_UN)
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("streaming: closing tempfile: %w", err)
		}
		os.Remove(name)
	}
	return firstErr
}
