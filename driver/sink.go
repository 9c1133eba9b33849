package driver

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/gen"
)

// Sink accepts finished units. Every Open returns an independent handle, so
// workers never share a writer.
type Sink interface {
	Open(unit *gen.Unit) (Handle, error)
}

// Handle is the output of one unit. Exactly one of Commit or Abort is called;
// nothing is visible to readers of the sink before Commit.
type Handle interface {
	io.Writer
	Commit() error
	Abort() error
}

// FileSink writes each unit to its own file, via a temp file renamed into
// place on commit.
type FileSink struct {
	// Path maps a unit to its destination file
	Path func(unit *gen.Unit) string
	// Perm is the mode of created files (0644 when zero)
	Perm os.FileMode
}

// NewFileSink creates a file sink with the given path policy
func NewFileSink(path func(unit *gen.Unit) string) *FileSink {
	return &FileSink{Path: path, Perm: 0o644}
}

// Open implements Sink
func (s *FileSink) Open(unit *gen.Unit) (Handle, error) {
	dest := s.Path(unit)
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory %s", dir)
	}
	tmp, err := os.CreateTemp(dir, ".mutigen-*.tmp")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create temp file in %s", dir)
	}
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}
	return &fileHandle{tmp: tmp, dest: dest, perm: perm}, nil
}

type fileHandle struct {
	tmp  *os.File
	dest string
	perm os.FileMode
}

func (h *fileHandle) Write(p []byte) (int, error) {
	return h.tmp.Write(p)
}

func (h *fileHandle) Commit() error {
	if err := h.tmp.Close(); err != nil {
		os.Remove(h.tmp.Name())
		return errors.Wrapf(err, "failed to close %s", h.tmp.Name())
	}
	if err := os.Chmod(h.tmp.Name(), h.perm); err != nil {
		os.Remove(h.tmp.Name())
		return errors.Wrapf(err, "failed to chmod %s", h.tmp.Name())
	}
	if err := os.Rename(h.tmp.Name(), h.dest); err != nil {
		os.Remove(h.tmp.Name())
		return errors.Wrapf(err, "failed to move output into %s", h.dest)
	}
	return nil
}

func (h *fileHandle) Abort() error {
	h.tmp.Close()
	if err := os.Remove(h.tmp.Name()); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove %s", h.tmp.Name())
	}
	return nil
}

// BufferSink keeps committed units in memory, keyed by generated type name
type BufferSink struct {
	mu    sync.Mutex
	units map[string][]byte
}

// NewBufferSink creates an empty in-memory sink
func NewBufferSink() *BufferSink {
	return &BufferSink{units: make(map[string][]byte)}
}

// Open implements Sink
func (s *BufferSink) Open(unit *gen.Unit) (Handle, error) {
	return &bufferHandle{sink: s, name: unit.Name}, nil
}

// Get returns the committed text of a unit
func (s *BufferSink) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.units[name]
	return text, ok
}

// Names returns the committed unit names in sorted order
func (s *BufferSink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.units))
	for name := range s.units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type bufferHandle struct {
	sink *BufferSink
	name string
	buf  bytes.Buffer
}

func (h *bufferHandle) Write(p []byte) (int, error) {
	return h.buf.Write(p)
}

func (h *bufferHandle) Commit() error {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.units[h.name] = append([]byte(nil), h.buf.Bytes()...)
	return nil
}

func (h *bufferHandle) Abort() error {
	h.buf.Reset()
	return nil
}

// Flusher is implemented by sinks that hold committed units back until the
// whole batch has been attempted
type Flusher interface {
	Flush() error
}

// StreamSink concatenates committed units onto one writer in batch order.
// Committed units are held until Flush, so the output does not depend on
// which worker finishes first.
type StreamSink struct {
	mu      sync.Mutex
	w       io.Writer
	pending []pendingUnit
}

type pendingUnit struct {
	index int
	text  []byte
}

// NewStreamSink wraps w
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

// Open implements Sink
func (s *StreamSink) Open(unit *gen.Unit) (Handle, error) {
	return &streamHandle{sink: s, index: unit.Index}, nil
}

// Flush writes the committed units ordered by batch index and forgets them
func (s *StreamSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].index < s.pending[j].index
	})
	pending := s.pending
	s.pending = nil
	for _, p := range pending {
		if _, err := s.w.Write(p.text); err != nil {
			return errors.Wrap(err, "failed to write generated output")
		}
	}
	return nil
}

type streamHandle struct {
	sink  *StreamSink
	index int
	buf   bytes.Buffer
}

func (h *streamHandle) Write(p []byte) (int, error) {
	return h.buf.Write(p)
}

func (h *streamHandle) Commit() error {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.pending = append(h.sink.pending, pendingUnit{index: h.index, text: h.buf.Bytes()})
	return nil
}

func (h *streamHandle) Abort() error {
	h.buf.Reset()
	return nil
}
