// Package logrelay tees a task's log output to its original sink while
// collecting completed lines on a shared queue for a consumer (the CLI
// or the web API) to drain later.
package logrelay

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// Origin identifies which output channel a line came from.
type Origin string

const (
	OriginStdout Origin = "stdout"
	OriginStderr Origin = "stderr"
)

// Line is one completed, newline-delimited line of task output.
type Line struct {
	Origin Origin `json:"origin"`
	Text   string `json:"text"`
}

// Queue is a FIFO of log lines shared between the two relays (producers)
// and a single consumer.
type Queue struct {
	mu    sync.Mutex
	lines []Line
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a line to the queue.
func (q *Queue) Push(line Line) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.lines = append(q.lines, line)
}

// Drain removes and returns all queued lines in arrival order.
func (q *Queue) Drain() []Line {
	q.mu.Lock()
	defer q.mu.Unlock()
	lines := q.lines
	q.lines = nil
	return lines
}

// Clear discards any queued lines.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.lines = nil
}

// Len reports the number of queued lines.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.lines)
}

// Relay is an io.Writer that forwards every write unmodified to the
// original sink and additionally queues each completed line. Writes come
// from a single producer, but Flush may be called from another
// goroutine, so the buffer is guarded by a mutex.
type Relay struct {
	mu     sync.Mutex
	sink   io.Writer
	queue  *Queue
	origin Origin
	buf    bytes.Buffer
}

// NewRelay wraps sink, tagging queued lines with origin.
func NewRelay(sink io.Writer, queue *Queue, origin Origin) *Relay {
	return &Relay{
		sink:   sink,
		queue:  queue,
		origin: origin,
	}
}

// Write forwards p to the sink first; sink errors propagate unmodified.
// Completed lines are queued in write order with the trailing carriage
// return stripped.
func (r *Relay) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n, err := r.sink.Write(p); err != nil {
		return n, err
	}

	r.buf.Write(p)
	for {
		idx := bytes.IndexByte(r.buf.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := string(r.buf.Next(idx + 1))
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		r.queue.Push(Line{Origin: r.origin, Text: line})
	}

	return len(p), nil
}

// Flush queues any partial trailing content as a final line and clears
// the buffer. Called when the task shuts down so nothing is lost.
func (r *Relay) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.buf.Len() == 0 {
		return
	}
	line := strings.TrimSuffix(r.buf.String(), "\r")
	r.buf.Reset()
	r.queue.Push(Line{Origin: r.origin, Text: line})
}
