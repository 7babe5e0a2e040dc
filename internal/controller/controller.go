// Package controller owns the lifecycle of the background focus task:
// start/stop of a cancellable run on its own goroutine, guaranteed
// environment cleanup on stop, and line-by-line relaying of the task's
// log output to a consumer queue.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Paarth01/Auto-Focus-Mode/internal/config"
	"github.com/Paarth01/Auto-Focus-Mode/internal/logrelay"
)

// Status is the controller's last-known state. It reflects the last
// transition, not the live goroutine: after Stop returns there is a
// brief window where the task is still unwinding.
type Status string

const (
	StatusIdle    Status = "Idle"
	StatusRunning Status = "Running"
)

// Runner is the long-running operation the controller supervises. Run
// must honor ctx cancellation and return once it is observed.
type Runner interface {
	Run(ctx context.Context) error
}

// Restorer reverts any external environment state the runner may have
// altered. Implementations must be idempotent and tolerate being called
// when no mutation ever happened.
type Restorer interface {
	Restore() error
}

// Controller runs at most one background task at a time.
type Controller struct {
	runner      Runner
	restorer    Restorer
	stopTimeout time.Duration
	queue       *logrelay.Queue

	// Original sinks the relays forward to. Overridable in tests.
	Stdout io.Writer
	Stderr io.Writer

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates an idle controller.
func New(cfg *config.Config, runner Runner, restorer Restorer) *Controller {
	return &Controller{
		runner:      runner,
		restorer:    restorer,
		stopTimeout: cfg.Controller.StopTimeout,
		queue:       logrelay.NewQueue(),
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Logs returns the queue receiving the task's output lines. The holder
// is the single consumer; Drain it to read.
func (c *Controller) Logs() *logrelay.Queue {
	return c.queue
}

// Status reports the last-known controller state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return StatusRunning
	}
	return StatusIdle
}

// Start launches the background task. It returns false without side
// effects if a task is already running, true as soon as the task is
// launched; it never waits for the task to finish and never panics.
func (c *Controller) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return false
	}

	// Drop lines left over from the previous run.
	c.queue.Clear()

	outRelay := logrelay.NewRelay(c.Stdout, c.queue, logrelay.OriginStdout)
	errRelay := logrelay.NewRelay(c.Stderr, c.queue, logrelay.OriginStderr)

	// Route the log package through the relay for the duration of the
	// run; the completion handler restores the previous writer.
	prevLogOutput := log.Writer()
	log.SetOutput(outRelay)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.cancel = cancel
	c.done = done
	c.running = true

	go c.run(ctx, outRelay, errRelay, prevLogOutput, done)

	return true
}

// run hosts the task on its own goroutine. The deferred completion
// handler executes whether the task returns normally, is cancelled, or
// panics.
func (c *Controller) run(ctx context.Context, outRelay, errRelay *logrelay.Relay, prevLogOutput io.Writer, done chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(errRelay, "focus task panic: %v\n", r)
		}
		outRelay.Flush()
		errRelay.Flush()
		log.SetOutput(prevLogOutput)
		close(done)
	}()

	err := c.runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(errRelay, "focus task error: %v\n", err)
	}
}

// Stop cancels the running task, restores the external environment, and
// transitions to Idle. It returns false if nothing is running. The
// transition is optimistic: Stop reports success immediately and then
// waits at most the configured timeout for the task goroutine to exit,
// abandoning it if the timeout elapses. Cleanup failures are logged,
// never raised.
func (c *Controller) Stop() bool {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return false
	}

	cancel := c.cancel
	done := c.done
	c.running = false
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	cancel()

	if err := c.restorer.Restore(); err != nil {
		log.Printf("focus cleanup: %v", err)
	}

	select {
	case <-done:
	case <-time.After(c.stopTimeout):
		log.Printf("focus task did not exit within %v, abandoning", c.stopTimeout)
	}

	return true
}
