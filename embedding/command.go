// SPDX-License-Identifier: MIT
// Package: itemnet/embedding
//
// command.go — subprocess backend speaking JSON lines.
//
// Protocol (one JSON object per line):
//
//	→ {"model":"all-MiniLM-L6-v2","normalize":true}        config, once
//	← {"status":"ready","embedding_dim":384}               handshake
//	→ {"texts":["first phrase","second phrase"]}           per Embed call
//	← {"embeddings":[[...],[...]]} | {"error":"message"}
//
// The process stays up for the life of the provider; Close ends it.

package embedding

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"
)

// maxLine bounds one response line; 4096 texts × 1024 dims fit comfortably.
const maxLine = 256 << 20

// CommandConfig configures the subprocess backend.
type CommandConfig struct {
	Argv    []string      // program and arguments
	Env     []string      // extra KEY=VALUE entries appended to os.Environ()
	Model   string        // sent in the config line
	Timeout time.Duration // handshake timeout (default 2m, model loading is slow)
	Logger  *zap.Logger
}

type commandConfigLine struct {
	Model     string `json:"model"`
	Normalize bool   `json:"normalize"`
}

type commandReady struct {
	Status       string `json:"status"`
	EmbeddingDim int    `json:"embedding_dim"`
	Error        string `json:"error,omitempty"`
}

type commandRequest struct {
	Texts []string `json:"texts"`
}

type commandResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Error      string      `json:"error,omitempty"`
}

// Command is a Provider backed by a long-lived subprocess.
// Calls are serialized; the protocol has one request in flight.
type Command struct {
	model  string
	dims   int
	logger *zap.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	lines  *bufio.Scanner
	closed bool
}

// StartCommand launches the subprocess and completes the handshake.
func StartCommand(ctx context.Context, cfg CommandConfig) (*Command, error) {
	if len(cfg.Argv) == 0 {
		return nil, fmt.Errorf("StartCommand: empty argv: %w", ErrProvider)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	cmd := exec.Command(cfg.Argv[0], cfg.Argv[1:]...)
	cmd.Env = append(os.Environ(), cfg.Env...)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err = cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		return nil, fmt.Errorf("start %s: %w", cfg.Argv[0], err)
	}

	lines := bufio.NewScanner(stdout)
	lines.Buffer(make([]byte, 0, 64<<10), maxLine)
	c := &Command{
		model:  cfg.Model,
		logger: logger.With(zap.String("backend", BackendCommand), zap.String("program", cfg.Argv[0])),
		cmd:    cmd,
		stdin:  stdin,
		lines:  lines,
	}

	hctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	var ready commandReady
	if err = c.roundTrip(hctx, commandConfigLine{Model: cfg.Model, Normalize: true}, &ready); err != nil {
		c.kill()
		return nil, fmt.Errorf("handshake: %w", err)
	}
	if ready.Status != "ready" {
		c.kill()
		return nil, fmt.Errorf("handshake: status %q: %s", ready.Status, ready.Error)
	}
	c.dims = ready.EmbeddingDim
	c.logger.Debug("embedding process ready", zap.Int("embedding_dim", c.dims))
	return c, nil
}

// Embed sends one request line and decodes one response line.
func (c *Command) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}

	var resp commandResponse
	if err := c.roundTrip(ctx, commandRequest{Texts: texts}, &resp); err != nil {
		c.kill()
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("process error: %s", resp.Error)
	}
	return resp.Embeddings, nil
}

// roundTrip writes req as one line and decodes the next line into resp.
// A cancelled ctx abandons the read; the caller then kills the process,
// which unblocks the reader.
func (c *Command) roundTrip(ctx context.Context, req, resp any) error {
	line, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	line = append(line, '\n')
	if _, err = c.stdin.Write(line); err != nil {
		return fmt.Errorf("write request: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		if !c.lines.Scan() {
			if err := c.lines.Err(); err != nil {
				done <- fmt.Errorf("read response: %w", err)
				return
			}
			done <- fmt.Errorf("read response: %w", io.ErrUnexpectedEOF)
			return
		}
		if err := json.Unmarshal(c.lines.Bytes(), resp); err != nil {
			done <- fmt.Errorf("parse response: %w", err)
			return
		}
		done <- nil
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err = <-done:
		return err
	}
}

// kill stops the process; later calls fail with ErrClosed.
func (c *Command) kill() {
	c.closed = true
	if c.stdin != nil {
		_ = c.stdin.Close()
	}
	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
		_ = c.cmd.Wait()
	}
}

// Dimensions returns the length announced in the handshake.
func (c *Command) Dimensions() int { return c.dims }

// Model returns the configured model name.
func (c *Command) Model() string { return c.model }

// Close closes stdin, giving the process a chance to exit cleanly, then
// waits for it.
func (c *Command) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	_ = c.stdin.Close()
	done := make(chan error, 1)
	go func() { done <- c.cmd.Wait() }()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		_ = c.cmd.Process.Kill()
		return <-done
	}
}
