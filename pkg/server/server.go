// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause

// Package server accepts TCP connections and feeds the request engine,
// one request per connection, one handling goroutine per connection.
package server

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/shimson94/multithreaded-firewall-server/pkg/engine"
)

// requestBufferSize bounds a single raw request read from the peer.
const requestBufferSize = 1024

// Config holds TCP server configuration.
type Config struct {
	// Host is the address to bind the listener to.
	Host string

	// Port is the TCP port to listen on.
	Port int

	// ReadTimeout is the receive deadline per connection. A peer that
	// sends nothing within it is dropped without a response.
	ReadTimeout time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:        "0.0.0.0",
		Port:        8080,
		ReadTimeout: 10 * time.Second,
	}
}

// Server is the connection dispatcher. Each accepted connection gets
// its own goroutine that performs exactly one receive, one engine
// transaction and one send, then closes the connection.
type Server struct {
	config   *Config
	engine   engine.Service
	listener net.Listener
}

// New creates a server over the given engine.
func New(cfg *Config, eng engine.Service) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Server{
		config: cfg,
		engine: eng,
	}
}

// Start binds the listener and runs the accept loop in a background
// goroutine. This method returns immediately.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	log.Infof("Server started on %s", listener.Addr())

	go s.acceptLoop()
	return nil
}

// Stop closes the listener. In-flight connection handlers finish on
// their own; each holds the engine lock only briefly and never blocks
// on I/O while holding it.
func (s *Server) Stop() error {
	if s.listener == nil {
		return nil
	}
	log.Info("Shutting down server...")
	return s.listener.Close()
}

// Addr returns the listener address, or nil before Start. Useful for
// tests binding port 0.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Errorf("Accept failed: %v", err)
			continue
		}

		log.Debugf("Accepted connection from %s", conn.RemoteAddr())
		go s.handleConn(conn)
	}
}

// handleConn processes exactly one request on conn. Transport failures
// drop the connection silently; the engine is never invoked for them.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout)); err != nil {
		log.Errorf("Failed to set read deadline for %s: %v", conn.RemoteAddr(), err)
		return
	}

	buf := make([]byte, requestBufferSize)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		log.Debugf("Dropping connection from %s: %v", conn.RemoteAddr(), err)
		return
	}

	// Frame the request as a single line: everything up to the first
	// newline. TrimSpace in the engine eats any stray carriage return.
	line, _, _ := strings.Cut(string(buf[:n]), "\n")

	resp := s.engine.Process(line)

	if _, err := conn.Write([]byte(resp)); err != nil {
		log.Debugf("Failed to write response to %s: %v", conn.RemoteAddr(), err)
		return
	}

	log.Debugf("Completed request from %s", conn.RemoteAddr())
}
