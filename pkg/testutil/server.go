// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause

// Package testutil provides utilities for testing the firewall server.
// It starts servers on ephemeral loopback ports and sends single framed
// requests the way the reference client does.
package testutil

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/shimson94/multithreaded-firewall-server/pkg/engine"
	"github.com/shimson94/multithreaded-firewall-server/pkg/rule"
	"github.com/shimson94/multithreaded-firewall-server/pkg/server"
)

// StartServer starts a firewall server on an ephemeral loopback port
// and registers cleanup with t. It returns the server and its engine.
func StartServer(t *testing.T) (*server.Server, *engine.Engine) {
	t.Helper()

	eng := engine.New(rule.NewStore())
	srv := server.New(&server.Config{
		Host:        "127.0.0.1",
		Port:        0,
		ReadTimeout: 5 * time.Second,
	}, eng)

	if err := srv.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	t.Cleanup(func() {
		_ = srv.Stop()
	})

	return srv, eng
}

// SendRequest dials addr, writes one request line and reads the full
// response until the server closes the connection.
func SendRequest(t *testing.T, addr net.Addr, line string) string {
	t.Helper()

	conn, err := net.DialTimeout("tcp", addr.String(), 5*time.Second)
	if err != nil {
		t.Fatalf("failed to dial %s: %v", addr, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("failed to set deadline: %v", err)
	}

	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		t.Fatalf("failed to send request: %v", err)
	}

	resp, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return string(resp)
}
