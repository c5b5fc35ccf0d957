// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause

// firewall-client sends a single command to a running firewall server
// and prints the response. Arguments after host and port are joined
// into one request line:
//
//	firewall-client localhost 8080 A 10.0.0.1 80
package main

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"
)

const dialTimeout = 10 * time.Second

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s <serverHost> <serverPort> <command>\n", os.Args[0])
		os.Exit(1)
	}

	host := os.Args[1]
	port := os.Args[2]
	command := strings.Join(os.Args[3:], " ")

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), dialTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection failed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(dialTimeout)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set deadline: %v\n", err)
		os.Exit(1)
	}

	if _, err := conn.Write([]byte(command)); err != nil {
		fmt.Fprintf(os.Stderr, "Send failed: %v\n", err)
		os.Exit(1)
	}

	resp, err := io.ReadAll(conn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Read failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(resp))
}
