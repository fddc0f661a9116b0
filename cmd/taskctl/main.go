// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command taskctl drives the Taskboard API from the terminal.
//
// Every invocation opens its own session: it logs in with the given
// credentials (or registers them) and then runs the command.
//
//	taskctl --url http://localhost:8080/api --email me@example.com --password '...' tasks list
//
// Flags fall back to TASKBOARD_URL, TASKBOARD_EMAIL and TASKBOARD_PASSWORD.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
