// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/taskboard/internal/client"
)

const defaultURL = "http://localhost:8080/api"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	url      string
	email    string
	password string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "taskctl",
		Short: "Command-line client for the Taskboard API",
		Long: `taskctl signs in to a Taskboard server and manages tasks.

Credentials come from --email/--password or the TASKBOARD_EMAIL and
TASKBOARD_PASSWORD environment variables.

Session cookies are Secure, so refreshing an expired access token only
works when --url uses https. Over plain http every command still signs in
with the credentials first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.url, "url", envOr("TASKBOARD_URL", defaultURL), "API base URL (https required for token refresh)")
	flags.StringVar(&opts.email, "email", os.Getenv("TASKBOARD_EMAIL"), "account email")
	flags.StringVar(&opts.password, "password", os.Getenv("TASKBOARD_PASSWORD"), "account password")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log refresh and retry events to stderr")

	rootCmd.AddCommand(
		registerCmd(opts),
		whoamiCmd(opts),
		tasksCmd(opts),
	)

	return rootCmd
}

// newClient builds a client with a fresh session for one invocation.
func (opts *globalOptions) newClient() (*client.Client, error) {
	clientOpts := []client.Option{}
	if opts.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		clientOpts = append(clientOpts, client.WithLogger(logger))
	}
	return client.New(opts.url, client.NewSession(), clientOpts...)
}

// signedIn returns a client whose session is open.
func (opts *globalOptions) signedIn(ctx context.Context) (*client.Client, error) {
	if opts.email == "" || opts.password == "" {
		return nil, errors.New("--email and --password are required")
	}

	api, err := opts.newClient()
	if err != nil {
		return nil, err
	}

	if _, err := api.Login(ctx, opts.email, opts.password); err != nil {
		return nil, err
	}
	return api, nil
}

func registerCmd(opts *globalOptions) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account with the given credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.email == "" || opts.password == "" {
				return errors.New("--email and --password are required")
			}

			api, err := opts.newClient()
			if err != nil {
				return err
			}

			result, err := api.Register(cmd.Context(), opts.email, opts.password, role)
			if err != nil {
				return err
			}
			return printJSON(cmd, result.User)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "account role (user or admin)")
	return cmd
}

func whoamiCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the identity the server sees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := opts.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			identity, err := api.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, identity)
		},
	}
}

// printJSON writes value as indented JSON to the command output.
func printJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
