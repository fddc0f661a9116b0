// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/taskboard/internal/client"
)

func tasksCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List, show, create, update and delete tasks",
	}

	cmd.AddCommand(
		tasksListCmd(opts),
		tasksGetCmd(opts),
		tasksCreateCmd(opts),
		tasksUpdateCmd(opts),
		tasksDeleteCmd(opts),
	)
	return cmd
}

func tasksListCmd(opts *globalOptions) *cobra.Command {
	var listOpts client.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible tasks (admins see everyone's)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := opts.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			tasks, meta, err := api.ListTasks(cmd.Context(), listOpts)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"tasks": tasks, "meta": meta})
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&listOpts.Page, "page", 0, "page number")
	flags.IntVar(&listOpts.Limit, "limit", 0, "page size")
	flags.StringSliceVar(&listOpts.Statuses, "status", nil, "filter by status (Pending, Completed)")
	flags.BoolVar(&listOpts.HideDeleted, "hide-deleted", false, "omit soft-deleted tasks")
	return cmd
}

func tasksGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := opts.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			task, err := api.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, task)
		},
	}
}

func tasksCreateCmd(opts *globalOptions) *cobra.Command {
	var input client.TaskInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := opts.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			task, err := api.CreateTask(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd, task)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Title, "title", "", "task title")
	flags.StringVar(&input.Description, "description", "", "task description")
	flags.StringVar(&input.Status, "status", "", "initial status (default Pending)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func tasksUpdateCmd(opts *globalOptions) *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags that were set are sent.
			update := client.TaskUpdate{}
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("status") {
				update.Status = &status
			}

			api, err := opts.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			task, err := api.UpdateTask(cmd.Context(), args[0], update)
			if err != nil {
				return err
			}
			return printJSON(cmd, task)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "new title")
	flags.StringVar(&description, "description", "", "new description")
	flags.StringVar(&status, "status", "", "new status (Pending, Completed)")
	return cmd
}

func tasksDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task (admin only; run twice to remove it for good)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := opts.signedIn(cmd.Context())
			if err != nil {
				return err
			}

			result, err := api.DeleteTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}
