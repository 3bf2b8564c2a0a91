package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	internalApp "github.com/haierkeys/simple-note-service/internal/app"
	"github.com/haierkeys/simple-note-service/pkg/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

type noteFlags struct {
	apiURL  string
	timeout time.Duration
	title   string
	content string
	creator string
}

func init() {
	nf := new(noteFlags)

	noteCmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes through the backend API",
	}
	pf := noteCmd.PersistentFlags()
	pf.StringVarP(&nf.apiURL, "api", "a", "", "backend url, overrides API_URL")
	pf.DurationVar(&nf.timeout, "timeout", 10*time.Second, "request timeout")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, ctx, cancel, err := nf.client(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			notes, err := api.List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes found.")
				return nil
			}
			for _, n := range notes {
				fmt.Fprint(out, formatNoteListItem(n))
			}
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			api, ctx, cancel, err := nf.client(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			n, err := api.Get(ctx, id)
			if err != nil {
				return err
			}
			printNote(cmd.OutOrStdout(), n)
			return nil
		},
	}

	createCmd := &cobra.Command{
		Use:   "create --title <title> --content <content> [--creator <name>]",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, ctx, cancel, err := nf.client(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			n, err := api.Create(ctx, nf.input())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success(fmt.Sprintf("Note created! (id: %d)", n.ID)))
			return nil
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update <id> --title <title> --content <content> [--creator <name>]",
		Short: "Update a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			api, ctx, cancel, err := nf.client(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			msg, err := api.Update(ctx, id, nf.input())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success(msg))
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			api, ctx, cancel, err := nf.client(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			msg, err := api.Delete(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success(msg))
			return nil
		},
	}

	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		fs := c.Flags()
		fs.StringVar(&nf.title, "title", "", "note title")
		fs.StringVar(&nf.content, "content", "", "note content")
		fs.StringVar(&nf.creator, "creator", "", "note creator, empty for none")
		_ = c.MarkFlagRequired("title")
		_ = c.MarkFlagRequired("content")
	}

	noteCmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd)
	rootCmd.AddCommand(noteCmd)
}

// client 根据 --api 或 API_URL 创建客户端
func (f *noteFlags) client(cmd *cobra.Command) (*client.Client, context.Context, context.CancelFunc, error) {
	apiURL := f.apiURL
	if apiURL == "" {
		cfg, err := internalApp.DefaultConfig()
		if err != nil {
			return nil, nil, nil, err
		}
		apiURL = cfg.UI.ApiUrl
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
	return client.New(apiURL, client.WithTimeout(f.timeout)), ctx, cancel, nil
}

func (f *noteFlags) input() client.NoteInput {
	in := client.NoteInput{Title: f.title, Content: f.content}
	if c := strings.TrimSpace(f.creator); c != "" {
		in.Creator = &c
	}
	return in
}

func parseNoteID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}

func formatNoteListItem(n client.Note) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %s  %s %s\n", faint(n.ID), bold(n.Title), faint("by "+n.CreatorOr("Unknown"))))
	sb.WriteString(fmt.Sprintf("      %s %s\n", faint("Created:"), faint(n.TimeCreated.Format("2006-01-02 15:04"))))
	return sb.String()
}

func printNote(w io.Writer, n *client.Note) {
	fmt.Fprintf(w, "%s\n", bold(n.Title))
	fmt.Fprintf(w, "%s %s\n", faint("ID:"), faint(n.ID))
	fmt.Fprintf(w, "%s %s\n", faint("Creator:"), cyan(n.CreatorOr("Unknown")))
	fmt.Fprintf(w, "%s %s\n", faint("Created:"), faint(n.TimeCreated.Format("2006-01-02 15:04")))
	if n.TimeUpdated != nil {
		fmt.Fprintf(w, "%s %s\n", faint("Updated:"), faint(n.TimeUpdated.Format("2006-01-02 15:04")))
	}
	fmt.Fprintln(w, faint(strings.Repeat("-", 50)))
	fmt.Fprintln(w, n.Content)
}

func success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}
