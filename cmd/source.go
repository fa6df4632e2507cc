package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"sapcli/internal/adt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// sourceObject is a repository object with editable main source.
type sourceObject interface {
	Name() string
	Text(ctx context.Context) (string, error)
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
	ChangeText(ctx context.Context, content string) error
	Activate(ctx context.Context) error
	Create(ctx context.Context, corrNr string) (*adt.Response, error)
}

type sourceKind struct {
	name  string
	short string
	new   func(conn adt.Connector, name, pkg string, meta *adt.CoreData) sourceObject
}

var sourceKinds = map[string]sourceKind{}

func registerSourceKind(kind sourceKind) {
	sourceKinds[kind.name] = kind
	rootCmd.AddCommand(newSourceCmd(kind))
}

func lookupKind(name string) (sourceKind, error) {
	kind, ok := sourceKinds[strings.ToLower(name)]
	if !ok {
		return sourceKind{}, fmt.Errorf("unsupported object type: %s (expected program or class)", name)
	}
	return kind, nil
}

// writeSource uploads content under a lock. The lock is released even when
// the upload fails.
func writeSource(ctx context.Context, obj sourceObject, content string) (err error) {
	if err := obj.Lock(ctx); err != nil {
		return fmt.Errorf("failed to lock %s: %w", obj.Name(), err)
	}
	defer func() {
		if uerr := obj.Unlock(ctx); uerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to unlock %s: %w", obj.Name(), uerr))
		}
	}()

	if err := obj.ChangeText(ctx, content); err != nil {
		return fmt.Errorf("failed to write %s: %w", obj.Name(), err)
	}
	return nil
}

// readSource reads a local file, or stdin for "-".
func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func newCoreData(description string) *adt.CoreData {
	c := &adt.CoreData{Description: description, Language: "EN", MasterLanguage: "EN"}
	if p, err := GetCurrentProfile(); err == nil {
		c.Responsible = strings.ToUpper(p.User)
	}
	return c
}

func newSourceCmd(kind sourceKind) *cobra.Command {
	var (
		corrNr   string
		activate bool
	)

	parent := &cobra.Command{
		Use:   kind.name,
		Short: kind.short,
	}

	createCmd := &cobra.Command{
		Use:   "create <name> <description> <package>",
		Short: fmt.Sprintf("Create a new %s", kind.name),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openConnection()
			if err != nil {
				return err
			}

			obj := kind.new(conn, args[0], args[2], newCoreData(args[1]))
			if _, err := obj.Create(cmd.Context(), corrNr); err != nil {
				return fmt.Errorf("failed to create %s %s: %w", kind.name, args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", kind.name, strings.ToUpper(args[0]))
			return nil
		},
	}
	createCmd.Flags().StringVar(&corrNr, "corrnr", "", "transport request (correction number)")

	readCmd := &cobra.Command{
		Use:   "read <name>",
		Short: fmt.Sprintf("Print the source code of a %s", kind.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openConnection()
			if err != nil {
				return err
			}

			text, err := kind.new(conn, args[0], "", nil).Text(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read %s %s: %w", kind.name, args[0], err)
			}

			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	writeCmd := &cobra.Command{
		Use:   "write <name> <file|->",
		Short: fmt.Sprintf("Replace the source code of a %s", kind.name),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readSource(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}

			conn, err := openConnection()
			if err != nil {
				return err
			}

			obj := kind.new(conn, args[0], "", nil)
			if err := writeSource(cmd.Context(), obj, content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s %s (%s)\n", kind.name, strings.ToUpper(args[0]),
				humanize.Bytes(uint64(len(content))))

			if !activate {
				return nil
			}
			return activateObject(cmd.Context(), cmd.OutOrStdout(), obj)
		},
	}
	writeCmd.Flags().BoolVarP(&activate, "activate", "a", false, "activate after upload")

	activateCmd := &cobra.Command{
		Use:   "activate <name>",
		Short: fmt.Sprintf("Activate a %s", kind.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openConnection()
			if err != nil {
				return err
			}
			return activateObject(cmd.Context(), cmd.OutOrStdout(), kind.new(conn, args[0], "", nil))
		},
	}

	parent.AddCommand(createCmd, readCmd, writeCmd, activateCmd)
	return parent
}

func activateObject(ctx context.Context, out io.Writer, obj sourceObject) error {
	if err := obj.Activate(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Activated %s\n", strings.ToUpper(obj.Name()))
	return nil
}
