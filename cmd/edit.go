package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"sapcli/internal/editor"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <program|class> <name>",
	Short: "Edit the source code of a program or class",
	Long: `Download the main source of a program or class, open it in your editor,
upload changes under a lock and activate the object.`,
	Args: cobra.ExactArgs(2),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	kind, err := lookupKind(args[0])
	if err != nil {
		return err
	}

	conn, err := openConnection()
	if err != nil {
		return err
	}

	obj := kind.new(conn, args[1], "", nil)
	return editSource(cmd.Context(), cmd.OutOrStdout(), obj, editor.Edit)
}

type editFunc func(name string, content []byte) ([]byte, bool, error)

func editSource(ctx context.Context, out io.Writer, obj sourceObject, edit editFunc) error {
	text, err := obj.Text(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", obj.Name(), err)
	}

	modified, changed, err := edit(strings.ToLower(obj.Name())+".abap", []byte(text))
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(out, "No changes, skipping upload")
		return nil
	}

	if err := writeSource(ctx, obj, string(modified)); err != nil {
		return err
	}
	fmt.Fprintf(out, "Uploaded %s (%s)\n", strings.ToUpper(obj.Name()), humanize.Bytes(uint64(len(modified))))

	return activateObject(ctx, out, obj)
}
