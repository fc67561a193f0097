package main

import (
	"fmt"

	"github.com/Jumpaku/go-drivemirror"
	"github.com/spf13/cobra"
)

var (
	deleteArgs struct {
		from string
	}

	deleteCmd = &cobra.Command{
		Use:   "delete <id>",
		Short: "Move a file or a whole folder subtree to the trash",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteItem,
	}

	restoreCmd = &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a file or a whole folder subtree from the trash",
		Args:  cobra.ExactArgs(1),
		RunE:  restoreItem,
	}

	moveCmd = &cobra.Command{
		Use:   "move <id> <new-parent-id>",
		Short: "Move a file or folder under another folder",
		Args:  cobra.ExactArgs(2),
		RunE:  moveItem,
	}
)

func init() {
	deleteCmd.Flags().StringVar(&deleteArgs.from, "from", "", "Move every node under this folder id before trashing it")

	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(moveCmd)
}

func deleteItem(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, id := cmd.Context(), drivemirror.FileID(args[0])

	item, err := session.Provider().Stat(ctx, id)
	if err != nil {
		return err
	}
	if !item.IsFolder {
		if deleteArgs.from != "" {
			if err := session.Move(ctx, id, drivemirror.FileID(deleteArgs.from)); err != nil {
				return err
			}
		}
		return session.DeleteFile(ctx, id)
	}

	var count int
	if deleteArgs.from != "" {
		count, err = session.DeleteFolderFrom(ctx, id, drivemirror.FileID(deleteArgs.from))
	} else {
		count, err = session.DeleteFolder(ctx, id)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d items trashed\n", count)
	return nil
}

func restoreItem(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx, id := cmd.Context(), drivemirror.FileID(args[0])

	item, err := session.Provider().Stat(ctx, id)
	if err != nil {
		return err
	}
	if !item.IsFolder {
		return session.RestoreFile(ctx, id)
	}
	count, err := session.RestoreFolder(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d items restored\n", count)
	return nil
}

func moveItem(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	return session.Move(cmd.Context(), drivemirror.FileID(args[0]), drivemirror.FileID(args[1]))
}
