package main

import (
	"fmt"

	"github.com/Jumpaku/go-drivemirror"
	"github.com/spf13/cobra"
)

var (
	uploadFileArgs struct {
		parent string
	}

	uploadFileCmd = &cobra.Command{
		Use:   "upload-file <local-file>",
		Short: "Upload a single local file",
		Args:  cobra.ExactArgs(1),
		RunE:  uploadFile,
	}

	mkdirArgs struct {
		parent string
	}

	mkdirCmd = &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a remote folder",
		Args:  cobra.ExactArgs(1),
		RunE:  mkdir,
	}
)

func init() {
	uploadFileCmd.Flags().StringVar(&uploadFileArgs.parent, "parent", string(drivemirror.RootID), "Remote parent folder id")
	mkdirCmd.Flags().StringVar(&mkdirArgs.parent, "parent", string(drivemirror.RootID), "Remote parent folder id")

	rootCmd.AddCommand(uploadFileCmd)
	rootCmd.AddCommand(mkdirCmd)
}

func uploadFile(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	item, err := session.UploadFile(cmd.Context(), args[0], drivemirror.FileID(uploadFileArgs.parent))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", item.Title, item.ID)
	return nil
}

func mkdir(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	item, err := session.CreateFolder(cmd.Context(), args[0], drivemirror.FileID(mkdirArgs.parent))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", item.Title, item.ID)
	return nil
}
