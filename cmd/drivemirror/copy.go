package main

import (
	"fmt"

	"github.com/Jumpaku/go-drivemirror"
	"github.com/spf13/cobra"
)

var (
	copyArgs struct {
		skipExisting bool
	}

	copyCmd = &cobra.Command{
		Use:   "copy <folder-id> <remote-name>",
		Short: "Mirror a remote folder into a top-level Drive folder",
		Args:  cobra.ExactArgs(2),
		RunE:  copyFolder,
	}
)

func init() {
	copyCmd.Flags().BoolVar(&copyArgs.skipExisting, "skip-existing", false, "Skip files whose title already exists in the remote folder")

	rootCmd.AddCommand(copyCmd)
}

func copyFolder(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}

	src, err := session.FS(cmd.Context(), drivemirror.FileID(args[0]))
	if err != nil {
		return err
	}
	result, err := session.Mirror(cmd.Context(), src, args[1], drivemirror.MirrorOptions{
		SkipExistingFiles: copyArgs.skipExisting,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tfolders created=%d reused=%d\tfiles uploaded=%d skipped=%d\n",
		args[1], result.RootID, result.FoldersCreated, result.FoldersReused, result.FilesUploaded, result.FilesSkipped)
	return nil
}
