package main

import (
	"fmt"
	"os"

	"github.com/Jumpaku/go-drivemirror"
	"github.com/Jumpaku/go-drivemirror/jsonstore"
	"github.com/Jumpaku/go-drivemirror/memdrive"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	mirrorArgs struct {
		skipExisting bool
		dryRun       bool
		saveMap      string
	}

	mirrorCmd = &cobra.Command{
		Use:   "mirror <local-dir> <remote-name>",
		Short: "Mirror a local directory tree into a top-level Drive folder",
		Args:  cobra.ExactArgs(2),
		RunE:  mirror,
	}
)

func init() {
	mirrorCmd.Flags().BoolVar(&mirrorArgs.skipExisting, "skip-existing", false, "Skip files whose title already exists in the remote folder")
	mirrorCmd.Flags().BoolVar(&mirrorArgs.dryRun, "dry-run", false, "Mirror into an in-memory drive instead of Google Drive")
	mirrorCmd.Flags().StringVar(&mirrorArgs.saveMap, "save-map", "", "Write the local path to remote folder id map to this JSON file")

	rootCmd.AddCommand(mirrorCmd)
}

func mirror(cmd *cobra.Command, args []string) error {
	localDir, remoteName := args[0], args[1]

	var session *drivemirror.Session
	if mirrorArgs.dryRun {
		session = drivemirror.NewSession(memdrive.New(), drivemirror.WithLogger(logrus.StandardLogger()))
	} else {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		session = s
	}

	result, err := session.Mirror(cmd.Context(), os.DirFS(localDir), remoteName, drivemirror.MirrorOptions{
		SkipExistingFiles: mirrorArgs.skipExisting,
	})
	if err != nil {
		return err
	}

	if mirrorArgs.saveMap != "" {
		if err := jsonstore.Write(mirrorArgs.saveMap, result.Folders); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tfolders created=%d reused=%d\tfiles uploaded=%d skipped=%d\n",
		remoteName, result.RootID, result.FoldersCreated, result.FoldersReused, result.FilesUploaded, result.FilesSkipped)
	return nil
}
