package main

import (
	"fmt"

	"github.com/Jumpaku/go-drivemirror"
	"github.com/spf13/cobra"
)

var (
	downloadCmd = &cobra.Command{
		Use:   "download <folder-id> <local-dir>",
		Short: "Download a remote folder recursively",
		Args:  cobra.ExactArgs(2),
		RunE:  download,
	}

	downloadFileCmd = &cobra.Command{
		Use:   "download-file <file-id> <local-dir>",
		Short: "Download a single remote file under its title",
		Args:  cobra.ExactArgs(2),
		RunE:  downloadFile,
	}
)

func init() {
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(downloadFileCmd)
}

func download(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	files, err := session.DownloadFolder(cmd.Context(), drivemirror.FileID(args[0]), args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d files downloaded to %s\n", files, args[1])
	return nil
}

func downloadFile(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	path, err := session.DownloadFile(cmd.Context(), drivemirror.FileID(args[0]), args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
