package main

import (
	"fmt"
	"os"

	"github.com/Jumpaku/go-drivemirror"
	"github.com/Jumpaku/go-drivemirror/randtree"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type generateArgument struct {
	files   int
	folders int
	depth   int
}

func bindGenerateFlags(cmd *cobra.Command, args *generateArgument) {
	cmd.Flags().IntVar(&args.files, "files", 5, "Number of files at every level")
	cmd.Flags().IntVar(&args.folders, "folders", 5, "Number of folders at every level")
	cmd.Flags().IntVar(&args.depth, "depth", 2, "Number of nested levels below the root")
}

var (
	genArgs generateArgument

	generateCmd = &cobra.Command{
		Use:   "generate <dir>",
		Short: "Generate a random directory structure for test purpose",
		Args:  cobra.ExactArgs(1),
		RunE:  generate,
	}

	publishArgs struct {
		generateArgument
		dir string
	}

	publishCmd = &cobra.Command{
		Use:   "publish <remote-name>",
		Short: "Generate a random directory structure and mirror it to Drive",
		Args:  cobra.ExactArgs(1),
		RunE:  publish,
	}
)

func init() {
	bindGenerateFlags(generateCmd, &genArgs)
	bindGenerateFlags(publishCmd, &publishArgs.generateArgument)
	publishCmd.Flags().StringVar(&publishArgs.dir, "dir", "root_folder", "Local directory to generate into")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(publishCmd)
}

func generateInto(dir string, args generateArgument) (randtree.Stats, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return randtree.Stats{}, err
	}
	stats, err := randtree.Generate(dir, randtree.Options{
		Files:   args.files,
		Folders: args.folders,
		Depth:   args.depth,
	})
	if err != nil {
		return stats, err
	}
	logrus.WithFields(logrus.Fields{
		"dir":     dir,
		"files":   stats.Files,
		"folders": stats.Folders,
	}).Info("Random structure generated")
	return stats, nil
}

func generate(cmd *cobra.Command, args []string) error {
	stats, err := generateInto(args[0], genArgs)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d files, %d folders\n", stats.Files, stats.Folders)
	return nil
}

func publish(cmd *cobra.Command, args []string) error {
	if _, err := generateInto(publishArgs.dir, publishArgs.generateArgument); err != nil {
		return err
	}
	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	result, err := session.Mirror(cmd.Context(), os.DirFS(publishArgs.dir), args[0], drivemirror.MirrorOptions{})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", args[0], result.RootID)
	return nil
}
