package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Jumpaku/go-drivemirror"
	"github.com/spf13/cobra"
)

var (
	treeArgs struct {
		all bool
	}

	treeCmd = &cobra.Command{
		Use:   "tree <folder-id>",
		Short: "Print the remote subtree of a folder",
		Args:  cobra.ExactArgs(1),
		RunE:  printTree,
	}
)

func init() {
	treeCmd.Flags().BoolVar(&treeArgs.all, "all", false, "Include trashed items")

	rootCmd.AddCommand(treeCmd)
}

func printTree(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}

	filter := drivemirror.ListActive
	if treeArgs.all {
		filter = drivemirror.ListAll
	}
	tree, err := session.Tree(cmd.Context(), drivemirror.FileID(args[0]), filter)
	if err != nil {
		return err
	}
	writeTree(cmd.OutOrStdout(), tree, tree.Root())
	return nil
}

// writeTree prints node and its descendants depth first, one line per node.
func writeTree(w io.Writer, tree *drivemirror.Tree, node *drivemirror.Node) {
	suffix := ""
	if node.IsFolder {
		suffix = "/"
	}
	fmt.Fprintf(w, "%s%s%s\t%s\n", strings.Repeat("  ", node.Depth), node.Title, suffix, node.ID)
	for _, id := range node.Children {
		child, _ := tree.Node(id)
		writeTree(w, tree, child)
	}
}
