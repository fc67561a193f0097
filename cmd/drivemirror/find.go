package main

import (
	"fmt"

	"github.com/Jumpaku/go-drivemirror"
	"github.com/spf13/cobra"
)

var (
	findArgs struct {
		parent string
		all    bool
	}

	findCmd = &cobra.Command{
		Use:   "find <name>",
		Short: "Find an item by title",
		Long: "Find the first folder with the given title in the drive root, the first item with it under --parent, " +
			"or with --all every item with it anywhere in the drive.",
		Args: cobra.ExactArgs(1),
		RunE: find,
	}
)

func init() {
	findCmd.Flags().StringVar(&findArgs.parent, "parent", "", "Look only among the children of this folder id")
	findCmd.Flags().BoolVar(&findArgs.all, "all", false, "Search the whole drive")
	findCmd.MarkFlagsMutuallyExclusive("parent", "all")

	rootCmd.AddCommand(findCmd)
}

func find(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	name := args[0]

	var items []drivemirror.Item
	switch {
	case findArgs.all:
		items, err = session.Search(cmd.Context(), name)
		if err != nil {
			return err
		}
	default:
		var (
			item  drivemirror.Item
			found bool
		)
		if findArgs.parent != "" {
			item, found, err = session.FindChild(cmd.Context(), drivemirror.FileID(findArgs.parent), name)
		} else {
			item, found, err = session.FindFolder(cmd.Context(), name)
		}
		if err != nil {
			return err
		}
		if found {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return fmt.Errorf("'%s': %w", name, drivemirror.ErrNotFound)
	}
	for _, item := range items {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tfolder=%v\n", item.Title, item.ID, item.IsFolder)
	}
	return nil
}
