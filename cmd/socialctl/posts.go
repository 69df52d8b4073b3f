// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-social/pkg/convert"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

var (
	pageLimit int
	replyTo   string
)

func init() {
	for _, cmd := range []*cobra.Command{feedCmd, exploreCmd, searchCmd} {
		cmd.Flags().IntVarP(&pageLimit, "limit", "n", 0, "page size")
	}
	commentCmd.Flags().StringVar(&replyTo, "reply-to", "", "parent comment id")

	rootCmd.AddCommand(feedCmd, exploreCmd, searchCmd, showCmd, postCmd, editCmd, likeCmd, deleteCmd, commentsCmd, commentCmd)
}

// pageArg reads an optional trailing page number; anything else is page 1.
func pageArg(args []string, at int) pagination.Params {
	page := 1
	if len(args) > at {
		page = convert.ToIntD(args[at], 1)
	}
	return pagination.Params{Page: page, Limit: pageLimit}
}


var feedCmd = &cobra.Command{
	Use:   "feed [page]",
	Short: "Show the home feed",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := pageArg(args, 0)
		items, err := app.Posts.GetFeed(cmd.Context(), params)
		if err != nil {
			return err
		}

		printPosts(items)
		printMore(params.Page, app.Posts.State().Feed.HasNextPage)
		return nil
	},
}

var exploreCmd = &cobra.Command{
	Use:   "explore [page]",
	Short: "Show posts ranked by likes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := pageArg(args, 0)
		items, err := app.Posts.GetExplore(cmd.Context(), params)
		if err != nil {
			return err
		}

		printPosts(items)
		printMore(params.Page, app.Posts.State().Explore.HasNextPage)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <term> [page]",
	Short: "Search posts by content or author",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := pageArg(args, 1)
		results, err := app.Posts.SearchPosts(cmd.Context(), args[0], params)
		if err != nil {
			return err
		}

		fmt.Println(faint(fmt.Sprintf("%d results for %q", results.Total, results.Query)))
		printPosts(app.Posts.State().SearchPosts())
		printMore(params.Page, results.HasNextPage)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <post-id>",
	Short: "Show one post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := app.Posts.GetPostByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printPost(item)
		return printThread(cmd, item.ID)
	},
}

var postCmd = &cobra.Command{
	Use:   "post <content...>",
	Short: "Publish a post of at most 280 characters",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := app.Posts.CreatePost(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		printPost(item)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <post-id> <content...>",
	Short: "Replace the content of your post",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := app.Posts.UpdatePost(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		printPost(item)
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := app.Posts.ToggleLike(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printPost(item)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete your post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Posts.DeletePost(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println(faint("Deleted #" + args[0]))
		return nil
	},
}

// # Comments

func printThread(cmd *cobra.Command, postID string) error {
	thread, err := app.Comments.GetPostComments(cmd.Context(), postID)
	if err != nil {
		return err
	}

	for _, item := range thread {
		author := item.AuthorID
		if item.Author != nil {
			author = item.Author.Username
		}

		indent := "  "
		if item.ParentID != "" {
			indent = "    ↳ "
		}
		fmt.Printf("%s%s %s %s\n", indent, faint("#"+item.ID), handle("@"+author), item.Content)
	}
	return nil
}

var commentsCmd = &cobra.Command{
	Use:   "comments <post-id>",
	Short: "List the comments of a post, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printThread(cmd, args[0])
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment <post-id> <content...>",
	Short: "Comment on a post",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := app.Comments.CreateComment(cmd.Context(), args[0], strings.Join(args[1:], " "), replyTo)
		if err != nil {
			return err
		}
		fmt.Println(success("Commented ") + faint("#"+item.ID))
		return nil
	},
}
