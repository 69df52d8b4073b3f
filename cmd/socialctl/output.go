// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/taibuivan/yomira-social/internal/social/post"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

var (
	handle  = color.New(color.FgCyan, color.Bold).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
	success = color.New(color.FgGreen).SprintFunc()
	liked   = color.New(color.FgRed).Sprint("♥")
)

func printUser(user *auth.User) {
	badge := ""
	if user.IsVerified {
		badge = " " + success("✓")
	}
	fmt.Printf("%s%s %s\n", handle("@"+user.Username), badge, faint(strings.TrimSpace(user.FirstName+" "+user.LastName)))
	if user.Bio != "" {
		fmt.Println("  " + user.Bio)
	}
	fmt.Printf("  %d followers · %d following · %d posts\n", user.FollowersCount, user.FollowingCount, user.PostsCount)
}

func printPosts(posts []*post.Post) {
	if len(posts) == 0 {
		fmt.Println(faint("No posts"))
		return
	}
	for _, item := range posts {
		printPost(item)
	}
}

func printPost(item *post.Post) {
	heart := "♡"
	if item.IsLiked {
		heart = liked
	}

	author := item.AuthorID
	if item.Author != nil {
		author = item.Author.Username
	}

	fmt.Printf("%s %s %s\n", faint("#"+item.ID), handle("@"+author), faint(item.CreatedAt.Format("2006-01-02 15:04")))
	fmt.Println("  " + item.Content)
	fmt.Printf("  %s %d  💬 %d\n\n", heart, item.LikesCount, item.CommentsCount)
}

func printMore(page int, hasNextPage bool) {
	if hasNextPage {
		fmt.Println(faint(fmt.Sprintf("more on page %d", page+1)))
	}
}
