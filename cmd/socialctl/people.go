// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-social/internal/social/follow"
	"github.com/taibuivan/yomira-social/internal/users/account"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
	"github.com/taibuivan/yomira-social/pkg/query"
)

var profileInput struct {
	firstName, lastName, bio, avatar string
}

func init() {
	profileCmd.Flags().StringVar(&profileInput.firstName, "first-name", "", "")
	profileCmd.Flags().StringVar(&profileInput.lastName, "last-name", "", "")
	profileCmd.Flags().StringVar(&profileInput.bio, "bio", "", "at most 160 characters")
	profileCmd.Flags().StringVar(&profileInput.avatar, "avatar", "", "avatar URL")

	followCmd.AddCommand(followersCmd, followingCmd)
	verifyCmd.AddCommand(verifyStatusCmd, verifySubmitCmd, verifyReviewCmd, verifiedCmd)

	rootCmd.AddCommand(userCmd, peopleCmd, suggestCmd, profileCmd, followCmd, verifyCmd)
}

func printUsers(users []*auth.User) {
	if len(users) == 0 {
		fmt.Println(faint("Nobody here"))
	}
	for _, user := range users {
		printUser(user)
	}
}

func relationship(status follow.Status) string {
	switch {
	case status.IsMutual:
		return "you follow each other"
	case status.IsFollowing:
		return "following"
	case status.IsFollower:
		return "follows you"
	default:
		return "not connected"
	}
}

var userCmd = &cobra.Command{
	Use:   "user <username>",
	Short: "Show a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := app.Users.GetUserByUsername(cmd.Context(), strings.TrimPrefix(args[0], "@"))
		if err != nil {
			return err
		}

		printUser(&profile.User)
		if app.Auth.State().IsAuthenticated() && profile.ID != app.Auth.State().User.ID {
			status := follow.NewStatus(profile.IsFollowing, profile.IsFollower)
			fmt.Println("  " + faint(relationship(status)))
		}
		return nil
	},
}

var peopleCmd = &cobra.Command{
	Use:   "people <term>",
	Short: "Search accounts by handle, name or bio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := app.Users.SearchUsers(cmd.Context(), args[0], pagination.Params{})
		if err != nil {
			return err
		}
		printUsers(results.Users)
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Recommend accounts to follow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		users, err := app.Users.GetRecommendedUsers(cmd.Context())
		if err != nil {
			return err
		}
		printUsers(users)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your profile; only the flags given change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input := account.UpdateProfileInput{}
		flags := cmd.Flags()
		if flags.Changed("first-name") {
			input.FirstName = &profileInput.firstName
		}
		if flags.Changed("last-name") {
			input.LastName = &profileInput.lastName
		}
		if flags.Changed("bio") {
			input.Bio = &profileInput.bio
		}
		if flags.Changed("avatar") {
			input.Avatar = &profileInput.avatar
		}

		user, err := app.Users.UpdateProfile(cmd.Context(), input)
		if err != nil {
			return err
		}
		printUser(user)
		return nil
	},
}

// # Follows

// resolveUser turns @handle or an id into an id.
func resolveUser(cmd *cobra.Command, ref string) (string, error) {
	if !strings.HasPrefix(ref, "@") {
		return ref, nil
	}
	profile, err := app.Users.GetUserByUsername(cmd.Context(), ref[1:])
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

var followCmd = &cobra.Command{
	Use:   "follow <@handle|id>...",
	Short: "Toggle following each account",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, ref := range query.Unique(args) {
			userID, err := resolveUser(cmd, ref)
			if err != nil {
				return err
			}

			status, err := app.Follows.ToggleFollow(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", handle(ref), faint(relationship(status)))
		}
		return nil
	},
}

var followersCmd = &cobra.Command{
	Use:   "followers <@handle|id>",
	Short: "List followers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := resolveUser(cmd, args[0])
		if err != nil {
			return err
		}
		users, err := app.Follows.GetFollowers(cmd.Context(), userID, pagination.Params{})
		if err != nil {
			return err
		}
		printUsers(users)
		return nil
	},
}

var followingCmd = &cobra.Command{
	Use:   "following <@handle|id>",
	Short: "List followed accounts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := resolveUser(cmd, args[0])
		if err != nil {
			return err
		}
		users, err := app.Follows.GetFollowing(cmd.Context(), userID, pagination.Params{})
		if err != nil {
			return err
		}
		printUsers(users)
		return nil
	},
}

// # Verification

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Account verification",
}

var verifyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your verification status and what is missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		status, err := app.Verification.GetStatus(cmd.Context())
		if err != nil {
			return err
		}
		eligibility, err := app.Verification.CheckCanSubmit(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(handle(string(status)))
		if eligibility.CanSubmit {
			fmt.Println(success("You can submit a request"))
		}
		for _, field := range eligibility.Unmet {
			fmt.Println("  missing " + field)
		}
		return nil
	},
}

var verifySubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Request verification",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		request, err := app.Verification.Submit(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(success("Submitted, status " + string(request.Status)))
		return nil
	},
}

var verifyReviewCmd = &cobra.Command{
	Use:   "review <user-id> approve|reject [reason...]",
	Short: "Decide a pending request (moderators)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		approve := args[1] == "approve"
		if !approve && args[1] != "reject" {
			return fmt.Errorf("decision must be approve or reject, got %q", args[1])
		}

		request, err := app.Verification.Review(cmd.Context(), args[0], approve, strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		fmt.Println(handle(string(request.Status)))
		return nil
	},
}

var verifiedCmd = &cobra.Command{
	Use:   "list",
	Short: "List verified accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		users, err := app.Verification.GetVerifiedUsers(cmd.Context(), pagination.Params{})
		if err != nil {
			return err
		}
		printUsers(users)
		return nil
	},
}
