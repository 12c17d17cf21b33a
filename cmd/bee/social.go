package main

import (
	"fmt"
	"time"

	"bee-go/internal/bee"

	"github.com/spf13/cobra"
)

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "Show stories from you and everyone you follow",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "GetStories")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.RequireUser(cmd.Context()); err != nil {
			return err
		}

		groups, err := a.Service().StoryFeed(cmd.Context())
		if err != nil {
			return err
		}

		if len(groups) == 0 {
			fmt.Println("No stories right now.")
			return nil
		}

		now := time.Now()
		for _, g := range groups {
			fmt.Printf("@%s\n", g.User.Username)
			for _, s := range g.Stories {
				age := now.Sub(s.Timestamp.Time).Truncate(time.Minute)
				fmt.Printf("  #%-6d %s ago  %s", s.ID, age, s.Image)
				if s.Caption != "" {
					fmt.Printf("  %q", s.Caption)
				}
				fmt.Println()
			}
		}
		return nil
	},
}

// story command
var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Manage stories",
}

var storyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a story",
	RunE: func(cmd *cobra.Command, args []string) error {
		image, _ := cmd.Flags().GetString("image")
		caption, _ := cmd.Flags().GetString("caption")

		a, err := newApp(cmd, "PublishStory")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.RequireUser(cmd.Context()); err != nil {
			return err
		}
		if err := a.Record(image); err != nil {
			return err
		}

		story, err := a.Service().PublishStory(cmd.Context(), image, caption)
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Published story #%d\n", story.ID)
		return nil
	},
}

var storyListCmd = &cobra.Command{
	Use:   "list [USERNAME]",
	Short: "List a user's stories (default: your own)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "GetUserStories")
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.RequireUser(cmd.Context())
		if err != nil {
			return err
		}

		target := user
		if len(args) > 0 {
			target, err = a.Client().Users.ByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
		}

		stories, err := a.Client().Stories.ByUser(cmd.Context(), target.ID)
		if err != nil {
			return err
		}

		if len(stories) == 0 {
			fmt.Printf("@%s has no stories.\n", target.Username)
			return nil
		}

		for _, s := range stories {
			fmt.Printf("#%-6d %s  %s\n", s.ID, s.Timestamp.Format("2006-01-02 15:04"), s.Image)
		}
		return nil
	},
}

// comment command
var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add POST_ID CONTENT",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "CreateComment")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.RequireUser(cmd.Context()); err != nil {
			return err
		}
		if err := a.Record(args[0]); err != nil {
			return err
		}

		comment, err := a.Service().CommentOn(cmd.Context(), postID, args[1])
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Comment #%d added to post #%d\n", comment.ID, postID)
		return nil
	},
}

var commentShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a comment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "GetComment")
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.RequireUser(cmd.Context())
		if err != nil {
			return err
		}

		comment, err := a.Client().Comments.ByID(cmd.Context(), id)
		if err != nil {
			return err
		}

		liked := " "
		if comment.LikedByUser(user.ID) {
			liked = "*"
		}
		fmt.Printf("%s #%-6d @%-15s %s  [%d likes]\n", liked, comment.ID, comment.User.Username,
			comment.CreatedAt.Format("2006-01-02 15:04"), len(comment.LikedBy))
		fmt.Printf("  %s\n", comment.Content)
		return nil
	},
}

var commentLikeCmd = &cobra.Command{
	Use:   "like ID",
	Short: "Like a comment",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleCommentLike(cmd, args[0], true) },
}

var commentUnlikeCmd = &cobra.Command{
	Use:   "unlike ID",
	Short: "Remove your like from a comment",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleCommentLike(cmd, args[0], false) },
}

func toggleCommentLike(cmd *cobra.Command, arg string, want bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	command := "LikeComment"
	if !want {
		command = "UnlikeComment"
	}
	a, err := newApp(cmd, command)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.RequireUser(cmd.Context())
	if err != nil {
		return err
	}

	comment, err := a.Client().Comments.ByID(cmd.Context(), id)
	if err != nil {
		return err
	}

	if comment.LikedByUser(user.ID) == want {
		if want {
			fmt.Printf("Comment #%d is already liked.\n", id)
		} else {
			fmt.Printf("Comment #%d is not liked.\n", id)
		}
		return nil
	}

	if err := a.Record(arg); err != nil {
		return err
	}

	liked, err := a.Service().ToggleCommentLike(cmd.Context(), comment)
	if err != nil {
		a.Fail()
		return err
	}

	if liked {
		fmt.Printf("Liked comment #%d\n", id)
	} else {
		fmt.Printf("Unliked comment #%d\n", id)
	}
	return nil
}

// user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Look up and manage users",
}

var userShowCmd = &cobra.Command{
	Use:   "show USERNAME",
	Short: "Show a user's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "GetUser")
		if err != nil {
			return err
		}
		defer a.Close()

		viewer, err := a.RequireUser(cmd.Context())
		if err != nil {
			return err
		}

		user, err := a.Client().Users.ByUsername(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("@%s (#%d)  %s\n", user.Username, user.ID, user.Name)
		if user.Bio != "" {
			fmt.Printf("%s\n", user.Bio)
		}
		fmt.Printf("Following: %d  Followers: %d  Stories: %d\n",
			len(user.Following), len(user.Followers), len(user.Stories))
		if viewer.IsFollowing(user.ID) {
			fmt.Println("You follow this user.")
		}
		return nil
	},
}

var userSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search users",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "SearchUsers")
		if err != nil {
			return err
		}
		defer a.Close()

		viewer, err := a.RequireUser(cmd.Context())
		if err != nil {
			return err
		}

		users, err := a.Client().Users.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		for _, u := range users {
			marker := "  "
			if viewer.IsFollowing(u.ID) {
				marker = "F "
			}
			fmt.Printf("%s@%-15s %s\n", marker, u.Username, u.Name)
		}
		return nil
	},
}

var userFollowCmd = &cobra.Command{
	Use:   "follow USERNAME",
	Short: "Follow a user",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleFollow(cmd, args[0], true) },
}

var userUnfollowCmd = &cobra.Command{
	Use:   "unfollow USERNAME",
	Short: "Unfollow a user",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleFollow(cmd, args[0], false) },
}

func toggleFollow(cmd *cobra.Command, username string, want bool) error {
	command := "FollowUser"
	if !want {
		command = "UnfollowUser"
	}
	a, err := newApp(cmd, command)
	if err != nil {
		return err
	}
	defer a.Close()

	viewer, err := a.RequireUser(cmd.Context())
	if err != nil {
		return err
	}

	target, err := a.Client().Users.ByUsername(cmd.Context(), username)
	if err != nil {
		return err
	}

	if viewer.IsFollowing(target.ID) == want {
		if want {
			fmt.Printf("You already follow @%s.\n", target.Username)
		} else {
			fmt.Printf("You do not follow @%s.\n", target.Username)
		}
		return nil
	}

	if err := a.Record(username); err != nil {
		return err
	}

	following, err := a.Service().ToggleFollow(cmd.Context(), viewer, target)
	if err != nil {
		a.Fail()
		return err
	}

	if following {
		fmt.Printf("Now following @%s\n", target.Username)
	} else {
		fmt.Printf("Unfollowed @%s\n", target.Username)
	}
	return nil
}

var userUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Edit your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "UpdateProfile")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.RequireUser(cmd.Context()); err != nil {
			return err
		}

		update := &bee.UserUpdate{}
		set := func(flag string, dst **string) {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*dst = &v
			}
		}
		set("name", &update.Name)
		set("email", &update.Email)
		set("mobile", &update.Mobile)
		set("bio", &update.Bio)
		set("gender", &update.Gender)
		set("image", &update.Image)

		if err := a.Record(""); err != nil {
			return err
		}

		user, err := a.Service().UpdateProfile(cmd.Context(), update)
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Profile updated for @%s\n", user.Username)
		return nil
	},
}

func init() {
	storyCreateCmd.Flags().String("image", "", "Image file path or URL")
	storyCreateCmd.Flags().String("caption", "", "Optional caption")
	storyCreateCmd.MarkFlagRequired("image")

	userUpdateCmd.Flags().String("name", "", "Display name")
	userUpdateCmd.Flags().String("email", "", "Email address")
	userUpdateCmd.Flags().String("mobile", "", "Mobile number")
	userUpdateCmd.Flags().String("bio", "", "Profile bio")
	userUpdateCmd.Flags().String("gender", "", "Gender")
	userUpdateCmd.Flags().String("image", "", "Profile image URL")

	storyCmd.AddCommand(storyCreateCmd)
	storyCmd.AddCommand(storyListCmd)

	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentShowCmd)
	commentCmd.AddCommand(commentLikeCmd)
	commentCmd.AddCommand(commentUnlikeCmd)

	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userSearchCmd)
	userCmd.AddCommand(userFollowCmd)
	userCmd.AddCommand(userUnfollowCmd)
	userCmd.AddCommand(userUpdateCmd)

	rootCmd.AddCommand(storiesCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(userCmd)
}
