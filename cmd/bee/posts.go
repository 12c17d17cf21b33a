package main

import (
	"fmt"
	"strconv"

	"bee-go/internal/bee"

	"github.com/spf13/cobra"
)

// parseID parses a numeric entity ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// printPost writes one post in feed format.
func printPost(post *bee.Post, viewerID int64) {
	liked := " "
	if post.LikedByUser(viewerID) {
		liked = "*"
	}
	fmt.Printf("%s #%-6d @%-15s %s  [%d likes, %d comments]\n",
		liked, post.ID, post.User.Username,
		post.CreatedAt.Format("2006-01-02 15:04"),
		len(post.LikedBy), len(post.Comments))
	fmt.Printf("  %s\n", post.Caption)
	if post.Location != "" {
		fmt.Printf("  at %s\n", post.Location)
	}
	fmt.Printf("  %s\n", post.Image)
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show posts from you and everyone you follow, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "GetFeed")
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.RequireUser(cmd.Context())
		if err != nil {
			return err
		}

		posts, err := a.Service().Feed(cmd.Context())
		if err != nil {
			return err
		}

		if len(posts) == 0 {
			fmt.Println("No posts yet. Follow someone or publish your first post.")
			return nil
		}

		for i := range posts {
			printPost(&posts[i], user.ID)
			fmt.Println()
		}
		return nil
	},
}

// post command
var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage posts",
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a post",
	RunE: func(cmd *cobra.Command, args []string) error {
		caption, _ := cmd.Flags().GetString("caption")
		image, _ := cmd.Flags().GetString("image")
		location, _ := cmd.Flags().GetString("location")

		a, err := newApp(cmd, "PublishPost")
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

		post, err := a.Service().PublishPost(cmd.Context(), caption, image, location)
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Published post #%d\n", post.ID)
		return nil
	},
}

var postShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "GetPost")
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.RequireUser(cmd.Context())
		if err != nil {
			return err
		}

		post, err := a.Client().Posts.ByID(cmd.Context(), id)
		if err != nil {
			return err
		}

		printPost(post, user.ID)
		for i := range post.Comments {
			c := &post.Comments[i]
			liked := " "
			if c.LikedByUser(user.ID) {
				liked = "*"
			}
			fmt.Printf("  %s #%-6d @%-15s %s  [%d likes]\n", liked, c.ID, c.User.Username,
				c.CreatedAt.Format("2006-01-02 15:04"), len(c.LikedBy))
			fmt.Printf("    %s\n", c.Content)
		}
		return nil
	},
}

var postListCmd = &cobra.Command{
	Use:   "list [USERNAME]",
	Short: "List a user's posts (default: your own)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "GetPosts")
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

		posts, err := a.Client().Posts.ByUser(cmd.Context(), target.ID)
		if err != nil {
			return err
		}

		if len(posts) == 0 {
			fmt.Printf("@%s has no posts.\n", target.Username)
			return nil
		}

		for i := range posts {
			printPost(&posts[i], user.ID)
			fmt.Println()
		}
		return nil
	},
}

var postLikeCmd = &cobra.Command{
	Use:   "like ID",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return togglePostLike(cmd, args[0], true) },
}

var postUnlikeCmd = &cobra.Command{
	Use:   "unlike ID",
	Short: "Remove your like from a post",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return togglePostLike(cmd, args[0], false) },
}

// togglePostLike flips a post's like state toward the wanted value.
// Both directions are idempotent: asking for the state the post is already
// in reports it and does nothing.
func togglePostLike(cmd *cobra.Command, arg string, want bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	command := "LikePost"
	if !want {
		command = "UnlikePost"
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

	post, err := a.Client().Posts.ByID(cmd.Context(), id)
	if err != nil {
		return err
	}

	if post.LikedByUser(user.ID) == want {
		if want {
			fmt.Printf("Post #%d is already liked.\n", id)
		} else {
			fmt.Printf("Post #%d is not liked.\n", id)
		}
		return nil
	}

	if err := a.Record(arg); err != nil {
		return err
	}

	liked, err := a.Service().ToggleLike(cmd.Context(), post)
	if err != nil {
		a.Fail()
		return err
	}

	if liked {
		fmt.Printf("Liked post #%d (%d likes)\n", id, len(post.LikedBy))
	} else {
		fmt.Printf("Unliked post #%d (%d likes)\n", id, len(post.LikedBy))
	}
	return nil
}

var postSaveCmd = &cobra.Command{
	Use:   "save ID",
	Short: "Save a post to your collection",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return togglePostSave(cmd, args[0], true) },
}

var postUnsaveCmd = &cobra.Command{
	Use:   "unsave ID",
	Short: "Remove a post from your collection",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return togglePostSave(cmd, args[0], false) },
}

func togglePostSave(cmd *cobra.Command, arg string, want bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	command := "SavePost"
	if !want {
		command = "UnsavePost"
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

	if user.HasSaved(id) == want {
		if want {
			fmt.Printf("Post #%d is already saved.\n", id)
		} else {
			fmt.Printf("Post #%d is not saved.\n", id)
		}
		return nil
	}

	post, err := a.Client().Posts.ByID(cmd.Context(), id)
	if err != nil {
		return err
	}

	if err := a.Record(arg); err != nil {
		return err
	}

	saved, err := a.Service().ToggleSave(cmd.Context(), user, post)
	if err != nil {
		a.Fail()
		return err
	}

	if saved {
		fmt.Printf("Saved post #%d\n", id)
	} else {
		fmt.Printf("Unsaved post #%d\n", id)
	}
	return nil
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a post you own",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "DeletePost")
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

		resp, err := a.Client().Posts.Delete(cmd.Context(), id)
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Println(resp.Message)
		return nil
	},
}

// draft command
var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Manage local post drafts",
}

var draftAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a post draft locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		caption, _ := cmd.Flags().GetString("caption")
		image, _ := cmd.Flags().GetString("image")
		location, _ := cmd.Flags().GetString("location")

		a, err := newApp(cmd, "SaveDraft")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Record(image); err != nil {
			return err
		}

		draft, err := a.Service().SaveDraft(caption, image, location)
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Draft saved: %s\n", draft.ID)
		return nil
	},
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List local drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "ListDrafts")
		if err != nil {
			return err
		}
		defer a.Close()

		drafts, err := a.Service().ListDrafts()
		if err != nil {
			return err
		}

		if len(drafts) == 0 {
			fmt.Println("No drafts.")
			return nil
		}

		for _, d := range drafts {
			fmt.Printf("%s  %s\n", d.ID, d.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("  %s\n", d.Caption)
			fmt.Printf("  %s\n", d.Image)
		}
		return nil
	},
}

var draftRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a local draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "DeleteDraft")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Record(args[0]); err != nil {
			return err
		}

		if err := a.Service().DeleteDraft(args[0]); err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Draft %s deleted.\n", args[0])
		return nil
	},
}

var draftPublishCmd = &cobra.Command{
	Use:   "publish ID",
	Short: "Publish a local draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "PublishDraft")
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

		post, err := a.Service().PublishDraft(cmd.Context(), args[0])
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Published post #%d from draft %s\n", post.ID, args[0])
		return nil
	},
}

func init() {
	postCreateCmd.Flags().String("caption", "", "Post caption")
	postCreateCmd.Flags().String("image", "", "Image file path or URL")
	postCreateCmd.Flags().String("location", "", "Optional location")
	postCreateCmd.MarkFlagRequired("caption")
	postCreateCmd.MarkFlagRequired("image")

	draftAddCmd.Flags().String("caption", "", "Post caption")
	draftAddCmd.Flags().String("image", "", "Image file path or URL")
	draftAddCmd.Flags().String("location", "", "Optional location")
	draftAddCmd.MarkFlagRequired("caption")
	draftAddCmd.MarkFlagRequired("image")

	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postShowCmd)
	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postLikeCmd)
	postCmd.AddCommand(postUnlikeCmd)
	postCmd.AddCommand(postSaveCmd)
	postCmd.AddCommand(postUnsaveCmd)
	postCmd.AddCommand(postDeleteCmd)

	draftCmd.AddCommand(draftAddCmd)
	draftCmd.AddCommand(draftListCmd)
	draftCmd.AddCommand(draftRmCmd)
	draftCmd.AddCommand(draftPublishCmd)

	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(draftCmd)
}
