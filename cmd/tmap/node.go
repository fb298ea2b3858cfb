package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/tweetmap/internal/view"
	"github.com/matsen/tweetmap/internal/visual"
)

func init() {
	rootCmd.AddCommand(nodeCmd)
}

var nodeCmd = &cobra.Command{
	Use:   "node <id>",
	Short: "Show the details of one post",
	Long: `Show the author, full text and engagement counts of one post, as the
viewer's popup does.

Node ids are "tweet-<row>", where <row> is the 0-based data row in the
dataset (rejected rows keep their numbers).

Example:
  tmap node tweet-42 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runNode,
}

// NodeResponse is the response for the node command.
type NodeResponse struct {
	view.Popup
	Bucket string  `json:"bucket"`
	Color  string  `json:"color"`
	Size   float64 `json:"size"`
}

func runNode(cmd *cobra.Command, args []string) error {
	st, res, _ := mustLoadDataset(cmd.Context())

	n, ok := res.FindNode(args[0])
	if !ok {
		exitWithError(ExitNotFound, "node %q not found", args[0])
	}

	st.OnClick(&n)
	popup, _ := st.Popup()

	bucket := visual.BucketFor(n.Metrics.Total())
	resp := NodeResponse{
		Popup:  popup,
		Bucket: bucket.String(),
		Color:  bucket.Color(),
		Size:   visual.NodeSize(n),
	}

	if humanOutput {
		fmt.Printf("@%s (%s)\n\n", resp.Author, resp.ID)
		fmt.Printf("%s\n\n", resp.Body)
		fmt.Printf("Retweets: %d  Likes: %d  Replies: %d  Quotes: %d\n",
			resp.Metrics.Retweets, resp.Metrics.Likes, resp.Metrics.Replies, resp.Metrics.Quotes)
		fmt.Printf("Engagement: %s (%s)\n", bucket.Label(), bucket.Color())
		return nil
	}
	return outputJSON(resp)
}
