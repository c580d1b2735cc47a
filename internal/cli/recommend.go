package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shimizu-Technology/exam-prep-api/internal/catalog"
	"github.com/Shimizu-Technology/exam-prep-api/internal/services/youtube"
)

var (
	flagMaxResults int
	flagDifficulty string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <topic>",
	Short: "Recommend study videos for a topic (fallback links without YOUTUBE_API_KEY)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRecommend,
}

var durationCmd = &cobra.Command{
	Use:   "duration <iso8601>",
	Short: "Format a YouTube ISO 8601 duration, e.g. PT1H30M45S",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), youtube.ParseDuration(args[0]))
	},
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the curated catalog topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return err
		}
		for _, t := range cat.ListTopics() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-12s %d resources\n", t.Name, t.Category, t.ResourceCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(durationCmd)
	rootCmd.AddCommand(topicsCmd)
	recommendCmd.Flags().IntVarP(&flagMaxResults, "max-results", "n", youtube.DefaultMaxResults, "Number of videos to return (1-25)")
	recommendCmd.Flags().StringVarP(&flagDifficulty, "difficulty", "d", "", "beginner, intermediate or advanced")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}

	svc, err := youtube.New(cmd.Context(), youtube.Config{
		APIKey:            cfg.YouTubeAPIKey,
		SearchTimeout:     cfg.YouTubeTimeout,
		ChannelTimeout:    cfg.YouTubeChannelTimeout,
		RequestsPerSecond: cfg.YouTubeRPS,
		TrustedChannels:   cat.TrustedChannelIDs(),
		QualityKeywords:   cat.QualityKeywords,
	})
	if err != nil {
		return err
	}

	videos := svc.Recommend(cmd.Context(), topic, flagMaxResults, strings.ToLower(flagDifficulty))
	return printJSON(cmd.OutOrStdout(), videos)
}
