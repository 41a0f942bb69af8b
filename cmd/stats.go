package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantslearn/quantslearn/internal/progress"
	"github.com/quantslearn/quantslearn/internal/review"
	"github.com/quantslearn/quantslearn/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		graph, err := loadGraph(cmd)
		if err != nil {
			return err
		}

		dbPath, err := store.DefaultDBPath()
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		completed, err := st.Completions.CompletedSet(ctx)
		if err != nil {
			return err
		}

		topics := graph.Topics()
		overall := progress.Overall(topics, completed)
		fmt.Printf("Overall: %d/%d topics (%d%%)\n", overall.Completed, overall.Total, overall.Percent)

		for _, cc := range progress.ByCategory(topics, completed) {
			if cc.Total == 0 {
				continue
			}
			fmt.Printf("  %-18s %d/%d (%d%%)\n", cc.Name, cc.Completed, cc.Total, cc.Percent)
		}

		days, err := st.Activity.ActiveDays(ctx, time.Now().AddDate(-1, 0, 0))
		if err != nil {
			return err
		}
		fmt.Printf("Streak: %d days\n", store.StudyStreak(days, time.Now()))

		if next := progress.Recommend(graph, topics, completed, 3); len(next) > 0 {
			fmt.Println("Up next:")
			for _, t := range next {
				fmt.Printf("  - %s (difficulty %d)\n", t.Name, t.Difficulty)
			}
		}

		states, err := st.Reviews.All(ctx)
		if err != nil {
			return err
		}
		if due := review.DueTopics(states, time.Now()); len(due) > 0 {
			fmt.Println("Due for review:")
			for _, s := range due {
				if t, err := graph.Topic(s.TopicID); err == nil {
					fmt.Printf("  - %s (stage %d)\n", t.Name, s.Stage)
				}
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("catalog", "", "Topic catalog YAML (defaults to the embedded catalog)")
}
