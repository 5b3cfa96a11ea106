package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/aidojo/internal/patterns"
	"github.com/abhisek/aidojo/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pattern counters, tokens, and lesson depths",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		profile, err := st.ProfileRepo().Load(ctx)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if profile == nil {
			fmt.Println("No practice data yet. Run `aidojo` to start.")
			return nil
		}

		fmt.Printf("Partner: %s\n\n", profile.PersonalityID)

		fmt.Println("Interaction patterns:")
		for _, t := range patterns.AllTypes() {
			rec := profile.Patterns[t]
			if rec == nil {
				fmt.Printf("  %-24s 0\n", t.DisplayName())
				continue
			}
			fmt.Printf("  %-24s %d", t.DisplayName(), rec.Count)
			if len(rec.Examples) > 0 {
				fmt.Printf("   last: %q", rec.Examples[len(rec.Examples)-1])
			}
			fmt.Println()
		}

		fmt.Printf("\nSkill tokens (%d):\n", len(profile.Tokens))
		for _, tok := range profile.Tokens {
			fmt.Printf("  %-16s %s  (%s)\n", tok.Name, tok.Description, tok.EarnedAt.Format("2006-01-02"))
		}
		if len(profile.Tokens) == 0 {
			fmt.Println("  none yet")
		}

		fmt.Printf("\nCompleted lessons (%d):\n", len(profile.Completed))
		for id, level := range profile.Completed {
			fmt.Printf("  %-20s %s\n", id, level.DisplayName())
		}
		if len(profile.Completed) == 0 {
			fmt.Println("  none yet")
		}

		counts, err := st.EventRepo().Counts(ctx)
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		if len(counts) > 0 {
			fmt.Println("\nSession events:")
			for _, kind := range []string{
				store.EventLessonStarted, store.EventPhaseAdvanced,
				store.EventLessonRestart, store.EventLessonDone,
				store.EventTokenAwarded, store.EventReplyDiscarded,
			} {
				if n := counts[kind]; n > 0 {
					fmt.Printf("  %-20s %d\n", kind, n)
				}
			}
		}

		return nil
	},
}
