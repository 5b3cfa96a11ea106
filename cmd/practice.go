package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/aidojo/internal/app"
	"github.com/abhisek/aidojo/internal/lessons"
	"github.com/abhisek/aidojo/internal/persona"
	"github.com/abhisek/aidojo/internal/practice"
	"github.com/abhisek/aidojo/internal/responder"
	"github.com/abhisek/aidojo/internal/store"
)

var packPath string

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd)
	},
}

func init() {
	practiceCmd.Flags().StringVar(&packPath, "pack", "", "Path to an extra lesson pack (JSON)")
}

// runPractice wires the engine and launches the TUI. It backs both the
// bare `aidojo` invocation and `aidojo practice`.
func runPractice(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	catalog := lessons.NewCatalog()
	if packPath != "" {
		extra, err := lessons.LoadPack(packPath)
		if err != nil {
			return fmt.Errorf("load lesson pack: %w", err)
		}
		if err := catalog.Add(extra); err != nil {
			return fmt.Errorf("add lesson pack: %w", err)
		}
	}

	gen := responder.New(responder.DefaultConfig(), rand.NewSource(time.Now().UnixNano()))
	eng := practice.New(persona.NewRegistry(), catalog, gen, st, practice.DefaultConfig())

	uc, err := eng.LoadUser(context.Background())
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	return app.Run(app.Options{Engine: eng, User: uc})
}
