package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/bingo/internal/bingo"
	"github.com/robalobadob/bingo/internal/phrases"
	"github.com/robalobadob/bingo/internal/tui"
)

var (
	phraseFile string
	drawSeed   uint64
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Print one random board",
	RunE: func(cmd *cobra.Command, args []string) error {
		var rng *rand.Rand
		if cmd.Flags().Changed("seed") {
			rng = rand.New(rand.NewPCG(drawSeed, drawSeed))
		}
		s, err := localSession(cmd.Context(), rng)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderBoard(s.Snapshot().Board, -1))
		return nil
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a board in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := localSession(cmd.Context(), nil)
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(tui.New(s), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

func init() {
	for _, c := range []*cobra.Command{drawCmd, playCmd} {
		c.Flags().StringVarP(&phraseFile, "file", "f", "", "extra phrases file, one per line")
	}
	drawCmd.Flags().Uint64Var(&drawSeed, "seed", 0, "shuffle seed for a reproducible board")
}

// localSession seeds a session from the configured defaults plus --file,
// then draws its first board.
func localSession(ctx context.Context, rng *rand.Rand) (*bingo.Session, error) {
	s := bingo.NewSession("local", rng)

	list, err := phrases.Load(ctx, cfg.Phrases.Source)
	if err != nil {
		log.Warn().Err(err).Str("source", cfg.Phrases.Source).Msg("default phrases unavailable")
	}
	s.Seed(list)

	if phraseFile != "" {
		raw, err := os.ReadFile(phraseFile)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", phraseFile, err)
		}
		s.AddCardsBulk(string(raw))
	}
	s.NewBoard()
	return s, nil
}
