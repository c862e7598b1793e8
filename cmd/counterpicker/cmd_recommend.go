package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"CounterPicker/internal/report"
	"CounterPicker/internal/usecase"
)

var recommendFlags struct {
	hero      string
	opponents []string
	role      string
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest items and counter picks against an enemy team",
	RunE:  runRecommend,
}

func init() {
	f := recommendCmd.Flags()
	f.StringVar(&recommendFlags.hero, "hero", "", "your hero (name or id)")
	f.StringArrayVar(&recommendFlags.opponents, "vs", nil, "enemy hero (name or id, repeatable)")
	f.StringVar(&recommendFlags.role, "role", "", "preferred role for counter picks (exact match)")
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if len(recommendFlags.opponents) == 0 {
		fmt.Fprintln(out, usecase.ErrNoOpponents.Error())
		return nil
	}

	application, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	rec, err := application.Recommend(cmd.Context(), usecase.RecommendRequest{
		You:       recommendFlags.hero,
		Opponents: recommendFlags.opponents,
		Role:      recommendFlags.role,
	})
	if errors.Is(err, usecase.ErrNoOpponents) {
		fmt.Fprintln(out, err.Error())
		return nil
	}
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	s := rec.Summary
	fmt.Fprintf(out, "Enemy mix: physical %.0f%%, magic %.0f%%, sustain tags %d\n\n",
		s.PhysicalMix*100, s.MagicMix*100, s.SustainPressure())

	mode := tableMode()
	fmt.Fprintln(out, report.Items("Defense", rec.Defense, mode))
	if rec.You.Name != "" {
		fmt.Fprintln(out, report.Items("Offense for "+rec.You.Name, rec.Offense, mode))
	}
	fmt.Fprintln(out, report.Heroes(rec.Heroes, mode))
	return nil
}
