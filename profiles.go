package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"text_differentiator/generator"
)

// NewProfilesCmd creates the profiles command.
func NewProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List student profiles",
		Long: `Profiles lists the built-in student profiles and those added in the
configuration file, with the options each one applies.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, p := range generator.NewProfiles(cfg.Profiles...).All() {
				fmt.Fprintf(w, "%s\n  Grade Level: %s\n", p.Name, p.Options.Grade)
				for _, s := range p.Settings() {
					mark := "no"
					if s.Enabled {
						mark = "yes"
					}
					fmt.Fprintf(w, "  %s: %s\n", s.Label, mark)
				}
			}
			return nil
		},
	}
}
