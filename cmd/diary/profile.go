// ABOUTME: CLI commands for the health profile and vaccination history.
// ABOUTME: Setting height or weight recomputes BMI.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/diary/internal/journal"
	"github.com/harperreed/diary/internal/models"
	"github.com/spf13/cobra"
)

var (
	profileName   string
	profileHeight float64
	profileWeight float64
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"p"},
	Short:   "Show or update your health profile",
	Long: `Manage your name, height, weight, and vaccination history.

BMI is weight / (height in m)^2, rounded to two decimals. It is only shown
when both height and weight are set.

EXAMPLES:

  diary profile                                  # Show the profile
  diary profile set --height 172.5 --weight 64   # Update measurements
  diary profile set --weight 0                   # Clear weight
  diary profile vaccine add "Flu" 2024-10-15     # Record a vaccination
  diary profile vaccine rm 1a2b3c4d              # Remove by ID prefix`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printProfile(diary.Profile())
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	Long: `Show name, measurements, BMI, and vaccinations sorted by date.

EXAMPLES:

  diary profile show`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printProfile(diary.Profile())
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update name, height, or weight",
	Long: `Update profile fields. Only the flags you pass change.

Height is 0-250 cm and weight is 0-300 kg, kept to one decimal.
Passing 0 clears a measurement.

EXAMPLES:

  diary profile set --name Harper
  diary profile set --height 180 --weight 81`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var u journal.ProfileUpdate
		flags := cmd.Flags()
		if flags.Changed("name") {
			u.Name = &profileName
		}
		if flags.Changed("height") {
			u.HeightCM = &profileHeight
		}
		if flags.Changed("weight") {
			u.WeightKG = &profileWeight
		}
		if u.Name == nil && u.HeightCM == nil && u.WeightKG == nil {
			return fmt.Errorf("nothing to update: pass --name, --height, or --weight")
		}

		p, err := diary.UpdateProfile(u)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		color.Green("✓ Updated profile")
		printProfile(p)
		return nil
	},
}

var vaccineCmd = &cobra.Command{
	Use:     "vaccine",
	Aliases: []string{"vaccines", "vax"},
	Short:   "Manage vaccination records",
	Long: `Add or remove vaccination records.

EXAMPLES:

  diary profile vaccine add "Hepatitis B" 2024-03-01
  diary profile vaccine rm 1a2b3c4d`,
}

var vaccineAddCmd = &cobra.Command{
	Use:   "add <name> <date>",
	Short: "Record a vaccination",
	Long: `Record a vaccination by name and date (YYYY-MM-DD).

EXAMPLES:

  diary profile vaccine add "Flu" 2024-10-15`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := diary.AddVaccination(args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to add vaccination: %w", err)
		}

		color.Green("✓ Added vaccination %s", v.Name)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(v.ID.String()[:8]),
			v.Date)
		return nil
	},
}

var vaccineRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Remove a vaccination record",
	Long: `Remove a vaccination by its ID or ID prefix.

The 8-character prefix is shown by 'diary profile'. If the prefix matches
more than one record, nothing is removed and an error is returned.

EXAMPLES:

  diary profile vaccine rm 1a2b3c4d`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := diary.DeleteVaccination(args[0])
		if errors.Is(err, journal.ErrNotFound) {
			return fmt.Errorf("vaccination not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to delete vaccination: %w", err)
		}

		color.Yellow("✗ Deleted vaccination %s", v.Name)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(v.ID.String()[:8]),
			v.Date)
		return nil
	},
}

func printProfile(p models.Profile) {
	faint := color.New(color.Faint)
	name := p.Name
	if name == "" {
		name = "-"
	}
	fmt.Printf("  %s %s\n", faint.Sprint(padRight("name", 9)), name)
	fmt.Printf("  %s %s\n", faint.Sprint(padRight("height", 9)), formatMean(p.HeightCM, "%.1f cm"))
	fmt.Printf("  %s %s\n", faint.Sprint(padRight("weight", 9)), formatMean(p.WeightKG, "%.1f kg"))
	fmt.Printf("  %s %s\n", faint.Sprint(padRight("bmi", 9)), formatMean(p.BMI, "%.2f"))

	vaccines := p.SortedVaccinations()
	if len(vaccines) == 0 {
		fmt.Printf("  %s none\n", faint.Sprint(padRight("vaccines", 9)))
		return
	}
	fmt.Printf("  %s\n", faint.Sprint("vaccines"))
	for _, v := range vaccines {
		fmt.Printf("    %s %s %s\n", faint.Sprint(v.ID.String()[:8]), v.Date, v.Name)
	}
}

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "height in cm (0 clears)")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "weight in kg (0 clears)")

	vaccineCmd.AddCommand(vaccineAddCmd)
	vaccineCmd.AddCommand(vaccineRmCmd)

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(vaccineCmd)
	rootCmd.AddCommand(profileCmd)
}
