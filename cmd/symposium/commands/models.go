package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/symposium-labs/symposium/config"
	"github.com/symposium-labs/symposium/router"
)

// ModelsCmd prints the backend capability/cost table and availability.
var ModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show backend profiles and availability",
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Load()
		checker := router.StaticAvailability(settings.AvailableModels)
		profiles := router.DefaultProfiles()

		var names []string
		for name := range profiles {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("=== Backend Profiles ===")
		for _, name := range names {
			profile := profiles[name]
			status := "available"
			if !checker.Available(name) {
				status = "unavailable"
			}
			fmt.Printf("%-18s $%.4f/1K tokens  %s\n", name, profile.CostPer1KTokens, status)
			if len(profile.FallbackChain) > 0 {
				fmt.Printf("  fallbacks: %v\n", profile.FallbackChain)
			}
		}

		fmt.Println("\n=== Role Preferences ===")
		prefs := router.DefaultRolePreferences()
		var roles []string
		for role := range prefs {
			roles = append(roles, string(role))
		}
		sort.Strings(roles)
		for _, role := range roles {
			pref := prefs[router.Role(role)]
			fmt.Printf("%-20s primary=%s preferred=%v\n", role, pref.PrimaryCapability, pref.PreferredModels)
		}
	},
}
