package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/symposium-labs/symposium/cmd/symposium/commands"
)

var rootCmd = &cobra.Command{
	Use:   "symposium",
	Short: "Symposium debate engine CLI",
	Long:  `Coordinates adversarial multi-agent debates and reduces them into bias-checked consensus reports.`,
}

func init() {
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.ModelsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
