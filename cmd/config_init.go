package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/config"

	"github.com/spf13/cobra"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default profile",
	RunE: func(cmd *cobra.Command, args []string) error {

		defaultPath := filepath.Join(config.ProfilesDir(), "Default.yaml")

		if _, err := os.Stat(defaultPath); err == nil {
			fmt.Println("Profile already exists at:")
			fmt.Println("  ", defaultPath)
			fmt.Println("Use `freshwater-cdn config reset` to recreate it.")
			return nil
		}

		def := config.DefaultConfig()

		fmt.Println("Profile will be saved at:")
		fmt.Println("  ", defaultPath)
		fmt.Println()

		fmt.Println("Default configuration:")
		def.Print()
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)
		fmt.Printf("Create Default profile at %s? [y/N]: ", defaultPath)
		resp, _ := reader.ReadString('\n')
		resp = strings.TrimSpace(strings.ToLower(resp))

		if resp != "y" && resp != "yes" {
			fmt.Println("Aborted.")
			return nil
		}

		path, err := config.InitDefaultProfile()
		if err != nil {
			return fmt.Errorf("failed to write profile: %w", err)
		}

		fmt.Println("Profile created at:", path)
		fmt.Println("This profile is now active (label: Default).")

		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
