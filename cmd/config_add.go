package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/config"

	"github.com/spf13/cobra"
)

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new profile with default values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		var label string

		if len(args) == 1 {
			label = args[0]
		} else {
			reader := bufio.NewReader(os.Stdin)
			fmt.Print("Enter label for new profile: ")
			label, _ = reader.ReadString('\n')
			label = strings.TrimSpace(label)
		}

		if label == "" {
			return fmt.Errorf("label cannot be empty")
		}

		path, err := config.CreateEmptyProfile(label)
		if err != nil {
			return err
		}

		fmt.Printf("Created new profile: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configAddCmd)
}
