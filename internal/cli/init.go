package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pawsprefs/paws/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Run:   runInit,
	}
	cmd.Flags().Bool("global", false, "Write ~/.paws/config.yaml instead of .paws/config.yaml")

	RootCmd.AddCommand(cmd)
}

func runInit(cmd *cobra.Command, args []string) {
	global, _ := cmd.Flags().GetBool("global")

	cfg := config.DefaultConfig()
	var (
		path string
		err  error
	)
	if global {
		path, err = config.GlobalConfigPath()
		if err != nil {
			exitErr("resolve global config", err)
		}
		err = config.SaveToGlobal(cfg)
	} else {
		path = config.ProjectConfigPath()
		err = config.SaveToProject(cfg)
	}
	if err != nil {
		exitErr("write config", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
}
