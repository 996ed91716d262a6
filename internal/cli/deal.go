package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Print one batch of cat profiles as JSON",
		Run:   runDeal,
	}
	cmd.Flags().IntP("count", "n", 0, "Number of profiles (default: cat_count from config)")

	RootCmd.AddCommand(cmd)
}

func runDeal(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	count := cfg.CatCount
	if cmd.Flags().Changed("count") {
		count, _ = cmd.Flags().GetInt("count")
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		exitErr("create generator", err)
	}

	cats, err := gen.Generate(cmd.Context(), count)
	if err != nil {
		exitErr("deal", err)
	}

	b, _ := json.MarshalIndent(cats, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
