package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "주도주 마켓 대시보드 수집기",
	Long: `Stock Dashboard CLI

한국/미국 증시를 섹터별로 수집해 주도주 Top 10과 AI 전략을
JSON 대시보드로 만드는 수집기.

Usage:
  go run ./cmd/dashboard [command]

Examples:
  go run ./cmd/dashboard fetch
  go run ./cmd/dashboard serve
  go run ./cmd/dashboard scheduler start
  go run ./cmd/dashboard status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
