package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"scout/internal/config"

	"github.com/spf13/cobra"
)

const starterConfig = `# scout configuration

default_engine = "claude"

[engine.claude]
type = "claude"
binary = "claude"

# [engine.openai]
# type = "openai"
# base_url = "https://api.openai.com/v1"
# api_key = ""

# Override the model bound to a cost tier.
# [models]
# balanced = "claude-sonnet-4-5"

[gateway]
addr = ":8585"
# token = ""

# [services.brave]
# api_key = ""

# [trace]
# enabled = true
# endpoint = "localhost:4318"
`

var Cmd = &cobra.Command{
	Use:   "setup",
	Short: "Write a starter configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Path()
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("config already exists at %s\n", path)
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(starterConfig), 0o600); err != nil {
			return err
		}

		fmt.Printf("wrote starter config to %s\n", path)
		fmt.Println("set SCOUT_MODE=development to run with the cheap profile")
		return nil
	},
}
