package cli

import (
	"encoding/json"

	"github.com/urfave/cli/v2"

	"go.viam.com/robotstate/config"
)

// ConfigSchemaAction is the corresponding Action for 'config-schema'.
func ConfigSchemaAction(c *cli.Context) error {
	b, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", b)
	return nil
}
