package cli

import (
	"github.com/urfave/cli/v2"
)

// ModelAction is the corresponding Action for 'model'.
func ModelAction(c *cli.Context) error {
	engine, err := loadEngineFromFlags(c, newLogger(c))
	if err != nil {
		return err
	}
	model := engine.Model()
	printf(c.App.Writer, "%s", model.String())
	printf(c.App.Writer, "%d joints, %d movable", model.Len(), len(model.MovableJointNames()))
	return nil
}
