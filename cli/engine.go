package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"go.viam.com/robotstate/fetch"
	"go.viam.com/robotstate/logging"
	"go.viam.com/robotstate/robotstate"
	"go.viam.com/robotstate/utils"
)

// loadEngine retrieves and parses a description, giving up after timeout.
func loadEngine(
	ctx context.Context,
	locator, framePrefix string,
	timeout time.Duration,
	logger logging.Logger,
) (*robotstate.Engine, error) {
	if timeout > 0 {
		var cancel func()
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	stopSlowLogger := utils.SlowLogger(ctx, "waiting for robot description", "description", locator, logger)
	defer stopSlowLogger()

	retriever := fetch.NewRetriever(&http.Client{}, logger.Sublogger("fetch"))
	engine, err := robotstate.NewEngineFromSource(ctx, locator, retriever.Fetch, logger,
		robotstate.WithFramePrefix(framePrefix))
	if err != nil {
		return nil, err
	}
	if engine.Model().Len() == 0 {
		logger.Warnw("description has no joints", "description", locator)
	}
	return engine, nil
}

func loadEngineFromFlags(c *cli.Context, logger logging.Logger) (*robotstate.Engine, error) {
	return loadEngine(c.Context, c.String(flagDescription), c.String(flagFramePrefix), c.Duration(flagTimeout), logger)
}
