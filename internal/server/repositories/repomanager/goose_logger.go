package repomanager

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

// gooseLogger routes goose's progress lines into the app logger.
type gooseLogger struct {
	logger logging.Logger
}

func newGooseLogger(l logging.Logger) *gooseLogger {
	return &gooseLogger{logger: l.With("module", "migrations")}
}

func (g *gooseLogger) Printf(format string, v ...interface{}) {
	g.logger.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// osExit is a seam for tests.
var osExit = os.Exit

// Fatalf keeps goose's contract: log, then exit.
func (g *gooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
	osExit(1)
}
