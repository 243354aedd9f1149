package opts

import (
	"github.com/astragull/KKLC-Sentences/pkg/config"
	"github.com/astragull/KKLC-Sentences/pkg/log"
)

// RootOpts contains shared options used by all commands. The struct is
// filled by the root command once flags are parsed and the config loaded.
type RootOpts struct {
	Config     *config.Config
	Logger     *log.Logger
	UserLogger *log.UserLogger
}
