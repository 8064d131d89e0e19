package config

import (
	"time"
)

// Values bound to the persistent flags of the root command.
var (
	DataDir    string
	Debug      bool
	RPCTimeout time.Duration
	JSONOutput bool
)
