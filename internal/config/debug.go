package config

import "os"

func IsDebug() bool {
	return os.Getenv("MISE_MCP_DEBUG") == "1"
}
