package env

import (
	"os"

	"log/slog"

	"github.com/lunarbay/proviso/pkg/parse"
)

func Must(key string) string {
	res := os.Getenv(key)
	if len(res) == 0 {
		slog.Error("env var must be set", "key", key)
		os.Exit(1)
	}
	return res
}

// List reads a comma-separated env var, empty slice when unset.
func List(key string) []string {
	return parse.ParseList(os.Getenv(key))
}
