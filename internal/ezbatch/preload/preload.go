// Package preload embeds the staging hook that wraps a job's command when
// preloading is enabled. The hook reads two environment entries and runs
// inside the user's container, so it stays a shell script.
package preload

import (
	_ "embed"
	"encoding/base64"
	"fmt"
)

// Reserved environment keys read by the hook.
const (
	MountsEnv  = "EZBATCH_S3_MOUNTS"
	CommandEnv = "EZBATCH_COMMAND"
)

const scriptPath = "/tmp/preload.sh"

//go:embed preload.sh
var script []byte

// Script returns the hook source.
func Script() string {
	return string(script)
}

// Command returns the container command that installs and runs the hook.
// The script travels base64 encoded so no shell quoting is involved.
func Command() []string {
	encoded := base64.StdEncoding.EncodeToString(script)
	return []string{
		"/bin/bash",
		"-c",
		fmt.Sprintf("echo %s | base64 -d > %s; chmod +x %s; %s", encoded, scriptPath, scriptPath, scriptPath),
	}
}

// IsReserved reports whether key is one of the hook's environment entries.
func IsReserved(key string) bool {
	return key == MountsEnv || key == CommandEnv
}
