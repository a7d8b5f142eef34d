package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Info{CommitHash: "0123456789abcdef", BuildTime: "2026-10-01", Version: "v0.3.0"}
	assert.Equal(t, "0123456", info.Short())
	assert.Equal(t, "vg v0.3.0 (commit 0123456, built 2026-10-01)", info.String())
	assert.Equal(t, "visualgenome-go/v0.3.0", info.UserAgent())

	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Equal(t, Version, info.Version)
}
