package tools_test

import (
	"testing"
	"time"

	"app/pkg/tools"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDurationUnmarshal(t *testing.T) {
	assert := require.New(t)

	var cfg struct {
		Timeout tools.Duration `yaml:"timeout"`
	}

	assert.NoError(yaml.Unmarshal([]byte("timeout: 1m30s"), &cfg))
	assert.Equal(90*time.Second, cfg.Timeout.Std())

	assert.Error(yaml.Unmarshal([]byte("timeout: nonsense"), &cfg))
}
