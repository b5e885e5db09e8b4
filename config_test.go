package scenedi_test

import (
	"testing"

	"github.com/scenedi/scenedi"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := scenedi.LoadConfig("testdata/absent.env")
	assert.Equal(t, "off", cfg.LogMode)
	assert.Equal(t, "warn", cfg.Strategy)
	assert.Empty(t, cfg.InspectorAddr)
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("SCENEDI_LOG", "dev")
	t.Setenv("SCENEDI_STRATEGY", "fail")
	t.Setenv("SCENEDI_INSPECT_ADDR", "127.0.0.1:7777")

	cfg := scenedi.LoadConfig("testdata/absent.env")
	assert.Equal(t, "dev", cfg.LogMode)
	assert.Equal(t, "fail", cfg.Strategy)
	assert.Equal(t, "127.0.0.1:7777", cfg.InspectorAddr)
}

func TestBuildStrategy(t *testing.T) {
	warn := (&scenedi.Config{Strategy: "warn"}).BuildStrategy(nil)
	assert.IsType(t, &scenedi.WarnStrategy{}, warn)

	fail := (&scenedi.Config{Strategy: "fail"}).BuildStrategy(nil)
	assert.IsType(t, &scenedi.FailStrategy{}, fail)
}

func TestBuildLoggerOffIsNop(t *testing.T) {
	log := (&scenedi.Config{LogMode: "off"}).BuildLogger()
	assert.NotNil(t, log)
}
