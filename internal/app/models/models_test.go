package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStage(t *testing.T) {
	assert.Equal(t, StageIdea, NormalizeStage("idea"))
	assert.Equal(t, StageMVP, NormalizeStage(" Mvp "))
	assert.Equal(t, StageScaling, NormalizeStage("SCALING"))
	assert.Equal(t, StartupStage("Growth"), NormalizeStage(" Growth"))
	assert.False(t, NormalizeStage("Growth").Known())
}

func TestStartup_CoolingDown(t *testing.T) {
	reapplyAfter := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	rejected := &Startup{Status: StartupRejected, ReapplyAfter: &reapplyAfter}

	assert.True(t, rejected.CoolingDown(reapplyAfter.Add(-time.Second)))
	assert.True(t, rejected.CoolingDown(reapplyAfter), "the boundary instant still blocks")
	assert.False(t, rejected.CoolingDown(reapplyAfter.Add(time.Second)))

	pending := &Startup{Status: StartupPending}
	assert.False(t, pending.CoolingDown(reapplyAfter))

	var missing *Startup
	assert.False(t, missing.CoolingDown(reapplyAfter))
}
