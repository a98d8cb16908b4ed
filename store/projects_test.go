package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Selvaprakash-V/SIH2K25/models"
)

func TestReplaceMissError(t *testing.T) {
	// Record still there means the status moved under the caller.
	assert.ErrorIs(t, replaceMissError(true), ErrConflict)
	assert.ErrorIs(t, replaceMissError(false), ErrNotFound)
}

func TestTerminalStatuses(t *testing.T) {
	assert.ElementsMatch(t, []models.ProjectStatus{
		models.StatusRejected,
		models.StatusCompleted,
		models.StatusCancelled,
	}, terminalStatuses())
}
