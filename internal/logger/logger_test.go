package logger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/logger"
)

func TestNew(t *testing.T) {
	for _, debug := range []bool{false, true} {
		log, err := logger.New(debug)
		require.NoError(t, err)
		require.NotNil(t, log)
	}
}
