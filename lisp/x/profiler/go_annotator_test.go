package profiler_test

import (
	"context"
	"testing"

	"github.com/luthersystems/minilisp/lisp/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPprofAnnotator(t *testing.T) {
	ppa := profiler.NewPprofAnnotator(context.Background())
	require.NoError(t, runProfiled(t, ppa, testLisp))
	assert.False(t, ppa.IsEnabled())
}
