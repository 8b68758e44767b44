package compilesvc

import (
	"testing"
	"time"

	"github.com/kegliz/nacompile/compiler/model"
	"github.com/kegliz/nacompile/compiler/pipeline"
	"github.com/kegliz/nacompile/compiler/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForTerminal(t *testing.T, svc *Service, id string) *Job {
	t.Helper()
	deadline := time.Now().Add(testutil.DefaultTestTimeout)
	for time.Now().Before(deadline) {
		j, ok := svc.Get(id)
		require.True(t, ok, "job must exist once submitted")
		if j.Status == StatusDone || j.Status == StatusFailed {
			return j
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("job %s did not reach a terminal state in time", id)
	return nil
}

func TestSubmit_RunsJobToCompletion(t *testing.T) {
	svc := New(zerolog.Nop(), 4)

	req := Request{
		Nx: testutil.SmallChipNx, Ny: testutil.SmallChipNy,
		Nc: testutil.SmallChipNc, Nr: testutil.SmallChipNr,
		Program: testutil.LineProgram(),
		Options: pipeline.Options{
			RoutingStrategy: "maximalis_sorted",
			Seed:            testutil.DeterministicSeed,
		},
	}

	id, err := svc.Submit(req)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	j := waitForTerminal(t, svc, id)
	require.Equal(t, StatusDone, j.Status, "job error: %s", j.Err)
	require.NotNil(t, j.Result)
	assert.NotEmpty(t, j.Result.Compact)
}

func TestSubmit_RejectsNonPositiveArchitecture(t *testing.T) {
	svc := New(zerolog.Nop(), 1)

	_, err := svc.Submit(Request{Nx: 0, Ny: 4, Program: testutil.LineProgram()})
	assert.Error(t, err)
}

func TestGet_UnknownIDNotFound(t *testing.T) {
	svc := New(zerolog.Nop(), 1)

	_, ok := svc.Get("does-not-exist")
	assert.False(t, ok)
}

func TestSubmit_InfersQubitCountFromProgram(t *testing.T) {
	svc := New(zerolog.Nop(), 1)

	req := Request{
		Nx: testutil.SmallChipNx, Ny: testutil.SmallChipNy,
		Nc: testutil.SmallChipNc, Nr: testutil.SmallChipNr,
		Program: model.Program{model.NewGate(0, 1)},
		Options: pipeline.Options{
			RoutingStrategy: "maximalis_sorted",
			Seed:            testutil.DeterministicSeed,
		},
	}
	id, err := svc.Submit(req)
	require.NoError(t, err)

	j := waitForTerminal(t, svc, id)
	require.Equal(t, StatusDone, j.Status, "job error: %s", j.Err)
}
