package jobs_test

import (
	"errors"
	"testing"

	"parceldelivery/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j fakeJob) Name() string { return j.name }

func (j fakeJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.log = append(*j.log, "start "+j.name)
	return nil
}

func (j fakeJob) Stop() { *j.log = append(*j.log, "stop "+j.name) }

func TestJobManager(t *testing.T) {
	t.Run("should stop in reverse order", func(t *testing.T) {
		var log []string
		jm := jobs.NewJobManager(fakeJob{name: "a", log: &log}, fakeJob{name: "b", log: &log})

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("should stop started jobs when one fails", func(t *testing.T) {
		var log []string
		jm := jobs.NewJobManager(
			fakeJob{name: "a", log: &log},
			fakeJob{name: "b", log: &log, startErr: errors.New("bad schedule")},
		)

		err := jm.StartAll()

		require.ErrorContains(t, err, "failed to start b job")
		assert.Equal(t, []string{"start a", "stop a"}, log)
	})
}
