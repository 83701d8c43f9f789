package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFavorite(t *testing.T) {
	before := testutil.ToFloat64(FavoriteMutationsTotal.WithLabelValues("add", "false"))
	ObserveFavorite("add", false, 4)
	assert.Equal(t, before+1, testutil.ToFloat64(FavoriteMutationsTotal.WithLabelValues("add", "false")))
	assert.Equal(t, 4.0, testutil.ToFloat64(FavoritesCount))
}

func TestObserveSearch(t *testing.T) {
	before := testutil.ToFloat64(SearchesTotal.WithLabelValues(OutcomeEmpty))
	ObserveSearch(OutcomeEmpty, 120*time.Millisecond)
	ObserveSearch(OutcomeEmpty, 0)
	assert.Equal(t, before+2, testutil.ToFloat64(SearchesTotal.WithLabelValues(OutcomeEmpty)))
}

func TestServe_DisabledWithoutAddr(t *testing.T) {
	assert.NoError(t, Serve(context.Background(), "", nil))
}
