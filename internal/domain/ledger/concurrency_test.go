package ledger_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epi-estoque/internal/domain/ledger"
)

// Las mismas entradas compartidas entre llamadas paralelas producen siempre la
// misma salida y no se modifican (go test -race).
func TestLedger_UsoConcurrente(t *testing.T) {
	in := dashboardInput()
	in.Catalog = ledger.NewCatalog(in.Materials, in.People)
	period := ledger.YearOf(2024)

	wantDash, err := json.Marshal(ledger.Compose(in, period, ledger.ComposeOptions{}))
	require.NoError(t, err)
	wantSnap, err := json.Marshal(ledger.BuildSnapshot(in.Materials, in.Inflows, in.Outflows, period))
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		i := i
		t.Run(fmt.Sprintf("llamada-%02d", i), func(t *testing.T) {
			t.Parallel()

			dash, err := json.Marshal(ledger.Compose(in, period, ledger.ComposeOptions{Snapshot: ledger.SnapshotMode(i % 2)}))
			require.NoError(t, err)
			if i%2 == 0 {
				assert.JSONEq(t, string(wantDash), string(dash))
			}

			snap, err := json.Marshal(ledger.BuildSnapshot(in.Materials, in.Inflows, in.Outflows, period))
			require.NoError(t, err)
			assert.JSONEq(t, string(wantSnap), string(snap))

			assert.True(t, ledger.Balance("M1", in.Inflows, in.Outflows, period).Equal(d("-3")))
		})
	}
}
