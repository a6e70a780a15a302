package membership

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SlotLead      = "lead"
	SlotManager   = "manager"
	SlotDeveloper = "developer"

	OpAttach = "attach"
	OpDetach = "detach"
)

var writes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "devteams_membership_writes_total",
	Help: "Back-references written while reconciling team membership.",
}, []string{"slot", "op"})

func countWrites(slot, op string, res sql.Result) {
	n, err := res.RowsAffected()
	if err != nil {
		return
	}
	writes.WithLabelValues(slot, op).Add(float64(n))
}
