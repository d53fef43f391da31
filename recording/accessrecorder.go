package recording

import (
	"strconv"
	"strings"

	"github.com/rs/xid"

	"github.com/sarchlab/pagesim/hooking"
	"github.com/sarchlab/pagesim/paging"
)

// Table names used by the AccessRecorder.
const (
	AccessTable = "access"
	ResultTable = "result"
)

type accessEntry struct {
	RunID     string
	Simulator string
	Time      int
	Page      int
	Hit       bool
	Victim    int
	Evicted   bool
	Resident  string
}

type resultEntry struct {
	RunID  string
	Policy string
	Frames int
	Length int
	Faults int
	Hits   int
}

// AccessRecorder is a hook that writes every access of a run into a data
// recorder. It can be shared by simulators that run at the same time.
type AccessRecorder struct {
	recorder DataRecorder
	runID    string
}

// NewAccessRecorder creates an AccessRecorder for one run. An empty run ID
// gets a generated one.
func NewAccessRecorder(recorder DataRecorder, runID string) *AccessRecorder {
	if runID == "" {
		runID = xid.New().String()
	}

	recorder.CreateTable(AccessTable, accessEntry{})
	recorder.CreateTable(ResultTable, resultEntry{})

	return &AccessRecorder{
		recorder: recorder,
		runID:    runID,
	}
}

// RunID returns the identifier that tags the rows of this run.
func (r *AccessRecorder) RunID() string {
	return r.runID
}

// Func records an access.
func (r *AccessRecorder) Func(ctx hooking.HookCtx) {
	access, ok := ctx.Item.(paging.Access)
	if !ok {
		return
	}

	r.recorder.InsertData(AccessTable, accessEntry{
		RunID:     r.runID,
		Simulator: access.Simulator,
		Time:      access.Time,
		Page:      access.Page,
		Hit:       access.Hit,
		Victim:    access.Victim,
		Evicted:   access.Evicted,
		Resident:  joinPages(access.Resident),
	})
}

// RecordComparison records the final counts of every policy in the report.
func (r *AccessRecorder) RecordComparison(
	report paging.Comparison,
	reference []int,
	frames int,
) {
	for _, p := range paging.AllPolicies() {
		result, ok := report[p]
		if !ok {
			continue
		}

		r.recorder.InsertData(ResultTable, resultEntry{
			RunID:  r.runID,
			Policy: string(p),
			Frames: frames,
			Length: len(reference),
			Faults: result.Faults,
			Hits:   result.Hits,
		})
	}
}

func joinPages(pages []int) string {
	s := make([]string, len(pages))
	for i, p := range pages {
		s[i] = strconv.Itoa(p)
	}

	return strings.Join(s, " ")
}
