package workflow

import (
	"sort"

	"github.com/samber/lo"

	"talenthub/pipeline-service/internal/model"
)

// stageOrder fixes the board columns: APPLIED(0) < SCREENING(1) <
// INTERVIEW(2) < OFFER(3) < HIRED(4).
var stageOrder = []Stage{StageApplied, StageScreening, StageInterview, StageOffer, StageHired}

// StageIndex returns the 0-based column index of a stage, or -1 for an
// unknown value.
func StageIndex(s Stage) int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// NextStage returns the stage one column forward, or "" at HIRED — the board
// has no column past HIRED.
func NextStage(s Stage) Stage {
	i := StageIndex(s)
	if i < 0 || i == len(stageOrder)-1 {
		return ""
	}
	return stageOrder[i+1]
}

// PreviousStage returns the stage one column back, or "" at APPLIED.
func PreviousStage(s Stage) Stage {
	i := StageIndex(s)
	if i <= 0 {
		return ""
	}
	return stageOrder[i-1]
}

// Stages returns the five columns in board order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// Board is the kanban view: pipelines partitioned per stage.
type Board map[Stage][]model.Pipeline

// GroupByStage partitions pipeline rows into board columns, each column
// ordered most-recently-created first. Rows carrying an unknown stage are
// dropped rather than invented into a column.
func GroupByStage(rows []model.Pipeline) Board {
	sorted := make([]model.Pipeline, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	grouped := lo.GroupBy(sorted, func(p model.Pipeline) Stage {
		return Stage(p.Stage)
	})

	board := make(Board, len(stageOrder))
	for _, s := range stageOrder {
		board[s] = grouped[s]
	}
	return board
}
