package cpm

import "github.com/joshharrison/taskflow/internal/task"

// relation encodes one dependency type as a pair of timing formulas.
//
// forward proposes the successor's earliest start from the predecessor's
// earliest times. backward proposes the predecessor's latest finish from the
// successor's latest times. backward is the algebraic inverse of forward.
type relation struct {
	forward  func(predES, predEF, succDur, lag float64) float64
	backward func(succLS, succLF, predDur, lag float64) float64
}

var relations = map[task.DependencyType]relation{
	task.FinishToStart: {
		forward:  func(_, predEF, _, lag float64) float64 { return predEF + lag },
		backward: func(succLS, _, _, lag float64) float64 { return succLS - lag },
	},
	task.StartToStart: {
		forward:  func(predES, _, _, lag float64) float64 { return predES + lag },
		backward: func(succLS, _, predDur, lag float64) float64 { return succLS - lag + predDur },
	},
	task.FinishToFinish: {
		forward:  func(_, predEF, succDur, lag float64) float64 { return predEF - succDur + lag },
		backward: func(_, succLF, _, lag float64) float64 { return succLF - lag },
	},
	task.StartToFinish: {
		forward:  func(predES, _, succDur, lag float64) float64 { return predES - succDur + lag },
		backward: func(_, succLF, predDur, lag float64) float64 { return succLF - lag + predDur },
	},
}

// relationFor falls back to FINISH_TO_START for an empty type.
func relationFor(t task.DependencyType) relation {
	if r, ok := relations[t]; ok {
		return r
	}
	return relations[task.FinishToStart]
}
