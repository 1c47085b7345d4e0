// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package install

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanExecute_StopsAtFirstFailure(t *testing.T) {
	var ran []string
	boom := errors.New("step two broke")
	plan := &Plan{Steps: []Step{
		{Title: "one", Run: func() error { ran = append(ran, "one"); return nil }},
		{Title: "two", Run: func() error { ran = append(ran, "two"); return boom }},
		{Title: "three", Run: func() error { ran = append(ran, "three"); return nil }},
	}}

	err := plan.Execute(nil)
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"one", "two"}, ran)
}

func TestPlanFinish_RunsCleanupsOnceInReverse(t *testing.T) {
	var order []string
	plan := &Plan{}
	plan.addCleanup(func() { order = append(order, "first") })
	plan.addCleanup(func() { order = append(order, "second") })

	plan.Finish(nil)
	plan.Finish(nil)
	plan.Finish(errors.New("late"))

	require.Equal(t, []string{"second", "first"}, order)
}

func TestPlanExecute_FinishesOnCancel(t *testing.T) {
	cleaned := false
	plan := &Plan{Steps: []Step{
		{Title: "confirm", Run: func() error { return ErrCancelled }},
	}}
	plan.addCleanup(func() { cleaned = true })

	err := plan.Execute(nil)
	require.ErrorIs(t, err, ErrCancelled)
	require.True(t, cleaned)
}
