package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortForDisplay(t *testing.T) {
	tasks := []Task{
		{ID: "a", Status: TaskStatusCompleted, OrderRank: 1},
		{ID: "b", Status: TaskStatusPending, OrderRank: 3},
		{ID: "c", Status: TaskStatusInProgress, OrderRank: 1},
		{ID: "d", Status: TaskStatusPending, OrderRank: 2},
		{ID: "e", Status: TaskStatusCompleted, OrderRank: 0},
	}

	sorted := SortForDisplay(tasks)

	ids := make([]string, len(sorted))
	for i, task := range sorted {
		ids[i] = task.ID
	}
	// Incomplete ascending by rank, then completed ascending by rank.
	assert.Equal(t, []string{"c", "d", "b", "e", "a"}, ids)

	// Input order untouched.
	assert.Equal(t, "a", tasks[0].ID)
}

func TestSortForDisplayStableOnEqualRanks(t *testing.T) {
	tasks := []Task{
		{ID: "first", Status: TaskStatusPending, OrderRank: 5},
		{ID: "second", Status: TaskStatusPending, OrderRank: 5},
	}

	sorted := SortForDisplay(tasks)
	assert.Equal(t, "first", sorted[0].ID)
	assert.Equal(t, "second", sorted[1].ID)
}

func TestMaxOrderRank(t *testing.T) {
	assert.Equal(t, 0, MaxOrderRank(nil))
	assert.Equal(t, 0, MaxOrderRank([]Task{{OrderRank: -4}}))
	assert.Equal(t, 7, MaxOrderRank([]Task{{OrderRank: 2}, {OrderRank: 7}, {OrderRank: 1}}))
}
