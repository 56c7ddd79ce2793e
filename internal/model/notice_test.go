package model

import (
	"testing"
	"time"
)

func TestSortNoticesPinnedFirstThenNewest(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	t2 := t0.Add(2 * time.Hour)

	list := []Notice{
		{ID: 1, Title: "A", IsPinned: false, CreatedAt: t1},
		{ID: 2, Title: "B", IsPinned: true, CreatedAt: t0},
		{ID: 3, Title: "C", IsPinned: false, CreatedAt: t2},
	}
	SortNotices(list)

	want := []string{"B", "C", "A"}
	for i, title := range want {
		if list[i].Title != title {
			t.Fatalf("position %d: got %s, want %s (order %v)", i, list[i].Title, title, list)
		}
	}
}

func TestSortNoticesTieBrokenByID(t *testing.T) {
	ts := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	list := []Notice{
		{ID: 1, CreatedAt: ts},
		{ID: 3, CreatedAt: ts},
		{ID: 2, CreatedAt: ts},
	}
	SortNotices(list)
	if list[0].ID != 3 || list[1].ID != 2 || list[2].ID != 1 {
		t.Errorf("tie order: got %d,%d,%d", list[0].ID, list[1].ID, list[2].ID)
	}
}
