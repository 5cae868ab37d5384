package schedules

import (
	"testing"

	"pet-care-planner/internal/domain/caretasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func task(t *testing.T, name, prio string, duration int, at string) caretasks.CareTask {
	t.Helper()
	ct, err := caretasks.New(caretasks.NewInput{
		Name:          name,
		Priority:      prio,
		Duration:      duration,
		PreferredTime: at,
	})
	require.NoError(t, err)
	return ct
}

func names(items []caretasks.CareTask) []string {
	out := make([]string, 0, len(items))
	for _, t := range items {
		out = append(out, t.Name)
	}
	return out
}

func TestSortByPriority(t *testing.T) {
	in := []caretasks.CareTask{
		task(t, "low-10", "low", 10, ""),
		task(t, "high-30", "high", 30, ""),
		task(t, "medium-5", "medium", 5, ""),
		task(t, "high-10", "high", 10, ""),
		task(t, "high-10b", "high", 10, ""),
	}

	out := SortByPriority(in)
	assert.Equal(t, []string{"high-10", "high-10b", "high-30", "medium-5", "low-10"}, names(out))
	// la entrada no se toca
	assert.Equal(t, "low-10", in[0].Name)
}

func TestSortByTime(t *testing.T) {
	in := []caretasks.CareTask{
		task(t, "untimed-1", "high", 10, ""),
		task(t, "evening", "low", 10, "6:30 PM"),
		task(t, "garbage", "low", 10, "soon"),
		task(t, "morning", "low", 10, "07:15"),
		task(t, "untimed-2", "high", 10, ""),
		task(t, "noon", "low", 10, "12:00 PM"),
	}

	out := SortByTime(in)
	assert.Equal(t, []string{"morning", "noon", "evening", "untimed-1", "garbage", "untimed-2"}, names(out))
}

func TestSelectWithinBudget(t *testing.T) {
	a := task(t, "A", "high", 30, "")
	b := task(t, "B", "high", 40, "")
	c := task(t, "C", "low", 20, "")

	tests := []struct {
		name         string
		budget       int
		wantSelected []string
		wantExcluded []string
	}{
		{"skipped task does not block smaller ones", 60, []string{"A", "C"}, []string{"B"}},
		{"zero budget", 0, []string{}, []string{"A", "B", "C"}},
		{"everything fits", 90, []string{"A", "B", "C"}, []string{}},
		{"exact fit", 70, []string{"A", "B"}, []string{"C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, excluded := SelectWithinBudget(SortByPriority([]caretasks.CareTask{a, b, c}), tt.budget)
			assert.Equal(t, tt.wantSelected, names(selected))
			assert.Equal(t, tt.wantExcluded, names(excluded))

			total := 0
			for _, s := range selected {
				total += s.Duration
			}
			assert.LessOrEqual(t, total, tt.budget)
		})
	}
}

func TestFindConflicts(t *testing.T) {
	tests := []struct {
		name      string
		tasks     func(t *testing.T) []caretasks.CareTask
		want      int
		sameStart bool
	}{
		{
			name: "back to back",
			tasks: func(t *testing.T) []caretasks.CareTask {
				return []caretasks.CareTask{task(t, "a", "high", 30, "10:00"), task(t, "b", "high", 30, "10:30")}
			},
			want: 0,
		},
		{
			name: "overlap",
			tasks: func(t *testing.T) []caretasks.CareTask {
				return []caretasks.CareTask{task(t, "a", "high", 40, "10:00"), task(t, "b", "high", 30, "10:30")}
			},
			want: 1,
		},
		{
			name: "one minute overlap",
			tasks: func(t *testing.T) []caretasks.CareTask {
				return []caretasks.CareTask{task(t, "a", "high", 31, "10:00"), task(t, "b", "high", 30, "10:30")}
			},
			want: 1,
		},
		{
			name: "12h and 24h forms collide",
			tasks: func(t *testing.T) []caretasks.CareTask {
				return []caretasks.CareTask{task(t, "a", "high", 15, "2:00 PM"), task(t, "b", "high", 15, "14:00")}
			},
			want:      1,
			sameStart: true,
		},
		{
			name: "untimed never conflicts",
			tasks: func(t *testing.T) []caretasks.CareTask {
				return []caretasks.CareTask{task(t, "a", "high", 600, ""), task(t, "b", "high", 30, "10:30"), task(t, "c", "high", 30, "bogus")}
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindConflicts(tt.tasks(t))
			require.Len(t, got, tt.want)
			if tt.want > 0 {
				assert.Equal(t, tt.sameStart, got[0].SameStart)
			}
		})
	}
}

func TestDetectConflicts_Messages(t *testing.T) {
	walk := task(t, "Walk", "high", 30, "08:00")
	walk.PetName = "Buddy"
	feed := task(t, "Feed", "high", 15, "8:00 AM")
	feed.PetName = "Milo"
	brush := task(t, "Brush", "low", 20, "08:10")

	got := DetectConflicts([]caretasks.CareTask{walk, feed, brush})
	require.Len(t, got, 3)
	assert.Equal(t, "'Walk' [Buddy] (08:00, 30 min) and 'Feed' [Milo] (8:00 AM, 15 min) start at the same time", got[0])
	assert.Equal(t, "'Walk' [Buddy] (08:00, 30 min) overlaps 'Brush' (08:10, 20 min)", got[1])
	assert.Equal(t, "'Feed' [Milo] (8:00 AM, 15 min) overlaps 'Brush' (08:10, 20 min)", got[2])

	assert.Empty(t, DetectConflicts(nil))
}

func TestFilters_Commute(t *testing.T) {
	mk := func(name, pet string, done bool) caretasks.CareTask {
		ct := task(t, name, "medium", 10, "")
		ct.PetName = pet
		ct.Completed = done
		return ct
	}
	in := []caretasks.CareTask{
		mk("1", "Buddy", false),
		mk("2", "Milo", false),
		mk("3", "Buddy", true),
		mk("4", "buddy", false),
		mk("5", "Milo", true),
	}

	for _, done := range []bool{true, false} {
		a := FilterByPetName(FilterByCompletion(in, done), "Buddy")
		b := FilterByCompletion(FilterByPetName(in, "Buddy"), done)
		assert.Equal(t, names(a), names(b))
	}

	assert.Equal(t, []string{"1", "4"}, names(FilterByCompletion(FilterByPetName(in, "Buddy"), false)))
	assert.Equal(t, []string{"3", "5"}, names(FilterByCompletion(in, true)))
	assert.Len(t, in, 5)
}
