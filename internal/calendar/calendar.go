// Package calendar holds the pure operations the dashboard performs on a
// plan's post list. Every function returns a new slice and leaves its input
// untouched.
package calendar

import (
	"fmt"
	"slices"
	"sort"

	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

// ToggleStatus flips the status of the post with postID. An unknown id yields
// an unchanged copy.
func ToggleStatus(posts []models.PostItem, postID string) []models.PostItem {
	out := slices.Clone(posts)
	for i := range out {
		if out[i].ID == postID {
			out[i].Status = out[i].Status.Toggled()
			break
		}
	}
	return out
}

// Contains reports whether a post with postID exists.
func Contains(posts []models.PostItem, postID string) bool {
	return slices.ContainsFunc(posts, func(p models.PostItem) bool { return p.ID == postID })
}

// Append adds the generated posts after the existing ones in the order given.
// Posts are not filtered by topic; an added post whose id is already taken is
// re-keyed as <id>-<n> so ids stay unique within the calendar. Append(nil, posts)
// removes duplicates within a single list the same way.
func Append(posts, added []models.PostItem) []models.PostItem {
	out := make([]models.PostItem, 0, len(posts)+len(added))
	out = append(out, posts...)

	taken := make(map[string]struct{}, len(out)+len(added))
	for _, p := range out {
		taken[p.ID] = struct{}{}
	}
	for _, p := range added {
		if _, dup := taken[p.ID]; dup {
			p.ID = freeID(p.ID, taken)
		}
		taken[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

func freeID(base string, taken map[string]struct{}) string {
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// MaxDay returns the highest dayOfMonth in the calendar, or 0 when empty.
func MaxDay(posts []models.PostItem) int {
	highest := 0
	for _, p := range posts {
		if p.DayOfMonth > highest {
			highest = p.DayOfMonth
		}
	}
	return highest
}

// RecentTopics returns up to n topics from the end of the calendar, oldest
// first.
func RecentTopics(posts []models.PostItem, n int) []string {
	if n <= 0 || len(posts) == 0 {
		return nil
	}
	start := len(posts) - n
	if start < 0 {
		start = 0
	}
	topics := make([]string, 0, len(posts)-start)
	for _, p := range posts[start:] {
		topics = append(topics, p.Topic)
	}
	return topics
}

type Day struct {
	DayOfMonth int
	Posts      []models.PostItem
}

// GroupByDay buckets posts by dayOfMonth, ascending. Within a day the
// calendar order is kept.
func GroupByDay(posts []models.PostItem) []Day {
	index := map[int]int{}
	var days []Day
	for _, p := range posts {
		i, ok := index[p.DayOfMonth]
		if !ok {
			i = len(days)
			index[p.DayOfMonth] = i
			days = append(days, Day{DayOfMonth: p.DayOfMonth})
		}
		days[i].Posts = append(days[i].Posts, p)
	}
	sort.SliceStable(days, func(a, b int) bool { return days[a].DayOfMonth < days[b].DayOfMonth })
	return days
}

// Progress counts posted items against the calendar size.
func Progress(posts []models.PostItem) (posted, total int) {
	for _, p := range posts {
		if p.Status == models.StatusPosted {
			posted++
		}
	}
	return posted, len(posts)
}
