package application

import (
	"github.com/emprendevoz/emprende-api/internal/domain/gating"
	"github.com/emprendevoz/emprende-api/internal/domain/repository"
)

// CourseProgress is one course of a learning route as seen by a user.
type CourseProgress struct {
	CourseID           string `json:"course_id"`
	Title              string `json:"title"`
	RouteType          string `json:"route_type"`
	ModuleCode         string `json:"module_code"`
	OrderNumber        int    `json:"order_number"`
	TotalSections      int    `json:"total_sections"`
	CompletedSections  int    `json:"completed_sections"`
	ProgressPercentage int    `json:"progress_percentage"`
	Completed          bool   `json:"completed"`
	Unlocked           bool   `json:"unlocked"`
}

// courseProgress applies the sequential gate per route. counts must be
// ordered by route_type then order_number.
func courseProgress(counts []repository.CourseCounts) []CourseProgress {
	out := make([]CourseProgress, 0, len(counts))
	for start := 0; start < len(counts); {
		end := start
		for end < len(counts) && counts[end].RouteType == counts[start].RouteType {
			end++
		}
		route := counts[start:end]
		done := make([]bool, len(route))
		for i, c := range route {
			done[i] = gating.CourseComplete(c.Completed, c.Total)
		}
		for i, c := range route {
			out = append(out, CourseProgress{
				CourseID:           c.CourseID,
				Title:              c.Title,
				RouteType:          c.RouteType,
				ModuleCode:         c.ModuleCode,
				OrderNumber:        c.OrderNumber,
				TotalSections:      c.Total,
				CompletedSections:  c.Completed,
				ProgressPercentage: gating.Progress(c.Completed, c.Total),
				Completed:          done[i],
				Unlocked:           gating.Unlocked(done, i),
			})
		}
		start = end
	}
	return out
}

func findCourse(progress []CourseProgress, courseID string) (CourseProgress, bool) {
	for _, p := range progress {
		if p.CourseID == courseID {
			return p, true
		}
	}
	return CourseProgress{}, false
}

func completedCourses(progress []CourseProgress) int {
	n := 0
	for _, p := range progress {
		if p.Completed {
			n++
		}
	}
	return n
}

// moduleComplete holds when the module has at least one course and all of them are complete.
func moduleComplete(progress []CourseProgress, moduleID string) bool {
	found := false
	for _, p := range progress {
		if p.ModuleCode != moduleID {
			continue
		}
		if !p.Completed {
			return false
		}
		found = true
	}
	return found
}
