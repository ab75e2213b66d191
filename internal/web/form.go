package web

import (
	"net/url"

	"github.com/wichananm65/cv-generator-backend/internal/cv"
)

// The generator form encodes the experience and education lists as parallel
// fields: the i-th exp_title, exp_employer, exp_duration and exp_description
// together describe one row. Rows are rebuilt here exactly as submitted;
// dropping the blank ones is the cv service's job.

func buildExperiences(form url.Values) []cv.Experience {
	titles := form["exp_title"]
	employers := form["exp_employer"]
	durations := form["exp_duration"]
	descriptions := form["exp_description"]

	out := make([]cv.Experience, 0, len(titles))
	for i := range titles {
		out = append(out, cv.Experience{
			Title:       titles[i],
			Employer:    fieldAt(employers, i),
			Duration:    fieldAt(durations, i),
			Description: fieldAt(descriptions, i),
		})
	}
	return out
}

func buildEducation(form url.Values) []cv.Education {
	degrees := form["edu_degree"]
	institutions := form["edu_institution"]
	durations := form["edu_duration"]

	out := make([]cv.Education, 0, len(degrees))
	for i := range degrees {
		out = append(out, cv.Education{
			Degree:      degrees[i],
			Institution: fieldAt(institutions, i),
			Duration:    fieldAt(durations, i),
		})
	}
	return out
}

// fieldAt tolerates sibling lists shorter than the primary one.
func fieldAt(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}
