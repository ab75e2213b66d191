package cv

import "encoding/json"

type Experience struct {
	Title       string `json:"title"`
	Employer    string `json:"employer"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Duration    string `json:"duration"`
}

type CV struct {
	ID                int          `json:"cvId"`
	UserID            int          `json:"userId"`
	Title             string       `json:"title"`
	FullName          string       `json:"fullName"`
	ProfessionalTitle string       `json:"professionalTitle"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone"`
	Location          string       `json:"location"`
	Summary           string       `json:"summary"`
	Skills            string       `json:"skills"`
	Experiences       []Experience `json:"experiences"`
	Education         []Education  `json:"education"`
	CreatedAt         string       `json:"createdAt,omitempty"`
	UpdatedAt         string       `json:"updatedAt,omitempty"`
}

// encodeExperiences serializes the list for the experiences TEXT column.
// A nil list encodes as an empty JSON array, not null.
func encodeExperiences(list []Experience) string {
	if list == nil {
		list = []Experience{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func encodeEducation(list []Education) string {
	if list == nil {
		list = []Education{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// decodeExperiences tolerates corrupt or missing column data: a value that
// fails to parse loads as an empty list instead of failing the whole read.
func decodeExperiences(raw string) []Experience {
	list := []Experience{}
	if raw == "" {
		return list
	}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []Experience{}
	}
	if list == nil {
		return []Experience{}
	}
	return list
}

func decodeEducation(raw string) []Education {
	list := []Education{}
	if raw == "" {
		return list
	}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []Education{}
	}
	if list == nil {
		return []Education{}
	}
	return list
}
