package models

// Vacancy is a job posting in the structured shape sent to the model.
type Vacancy struct {
	ID          string   `json:"id" mapstructure:"id"`
	Title       string   `json:"title" mapstructure:"title"`
	Company     string   `json:"company" mapstructure:"company"`
	Description string   `json:"description" mapstructure:"description"`
	SalaryFrom  *int     `json:"salaryFrom,omitempty" mapstructure:"salary_from"`
	SalaryTo    *int     `json:"salaryTo,omitempty" mapstructure:"salary_to"`
	Currency    string   `json:"currency,omitempty" mapstructure:"currency"`
	Experience  string   `json:"experience,omitempty" mapstructure:"experience"`
	Format      string   `json:"format,omitempty" mapstructure:"format"`
	Skills      []string `json:"skills" mapstructure:"skills"`
	URL         string   `json:"url,omitempty" mapstructure:"url"`
}

// Education is a single education record of a resume.
type Education struct {
	Degree    string `json:"degree" mapstructure:"degree"`
	Direction string `json:"direction" mapstructure:"direction"`
	Specialty string `json:"specialty" mapstructure:"specialty"`
}

// WorkExperience is a single job of a resume.
type WorkExperience struct {
	StartDate    string   `json:"startDate" mapstructure:"start_date"`
	EndDate      string   `json:"endDate,omitempty" mapstructure:"end_date"`
	CompanyName  string   `json:"companyName" mapstructure:"company_name"`
	Achievements []string `json:"achievements" mapstructure:"achievements"`
	Technologies []string `json:"technologies" mapstructure:"technologies"`
}

// NormalizedResume is a resume reduced to the fields relevant for matching.
type NormalizedResume struct {
	Name            string           `json:"name" mapstructure:"name"`
	Email           string           `json:"email" mapstructure:"email"`
	Phone           string           `json:"phone,omitempty" mapstructure:"phone"`
	DesiredPosition string           `json:"desiredPosition,omitempty" mapstructure:"vacancy_name"`
	Languages       []string         `json:"languages" mapstructure:"languages"`
	Frameworks      []string         `json:"frameworks" mapstructure:"frameworks"`
	Education       []Education      `json:"education" mapstructure:"education"`
	WorkExperience  []WorkExperience `json:"workExperience" mapstructure:"work_experience"`
}

// Fill replaces nil collections with empty ones so the JSON form is stable.
func (r *NormalizedResume) Fill() {
	if r.Languages == nil {
		r.Languages = []string{}
	}
	if r.Frameworks == nil {
		r.Frameworks = []string{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.WorkExperience == nil {
		r.WorkExperience = []WorkExperience{}
	}
	for i := range r.WorkExperience {
		if r.WorkExperience[i].Achievements == nil {
			r.WorkExperience[i].Achievements = []string{}
		}
		if r.WorkExperience[i].Technologies == nil {
			r.WorkExperience[i].Technologies = []string{}
		}
	}
}

// Skills returns every skill mentioned in the resume: languages, frameworks
// and technologies from work history, in that order and without repeats.
func (r *NormalizedResume) Skills() []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(items []string) {
		for _, item := range items {
			if _, ok := seen[item]; ok || item == "" {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}

	add(r.Languages)
	add(r.Frameworks)
	for _, job := range r.WorkExperience {
		add(job.Technologies)
	}

	return out
}
