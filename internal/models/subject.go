package models

// Subject is one facet of a prompt as returned by the LLM
type Subject struct {
	Name        string `json:"detailed_name" validate:"required"`
	Description string `json:"description"`
}

// Resolution is the structured answer of the subject resolution gateway
type Resolution struct {
	MainSubject    string    `json:"main_subject_of_the_prompt" validate:"required"`
	BasicSubjects  []Subject `json:"basic_subjects" validate:"required,dive"`
	DeeperSubjects []Subject `json:"deeper_subjects" validate:"required,dive"`
}

// Subjects returns basic subjects followed by deeper subjects
func (r *Resolution) Subjects() []Subject {
	all := make([]Subject, 0, len(r.BasicSubjects)+len(r.DeeperSubjects))
	all = append(all, r.BasicSubjects...)
	return append(all, r.DeeperSubjects...)
}
