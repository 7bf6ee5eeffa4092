package repository

import (
	"time"

	"campusmind/internal/model"
)

func fixtureAssessment() *model.Assessment {
	return &model.Assessment{
		ID:            "a-1",
		StudentID:     "s-1",
		CollegeID:     "c-1",
		FormType:      model.InstrumentPHQ9,
		Responses:     model.ResponseSet{"q1": "2", "q2": "2"},
		Score:         18,
		SeverityLevel: model.SeverityModeratelySevere,
		Guidance:      "Please reach out for support.",
		RecommendedActions: []string{
			"Talk to someone you trust",
			"Sleep on schedule",
		},
		CreatedAt: time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC),
	}
}
