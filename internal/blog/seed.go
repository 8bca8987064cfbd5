package blog

import (
	"time"

	"github.com/debemdeboas/folio/internal/model"
)

// SeedPosts returns the example posts shown when nothing has been persisted.
// The result is a fresh slice on every call.
func SeedPosts() []model.Post {
	return []model.Post{
		{
			ID:       1,
			Title:    "Getting Started with Web Design",
			Content:  "Web design is an exciting field that combines creativity with technical skills. In this post, I share my journey of learning the fundamentals of HTML, CSS, and responsive design principles.",
			Category: "Web Design",
			Date:     seedDate(2025, time.January, 15),
			Featured: true,
		},
		{
			ID:       2,
			Title:    "CSS Animations for Beginners",
			Content:  "Learn how to create smooth, engaging animations using pure CSS. From simple transitions to complex keyframe animations, discover the power of CSS animations.",
			Category: "CSS",
			Date:     seedDate(2025, time.January, 10),
		},
		{
			ID:       3,
			Title:    "Building Responsive Layouts",
			Content:  "Responsive design is crucial in today's multi-device world. Here's what I've learned about creating layouts that work beautifully on all screen sizes.",
			Category: "Tutorial",
			Date:     seedDate(2025, time.January, 5),
		},
	}
}

func seedDate(year int, month time.Month, day int) model.Timestamp {
	return model.NewTimestamp(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}
