package provider

import "github.com/dkoval85/aipulse/internal/models"

// SeedFeed returns the fixed articles shown before the first refresh, so the
// feed is never empty on a cold start or while offline.
func SeedFeed() []models.NewsItem {
	return []models.NewsItem{
		{
			ID:        "seed-1",
			Title:     "The Next Leap in LLMs: Reasoning Capabilities",
			Category:  "RESEARCH",
			Summary:   "New architectures are moving beyond pattern matching to true deductive reasoning, enabling models to solve complex math and logic problems with unprecedented accuracy.",
			Timestamp: "10:42 AM",
			ImageURL:  "https://picsum.photos/seed/airobot/800/600",
			Source:    "TechCrunch",
		},
		{
			ID:        "seed-2",
			Title:     "Ethical AI Regulation: Global Summit",
			Category:  "POLICY",
			Summary:   "World leaders gather in Geneva to establish a unified framework for autonomous weapon systems and data privacy in the age of generative AI.",
			Timestamp: "09:15 AM",
			ImageURL:  "https://picsum.photos/seed/network/800/600",
			Source:    "Reuters",
		},
		{
			ID:        "seed-3",
			Title:     "Robotics Autonomy Hits Level 4",
			Category:  "HARDWARE",
			Summary:   "Boston Dynamics reveals a new bipedal unit capable of navigating unstructured construction environments without human teleoperation.",
			Timestamp: "Yesterday",
			ImageURL:  "https://picsum.photos/seed/chip/800/600",
			Source:    "Wired",
		},
	}
}
