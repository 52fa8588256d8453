package config

// defaultStopwords returns the fixed stopword list used during keyword
// tokenization. Short tokens are already dropped by MinTokenLength, so
// the list only needs common words of three or more characters.
func defaultStopwords() []string {
	return []string{
		"the", "and", "for", "are", "but", "not", "you", "all", "can",
		"has", "had", "have", "was", "one", "our", "out", "use", "using",
		"how", "why", "when", "what", "this", "that", "your", "from",
		"they", "will", "into", "over", "under", "each", "every", "per",
		"via", "some", "more", "most", "than", "then", "them", "these",
		"those", "its", "their", "there", "here", "also", "only", "such",
		"should", "would", "could", "does", "doing", "done", "between",
		"without", "within", "pattern", "patterns",
	}
}

// defaultTopics returns the ordered topic seed table. The first entry
// whose match string appears in a lowercased pattern title contributes
// its seeds; later entries are ignored for that pattern.
func defaultTopics() []TopicSeed {
	return []TopicSeed{
		{Match: "genserver", Seeds: []string{"genserver", "state", "process"}},
		{Match: "supervis", Seeds: []string{"supervisor", "restart", "fault-tolerance"}},
		{Match: "liveview", Seeds: []string{"liveview", "socket", "assigns"}},
		{Match: "phoenix", Seeds: []string{"phoenix", "controller", "plug"}},
		{Match: "ecto", Seeds: []string{"ecto", "changeset", "query"}},
		{Match: "migration", Seeds: []string{"migration", "schema", "database"}},
		{Match: "test", Seeds: []string{"testing", "exunit", "assertion"}},
		{Match: "deploy", Seeds: []string{"deployment", "release", "runtime"}},
		{Match: "telemetry", Seeds: []string{"telemetry", "metrics", "observability"}},
		{Match: "performance", Seeds: []string{"performance", "profiling", "optimization"}},
		{Match: "retry", Seeds: []string{"retry", "backoff", "resilience"}},
		{Match: "error", Seeds: []string{"error", "exception", "rescue"}},
		{Match: "concurren", Seeds: []string{"concurrency", "task", "async"}},
		{Match: "otp", Seeds: []string{"otp", "application", "message"}},
	}
}

// defaultCategories returns the eight fixed directory categories with
// their file-name allow-lists. Files not matched by any allow-list are
// rendered in a trailing Uncategorized group so every discovered source
// stays auditable.
func defaultCategories() []Category {
	return []Category{
		{Name: "Core OTP", Files: []string{
			"genserver_patterns.md", "supervision_patterns.md", "otp_patterns.md",
		}},
		{Name: "Phoenix & Web", Files: []string{
			"phoenix_patterns.md", "liveview_patterns.md",
		}},
		{Name: "Data & Persistence", Files: []string{
			"ecto_patterns.md", "migration_patterns.md",
		}},
		{Name: "Testing", Files: []string{
			"testing_patterns.md",
		}},
		{Name: "Deployment & Operations", Files: []string{
			"deployment_patterns.md", "release_patterns.md",
		}},
		{Name: "Performance & Telemetry", Files: []string{
			"performance_patterns.md", "telemetry_patterns.md",
		}},
		{Name: "Resilience & Integration", Files: []string{
			"retry_patterns.md", "integration_patterns.md",
		}},
		{Name: "Conventions", Files: []string{
			"naming_patterns.md", "project_patterns.md",
		}},
	}
}

// defaultCrossReferences returns the curated cross-reference table.
// It is deliberately static rather than derived from input so the
// primary/related associations survive index regenerations unchanged.
func defaultCrossReferences() []CrossReference {
	return []CrossReference{
		{
			Problem: "state leaks across requests",
			Primary: "genserver_patterns.md",
			Related: []string{"supervision_patterns.md"},
		},
		{
			Problem: "process crashes take down siblings",
			Primary: "supervision_patterns.md",
			Related: []string{"otp_patterns.md"},
		},
		{
			Problem: "slow queries under load",
			Primary: "ecto_patterns.md",
			Related: []string{"performance_patterns.md", "telemetry_patterns.md"},
		},
		{
			Problem: "flaky calls to external services",
			Primary: "retry_patterns.md",
			Related: []string{"integration_patterns.md"},
		},
		{
			Problem: "stale UI after state changes",
			Primary: "liveview_patterns.md",
			Related: []string{"phoenix_patterns.md"},
		},
		{
			Problem: "untested failure paths",
			Primary: "testing_patterns.md",
			Related: []string{"supervision_patterns.md"},
		},
		{
			Problem: "config differs between environments",
			Primary: "deployment_patterns.md",
			Related: []string{"release_patterns.md"},
		},
		{
			Problem: "inconsistent naming across modules",
			Primary: "naming_patterns.md",
			Related: []string{"project_patterns.md"},
		},
	}
}
