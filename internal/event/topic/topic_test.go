package topic

import "testing"

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"search.stream.tick", "search.stream.tick", true},
		{"search.stream.tick", "search.stream.*", true},
		{"search.stream.tick", "search.*", false},
		{"search.stream.tick", "search.**", true},
		{"search.reset", "search.**", true},
		{"search", "search.**", true},
		{"config.reloaded", "search.**", false},
		{"search.stream.tick", "*.stream.*", true},
		{"search.stream.tick", "**", true},
		{"search.stream", "search.stream.tick", false},
	}

	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestTopicIsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		want  bool
	}{
		{"search.reset", true},
		{"search", true},
		{"", false},
		{".search", false},
		{"search.", false},
		{"search..reset", false},
	}
	for _, tt := range tests {
		if got := tt.topic.IsValid(); got != tt.want {
			t.Errorf("%q.IsValid() = %v, want %v", tt.topic, got, tt.want)
		}
	}
}

func TestTopicHelpers(t *testing.T) {
	if Join("search", "stream", "tick") != "search.stream.tick" {
		t.Error("Join failed")
	}
	if !Topic("search.*").IsWildcard() || Topic("search.reset").IsWildcard() {
		t.Error("IsWildcard failed")
	}
	if len(Topic("a.b.c").Segments()) != 3 || Topic("").Segments() != nil {
		t.Error("Segments failed")
	}
}
