package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "session key",
			serviceName: "quiz",
			objectType:  "session",
			identifier:  "01HGZ8VNRYXS8QKNJV5GRWPWDQ",
			expectedKey: "mcqquiz:quiz:session:01HGZ8VNRYXS8QKNJV5GRWPWDQ",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "session",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "mcqquiz:quiz:session:123",
		},
		{
			name:        "generation key with count",
			serviceName: "quizgen",
			objectType:  "questions",
			identifier:  "abc",
			paramsKey:   []string{"5"},
			expectedKey: "mcqquiz:quizgen:questions:abc:5",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "quizgen",
			objectType:  "questions",
			identifier:  "xyz",
			paramsKey:   []string{"5", "ollama", "qwen3"},
			expectedKey: "mcqquiz:quizgen:questions:xyz:5_ollama_qwen3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

func TestHashIdentifier(t *testing.T) {
	a := HashIdentifier("World History")
	b := HashIdentifier("  world history ")
	c := HashIdentifier("World Geography")

	if a != b {
		t.Errorf("expected case/whitespace-insensitive hash, got %s and %s", a, b)
	}
	if a == c {
		t.Errorf("expected different topics to hash differently")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}
