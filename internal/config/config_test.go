package config

import "testing"

func TestOutputPathOrDefault_Explicit(t *testing.T) {
	cfg := &Config{InputPath: "games.pgn", OutputPath: "out.bin"}
	if got := cfg.OutputPathOrDefault(); got != "out.bin" {
		t.Errorf("OutputPathOrDefault() = %q, want %q", got, "out.bin")
	}
}

func TestOutputPathOrDefault_DerivedFromInput(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"games.pgn", "games.bin"},
		{"/data/corpus.pgn", "/data/corpus.bin"},
		{"noext", "noext.bin"},
		{"dir.with.dots/file.pgn", "dir.with.dots/file.bin"},
	}
	for _, tc := range cases {
		cfg := &Config{InputPath: tc.input}
		if got := cfg.OutputPathOrDefault(); got != tc.want {
			t.Errorf("OutputPathOrDefault() for %q = %q, want %q", tc.input, got, tc.want)
		}
	}
}
