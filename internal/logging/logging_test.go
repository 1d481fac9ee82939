package logging

import (
	"testing"

	"workoutlog/internal/config"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		log, err := New(&config.Config{Environment: env})
		if err != nil {
			t.Fatalf("%s: %v", env, err)
		}
		if log == nil {
			t.Fatalf("%s: nil logger", env)
		}
		_ = log.Sync()
	}
}
