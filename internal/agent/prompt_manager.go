package agent

import (
	"os"
	"path/filepath"
	"strings"
)

// PromptManager resolves system prompts, preferring markdown files in its
// directory over the built-in defaults. Each prompt is one file: planner.md,
// composer.md, classifier.md, chat.md. A missing directory or file simply
// falls back to the default, so deployments only override what they change.
type PromptManager struct {
	Directory string
}

func NewPromptManager(dir string) *PromptManager {
	return &PromptManager{Directory: dir}
}

func (pm *PromptManager) load(name string, fallback string) string {
	data, err := os.ReadFile(filepath.Join(pm.Directory, name+".md"))
	if err != nil {
		return fallback
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return fallback
	}
	return text
}

func (pm *PromptManager) PlannerPrompt() string {
	return pm.load("planner", plannerSystemPrompt)
}

func (pm *PromptManager) ComposerPrompt() string {
	return pm.load("composer", composerSystemPrompt)
}

func (pm *PromptManager) ClassifierPrompt() string {
	return pm.load("classifier", classifierSystemPrompt)
}

func (pm *PromptManager) ChatPrompt() string {
	return pm.load("chat", chatSystemPrompt)
}
