// Package advisor wraps the optional AI suggestion service. Its output is
// advisory plain data: the engine validates and clamps every field again
// before anything is persisted, and every call degrades to a deterministic
// fallback when the API is unconfigured, slow, or returns garbage.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// Assessment is a suggested habit setup.
type Assessment struct {
	Difficulty   int    `json:"difficulty"`
	XPReward     int    `json:"xp_reward"`
	Category     string `json:"category"`
	TargetStat   string `json:"target_stat"`
	TimeEstimate string `json:"time_estimate"`
	Tip          string `json:"tip"`
}

type PlanStep struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	EstimatedDuration string `json:"estimated_duration"`
	XPReward          int    `json:"xp_reward"`
}

// GoalPlan is a suggested goal breakdown.
type GoalPlan struct {
	Title          string     `json:"title"`
	Difficulty     int        `json:"difficulty"`
	TotalXP        int        `json:"total_xp"`
	Category       string     `json:"category"`
	TargetStat     string     `json:"target_stat"`
	EstimatedWeeks int        `json:"estimated_weeks"`
	Steps          []PlanStep `json:"steps"`
}

// Profile is the context handed to the coach chat.
type Profile struct {
	Name   string
	Level  int
	Streak int
}

type Advisor struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// New builds an advisor; an empty API key leaves the client nil and every
// call on the fallback path.
func New(apiKey, baseURL, model string, timeout time.Duration, log zerolog.Logger) *Advisor {
	a := &Advisor{model: model, timeout: timeout, log: log}
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		a.client = openai.NewClientWithConfig(cfg)
	}
	return a
}

func (a *Advisor) Available() bool {
	return a.client != nil
}

// AssessHabit suggests difficulty/XP/category for a habit description.
// Never returns an error: any failure falls back to keyword heuristics.
func (a *Advisor) AssessHabit(ctx context.Context, description string) Assessment {
	if !a.Available() {
		return fallbackAssessment(description)
	}

	prompt := fmt.Sprintf(`Analyze this habit and assess its difficulty. Return ONLY valid JSON.

Habit: %q

Return this exact JSON structure:
{
  "difficulty": <1-6 integer>,
  "xp_reward": <integer 25-1000>,
  "category": "<fitness|health|learning|career|finance|creative|mindfulness|productivity|social|personal|spiritual|home|environment|relationships|life_goals|skills>",
  "target_stat": "<strength|intelligence|vitality|agility|sense|willpower>",
  "time_estimate": "<X minutes|X hours>",
  "tip": "<helpful personalized tip for building this habit>"
}

Difficulty scale:
1 = Trivial: <5 min, no prep
2 = Easy: 5-15 min, minimal effort
3 = Medium: 15-30 min, focus needed
4 = Hard: 30-60 min, significant effort
5 = Expert: 1+ hour, high commitment
6 = Legendary: major undertaking`, description)

	var out Assessment
	if err := a.completeJSON(ctx, prompt, &out); err != nil {
		a.log.Warn().Err(err).Msg("habit assessment fell back to heuristics")
		return fallbackAssessment(description)
	}
	return out
}

// PlanGoal suggests an ordered step breakdown for a goal description.
func (a *Advisor) PlanGoal(ctx context.Context, description string, targetWeeks int) GoalPlan {
	if targetWeeks <= 0 {
		targetWeeks = 12
	}
	if !a.Available() {
		return fallbackPlan(description, targetWeeks)
	}

	prompt := fmt.Sprintf(`Create a detailed action plan for this goal. Return ONLY valid JSON.

Goal: %q
Target timeline: %d weeks

Return this exact JSON structure:
{
  "title": "<cleaned up goal title>",
  "difficulty": <1-6>,
  "total_xp": <integer 1000-10000>,
  "category": "<category key>",
  "target_stat": "<stat key>",
  "estimated_weeks": %d,
  "steps": [
    {
      "title": "<step title>",
      "description": "<detailed description>",
      "estimated_duration": "<e.g. '1 week', '3-5 days'>",
      "xp_reward": <integer>
    }
  ]
}

Generate 7-10 steps that are specific, actionable, progressive, and
achievable within the timeline.`, description, targetWeeks, targetWeeks)

	var out GoalPlan
	if err := a.completeJSON(ctx, prompt, &out); err != nil {
		a.log.Warn().Err(err).Msg("goal plan fell back to heuristics")
		return fallbackPlan(description, targetWeeks)
	}
	if len(out.Steps) == 0 {
		return fallbackPlan(description, targetWeeks)
	}
	return out
}

// Chat answers one coach message with the user's progression as context.
func (a *Advisor) Chat(ctx context.Context, message string, profile Profile) string {
	if !a.Available() {
		return fallbackChat()
	}

	system := fmt.Sprintf(`You are an AI Life Coach in Goal Quest, a gamified habit tracker.

User profile:
- Name: %s
- Level: %d
- Current streak: %d

Be motivating but not cheesy, reference their progress naturally, give
practical advice, and keep responses to a few short paragraphs.`,
		profile.Name, profile.Level, profile.Streak)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: 500,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		a.log.Warn().Err(err).Msg("coach chat unavailable")
		return fallbackChat()
	}
	return resp.Choices[0].Message.Content
}

func (a *Advisor) completeJSON(ctx context.Context, prompt string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: 2000,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("chat completion: empty response")
	}

	text := stripCodeFence(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("parse suggestion: %w", err)
	}
	return nil
}

// stripCodeFence tolerates models that wrap JSON in ```json fences despite
// instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
