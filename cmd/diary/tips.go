// ABOUTME: CLI command for self-care tips.
// ABOUTME: Prints static guidance by topic, followed by this month's feedback.
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

type tipTopic struct {
	Title string
	Tips  []string
}

var tipTopics = map[string]tipTopic{
	"stress": {
		Title: "🧘 Easing stress",
		Tips: []string{
			"4-7-8 breathing: breathe in for 4s, hold for 7s, breathe out for 8s. Repeat 4 to 8 times.",
			"Take a 20-minute walk. Sunlight and a steady pace both lift your mood.",
			"Digital detox: turn screens off 30 minutes before bed.",
		},
	},
	"sleep": {
		Title: "😴 Better sleep habits",
		Tips: []string{
			"Keep the same wake-up time and bedtime every day.",
			"Cut back on caffeine in the late afternoon.",
			"Use the bed only for sleep and rest. Study and scroll at a desk.",
		},
	},
	"symptoms": {
		Title: "🤒 Common symptoms",
		Tips: []string{
			"Headache: drink water, rest 10-15 minutes somewhere quiet, and cut down screen time.",
			"Stomachache: skip greasy food and sip lukewarm water. See a nurse or doctor if the pain is strong.",
			"Fatigue: regular sleep plus light stretching. Break big tasks into small pieces.",
		},
	},
	"records": {
		Title: "🩺 Why keep records",
		Tips: []string{
			"Nurses track vital signs and symptoms over time to spot changes. A daily log is the same habit.",
			"Close the loop: record, notice what changed, try something (a walk, breathing, a sleep tweak), then check again.",
		},
	},
}

// tipOrder is the display order when no topic is given.
var tipOrder = []string{"stress", "sleep", "symptoms", "records"}

var tipsCmd = &cobra.Command{
	Use:   "tips [topic]",
	Short: "Show self-care tips and your current feedback",
	Long: `Show short self-care tips, then the feedback for this month's logs.

TOPICS:

  stress     breathing, walks, screen time
  sleep      schedule, caffeine, bedtime habits
  symptoms   headache, stomachache, fatigue
  records    how a daily log helps

If a health problem worries you, talk to a guardian or a medical professional.

EXAMPLES:

  diary tips           # All topics
  diary tips sleep     # Sleep tips only`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics := tipOrder
		if len(args) == 1 {
			key := strings.ToLower(strings.TrimSpace(args[0]))
			if _, ok := tipTopics[key]; !ok {
				return fmt.Errorf("unknown topic: %s (use %s)", args[0], strings.Join(sortedTopics(), ", "))
			}
			topics = []string{key}
		}

		for _, key := range topics {
			fmt.Println(renderTips(tipTopics[key]))
		}

		if fb := diary.Feedback(); len(fb) > 0 {
			lines := []string{titleStyle.Render("💬 Your feedback this month"), ""}
			for _, f := range fb {
				lines = append(lines, "• "+renderFeedback(f))
			}
			fmt.Println(panelStyle.Render(strings.Join(lines, "\n")))
		}

		fmt.Println(labelStyle.Render("If a health problem worries you, talk to a guardian or a medical professional."))
		return nil
	},
}

func renderTips(t tipTopic) string {
	lines := []string{titleStyle.Render(t.Title), ""}
	for _, tip := range t.Tips {
		lines = append(lines, "• "+tip)
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func sortedTopics() []string {
	keys := make([]string, 0, len(tipTopics))
	for k := range tipTopics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	rootCmd.AddCommand(tipsCmd)
}
