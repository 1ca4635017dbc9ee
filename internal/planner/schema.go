package planner

import (
	"github.com/google/generative-ai-go/genai"

	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func strList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: str()}
}

func enum(values ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Format: "enum", Enum: values}
}

func object(required []string, props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func platformEnum() *genai.Schema {
	values := make([]string, 0, len(models.Platforms))
	for _, p := range models.Platforms {
		values = append(values, string(p))
	}
	return enum(values...)
}

func funnelStepSchema() *genai.Schema {
	return object([]string{"stage", "goal", "contentStrategy"}, map[string]*genai.Schema{
		"stage":           str(),
		"goal":            str(),
		"contentStrategy": str(),
	})
}

func postSchema() *genai.Schema {
	return object(
		[]string{"id", "type", "topic", "hook", "caption", "hashtags", "bestTime", "platform", "dayOfMonth", "funnelStage"},
		map[string]*genai.Schema{
			"id":          str(),
			"type":        str(),
			"topic":       str(),
			"hook":        str(),
			"caption":     str(),
			"hashtags":    strList(),
			"script":      str(),
			"bestTime":    str(),
			"platform":    platformEnum(),
			"isTrend":     {Type: genai.TypeBoolean},
			"dayOfMonth":  {Type: genai.TypeInteger},
			"funnelStage": enum(string(models.FunnelToFu), string(models.FunnelMoFu), string(models.FunnelBoFu)),
			"reelsMetadata": object([]string{"hook3s", "cta"}, map[string]*genai.Schema{
				"hook3s":     str(),
				"cta":        str(),
				"audioTrend": str(),
			}),
		},
	)
}

func planSchema() *genai.Schema {
	return object(
		[]string{"identity", "strategy", "summary", "calendar", "competitors"},
		map[string]*genai.Schema{
			"identity": object(
				[]string{"bio", "description", "promise", "keywords", "suggestedColors", "visualStyle"},
				map[string]*genai.Schema{
					"bio":             str(),
					"description":     str(),
					"promise":         str(),
					"keywords":        strList(),
					"suggestedColors": strList(),
					"visualStyle":     str(),
				},
			),
			"strategy": object(
				[]string{"idealTypes", "frequency", "formats", "hotTopics", "rationale", "funnel"},
				map[string]*genai.Schema{
					"idealTypes": strList(),
					"frequency":  str(),
					"formats":    strList(),
					"hotTopics":  strList(),
					"rationale":  str(),
					"funnel": object([]string{"tofu", "mofu", "bofu"}, map[string]*genai.Schema{
						"tofu": funnelStepSchema(),
						"mofu": funnelStepSchema(),
						"bofu": funnelStepSchema(),
					}),
				},
			),
			"summary":  str(),
			"calendar": {Type: genai.TypeArray, Items: postSchema()},
			"competitors": {Type: genai.TypeArray, Items: object(
				[]string{"name", "postTypes", "engagementLevel", "opportunity", "recentActivity"},
				map[string]*genai.Schema{
					"name":            str(),
					"postTypes":       str(),
					"engagementLevel": str(),
					"opportunity":     str(),
					"recentActivity":  str(),
				},
			)},
			"adaptations": {Type: genai.TypeArray, Items: adaptationSchema()},
		},
	)
}

func adaptationSchema() *genai.Schema {
	return object(
		[]string{"postId", "originalTopic", "tiktok", "linkedin", "youtubeShorts", "whatsapp"},
		map[string]*genai.Schema{
			"postId":        str(),
			"originalTopic": str(),
			"tiktok": object(nil, map[string]*genai.Schema{
				"videoIdea":            str(),
				"caption":              str(),
				"hashtags":             strList(),
				"audioTrendSuggestion": str(),
			}),
			"linkedin": object(nil, map[string]*genai.Schema{
				"postText": str(),
				"hashtags": strList(),
			}),
			"youtubeShorts": object(nil, map[string]*genai.Schema{
				"title":       str(),
				"description": str(),
				"videoIdea":   str(),
				"hashtags":    strList(),
			}),
			"whatsapp": object(nil, map[string]*genai.Schema{
				"message":    str(),
				"statusIdea": str(),
			}),
		},
	)
}

func postsSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: postSchema()}
}

func paletteSchema() *genai.Schema {
	return strList()
}
