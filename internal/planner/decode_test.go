package planner

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/stratyx-planner/internal/calendar"
	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

const planJSON = `{
  "identity": {
    "bio": "Moda praia feita em Floripa",
    "description": "Biquínis autorais",
    "promise": "Conforto do mar à cidade",
    "keywords": ["praia", "verão"],
    "suggestedColors": ["#0EA5E9", "#F59E0B"],
    "visualStyle": "Luz natural"
  },
  "strategy": {
    "idealTypes": ["Reels"],
    "frequency": "3x por semana",
    "formats": ["Reels", "Stories"],
    "hotTopics": ["Verão"],
    "rationale": "Sazonalidade",
    "funnel": {
      "tofu": {"stage": "Descoberta", "goal": "Alcance", "contentStrategy": "Trends"},
      "mofu": {"stage": "Consideração", "goal": "Confiança", "contentStrategy": "Provas"},
      "bofu": {"stage": "Conversão", "goal": "Venda", "contentStrategy": "Ofertas"}
    }
  },
  "summary": "Funciona porque é sazonal.",
  "calendar": [
    {"id": "p1", "type": "Reels", "topic": "Promoção de verão", "hook": "Corre!", "caption": "Só hoje",
     "hashtags": ["#verao"], "bestTime": "18:00", "platform": "Instagram", "dayOfMonth": 1, "funnelStage": "BoFu",
     "status": "posted"}
  ],
  "competitors": [{"name": "Loja Y", "postTypes": "Fotos", "engagementLevel": "Médio", "opportunity": "Vídeo", "recentActivity": "Promoções"}]
}`

func TestDecodePlan(t *testing.T) {
	plan, err := DecodePlan([]byte(planJSON))
	require.NoError(t, err)

	assert.Equal(t, "Moda praia feita em Floripa", plan.Identity.Bio)
	require.NotNil(t, plan.Strategy.Funnel)
	assert.Equal(t, "Venda", plan.Strategy.Funnel.BoFu.Goal)
	require.Len(t, plan.Calendar, 1)
	// generated posts always start pending
	assert.Equal(t, models.StatusPending, plan.Calendar[0].Status)
	assert.Equal(t, models.FunnelBoFu, plan.Calendar[0].FunnelStage)
}

func TestDecodePlanRekeysDuplicatePostIDs(t *testing.T) {
	second := `{"id": "p1", "type": "Stories", "topic": "Bastidores", "hook": "Olha", "caption": "Ateliê",
     "hashtags": [], "bestTime": "10:00", "platform": "Instagram", "dayOfMonth": 2}`
	raw := strings.Replace(planJSON, `"status": "posted"}`, `"status": "posted"}, `+second, 1)

	plan, err := DecodePlan([]byte(raw))
	require.NoError(t, err)
	require.Len(t, plan.Calendar, 2)
	assert.Equal(t, "p1", plan.Calendar[0].ID)
	assert.Equal(t, "p1-2", plan.Calendar[1].ID)

	// both posts can be toggled independently
	toggled := calendar.ToggleStatus(plan.Calendar, "p1-2")
	assert.Equal(t, models.StatusPending, toggled[0].Status)
	assert.Equal(t, models.StatusPosted, toggled[1].Status)
}

func TestDecodePlanAcceptsCodeFence(t *testing.T) {
	_, err := DecodePlan([]byte("```json\n" + planJSON + "\n```"))
	require.NoError(t, err)
}

func TestDecodePlanRejectsMissingFields(t *testing.T) {
	raw := strings.Replace(planJSON, `"bio": "Moda praia feita em Floripa",`, "", 1)
	_, err := DecodePlan([]byte(raw))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidResponse))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, strings.Join(verr.Fields, " "), "identity.bio")
}

func TestDecodePlanRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"calendar": "x"}`} {
		_, err := DecodePlan([]byte(raw))
		assert.ErrorIs(t, err, ErrInvalidResponse, raw)
	}
}

func TestDecodePosts(t *testing.T) {
	posts, err := DecodePosts([]byte(`[
	  {"id": "n1", "type": "Carrossel", "topic": "Dicas", "hook": "3 dicas", "caption": "Salve",
	   "hashtags": [], "bestTime": "12:00", "platform": "TikTok", "dayOfMonth": 8}
	]`))
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, models.StatusPending, posts[0].Status)
	assert.Equal(t, models.PlatformTikTok, posts[0].Platform)

	_, err = DecodePosts([]byte(`[{"id": "n1", "dayOfMonth": 0}]`))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestDecodePalette(t *testing.T) {
	colors, err := DecodePalette([]byte(`["#0ea5e9", "azul", " #fff "]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"#0EA5E9", "#FFF"}, colors)

	_, err = DecodePalette([]byte(`["azul"]`))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
