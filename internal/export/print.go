package export

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/stratyx-planner/internal/calendar"
	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

// PrintDocument renders the print layout of a project as Markdown: cover,
// strategy, calendar and competitors.
func PrintDocument(p models.Project) string {
	var builder strings.Builder
	writeCover(&builder, p)
	writeStrategy(&builder, p.Plan.Strategy)
	writeCalendar(&builder, p.Plan.Calendar)
	writeCompetitors(&builder, p.Plan.Competitors)
	return builder.String()
}

func bullets(b *strings.Builder, items []string) {
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- %s\n", strings.TrimSpace(item)))
	}
}

func writeCover(b *strings.Builder, p models.Project) {
	id := p.Plan.Identity
	b.WriteString(fmt.Sprintf("# %s\n\n", p.ProjectName))
	b.WriteString(fmt.Sprintf("%s • %s\n\n", p.Profile.BusinessType, p.Profile.Region))
	if !p.CreatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("_Plano gerado em %s_\n\n", p.CreatedAt.Format("02/01/2006")))
	}
	if p.Plan.Summary != "" {
		b.WriteString(fmt.Sprintf("> %s\n\n", p.Plan.Summary))
	}

	b.WriteString("## Identidade da Marca\n\n")
	b.WriteString(fmt.Sprintf("**Bio:** %s\n\n", id.Bio))
	b.WriteString(fmt.Sprintf("**Promessa:** \"%s\"\n\n", id.Promise))
	b.WriteString(fmt.Sprintf("**Posicionamento:** %s\n\n", id.Description))
	b.WriteString(fmt.Sprintf("**Estilo visual:** %s\n\n", id.VisualStyle))
	if len(id.SuggestedColors) > 0 {
		b.WriteString(fmt.Sprintf("**Cores:** %s\n\n", strings.Join(id.SuggestedColors, " ")))
	}
	if len(id.Keywords) > 0 {
		tags := make([]string, 0, len(id.Keywords))
		for _, kw := range id.Keywords {
			tags = append(tags, "#"+kw)
		}
		b.WriteString(fmt.Sprintf("**Palavras-chave:** %s\n\n", strings.Join(tags, " ")))
	}
}

func writeStrategy(b *strings.Builder, s models.ContentStrategy) {
	b.WriteString("## Estratégia\n\n")
	b.WriteString(fmt.Sprintf("**Frequência:** %s\n\n", s.Frequency))
	if len(s.IdealTypes) > 0 {
		b.WriteString("**Tipos de conteúdo:**\n")
		bullets(b, s.IdealTypes)
		b.WriteString("\n")
	}
	if len(s.Formats) > 0 {
		b.WriteString("**Formatos:**\n")
		bullets(b, s.Formats)
		b.WriteString("\n")
	}
	if len(s.HotTopics) > 0 {
		b.WriteString("**Temas quentes:**\n")
		bullets(b, s.HotTopics)
		b.WriteString("\n")
	}
	if s.Rationale != "" {
		b.WriteString(fmt.Sprintf("_%s_\n\n", s.Rationale))
	}
	if f := s.Funnel; f != nil {
		b.WriteString("### Funil de vendas\n\n")
		b.WriteString("| Etapa | Objetivo | Conteúdo |\n|---|---|---|\n")
		for _, step := range []models.FunnelStep{f.ToFu, f.MoFu, f.BoFu} {
			b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", step.Stage, step.Goal, step.ContentStrategy))
		}
		b.WriteString("\n")
	}
}

func writeCalendar(b *strings.Builder, posts []models.PostItem) {
	b.WriteString("## Agenda de Posts\n\n")
	if len(posts) == 0 {
		b.WriteString("Nenhum post agendado.\n\n")
		return
	}
	posted, total := calendar.Progress(posts)
	b.WriteString(fmt.Sprintf("%d de %d posts publicados.\n\n", posted, total))

	for _, day := range calendar.GroupByDay(posts) {
		b.WriteString(fmt.Sprintf("### Dia %d\n\n", day.DayOfMonth))
		for _, post := range day.Posts {
			mark := " "
			if post.Status == models.StatusPosted {
				mark = "x"
			}
			b.WriteString(fmt.Sprintf("- [%s] **%s** · %s · %s · %s\n", mark, post.Topic, post.Platform, post.Type, post.BestTime))
			if post.FunnelStage != "" {
				b.WriteString(fmt.Sprintf("  - Funil: %s\n", post.FunnelStage))
			}
			b.WriteString(fmt.Sprintf("  - Gancho: %s\n", post.Hook))
			b.WriteString(fmt.Sprintf("  - Legenda: %s\n", strings.ReplaceAll(post.Caption, "\n", " ")))
			if len(post.Hashtags) > 0 {
				b.WriteString(fmt.Sprintf("  - %s\n", strings.Join(post.Hashtags, " ")))
			}
			if post.Script != "" {
				b.WriteString(fmt.Sprintf("  - Roteiro: %s\n", strings.ReplaceAll(post.Script, "\n", " ")))
			}
			if rm := post.ReelsMetadata; rm != nil {
				b.WriteString(fmt.Sprintf("  - Primeiros 3s: %s · CTA: %s\n", rm.Hook3s, rm.CTA))
			}
		}
		b.WriteString("\n")
	}
}

func writeCompetitors(b *strings.Builder, competitors []models.Competitor) {
	if len(competitors) == 0 {
		return
	}
	b.WriteString("## Concorrentes\n\n")
	b.WriteString("| Nome | Posts | Engajamento | Oportunidade |\n|---|---|---|---|\n")
	for _, c := range competitors {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.Name, c.PostTypes, c.EngagementLevel, c.Opportunity))
	}
	b.WriteString("\n")
}
