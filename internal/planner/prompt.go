package planner

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

var objectiveLabels = map[models.Objective]string{
	models.ObjectiveSell:      "vender mais",
	models.ObjectiveAttract:   "atrair novos clientes",
	models.ObjectiveAuthority: "construir autoridade",
}

var styleLabels = map[models.Style]string{
	models.StyleFormal:  "sério e profissional",
	models.StyleCasual:  "descontraído",
	models.StylePopular: "popular e direto",
}

var dayLabels = map[models.Weekday]string{
	models.Monday:    "Segunda",
	models.Tuesday:   "Terça",
	models.Wednesday: "Quarta",
	models.Thursday:  "Quinta",
	models.Friday:    "Sexta",
	models.Saturday:  "Sábado",
	models.Sunday:    "Domingo",
}

func platformList(p models.BusinessProfile) string {
	names := make([]string, 0, len(p.SelectedPlatforms))
	for _, pl := range p.SelectedPlatforms {
		names = append(names, string(pl))
	}
	return strings.Join(names, ", ")
}

func dayList(p models.BusinessProfile) string {
	names := make([]string, 0, len(p.SelectedDaysOfWeek))
	for _, d := range p.SelectedDaysOfWeek {
		names = append(names, dayLabels[d])
	}
	return strings.Join(names, ", ")
}

func describeProfile(b *strings.Builder, p models.BusinessProfile) {
	fmt.Fprintf(b, "Negócio: %s (%s).\n", p.Name, p.BusinessType)
	if p.ProductDescription != "" {
		fmt.Fprintf(b, "Produto/serviço: %s.\n", p.ProductDescription)
	}
	fmt.Fprintf(b, "Público: %s na região de %s.\n", p.TargetAudience, p.Region)
	fmt.Fprintf(b, "Objetivo: %s. Estilo de comunicação: %s.\n", objectiveLabels[p.Objective], styleLabels[p.Style])
	if p.BusinessStage != "" {
		fmt.Fprintf(b, "Momento do negócio: %s.\n", p.BusinessStage)
	}
	fmt.Fprintf(b, "Plataformas: %s.\n", platformList(p))
	fmt.Fprintf(b, "Frequência: %d post(s) por dia, nos dias: %s.\n", p.PostsPerDay, dayList(p))
	if len(p.ManualColors) > 0 {
		fmt.Fprintf(b, "Cores da marca (use-as nas cores sugeridas): %s.\n", strings.Join(p.ManualColors, ", "))
	}
}

func buildPlanPrompt(p models.BusinessProfile) string {
	var b strings.Builder
	b.WriteString("Aja como um Diretor de Marketing especialista em microempreendedores.\n")
	b.WriteString("Gere um plano de marketing completo para o negócio abaixo.\n\n")
	describeProfile(&b, p)
	b.WriteString(`
Retorne em JSON estruturado:
1. identity: bio, descrição curta, promessa de valor, palavras-chave, cores sugeridas (hex) e estilo visual.
2. strategy: tipos ideais, frequência semanal, formatos, temas quentes, justificativa e funil de vendas (tofu, mofu, bofu).
3. summary: por que esta estratégia funciona, em duas frases.
4. calendar: uma semana de postagens respeitando os dias e a frequência escolhidos, começando em dayOfMonth 1.
   Cada post precisa de id único, gancho, legenda completa, hashtags, roteiro se for vídeo, melhor horário,
   etapa do funil e uma das plataformas escolhidas.
5. competitors: 3 concorrentes típicos da região com tipo de post, nível de engajamento, oportunidade e atividade recente.
6. adaptations: adaptação dos 3 primeiros posts para TikTok, LinkedIn, YouTube Shorts e WhatsApp.
`)
	return b.String()
}

func buildExtendPrompt(req ExtendRequest) string {
	var b strings.Builder
	b.WriteString("Aja como um Diretor de Marketing especialista em microempreendedores.\n")
	b.WriteString("Continue o calendário de conteúdo do negócio abaixo.\n\n")
	describeProfile(&b, req.Profile)
	fmt.Fprintf(&b, "\nO calendário atual vai até o dia %d. Gere a próxima semana de posts a partir do dia %d.\n",
		req.LastDay, req.LastDay+1)
	if len(req.RecentTopics) > 0 {
		fmt.Fprintf(&b, "Evite repetir estes temas recentes: %s.\n", strings.Join(req.RecentTopics, "; "))
	}
	b.WriteString("Retorne apenas a lista JSON de posts, com ids únicos e status pendente.\n")
	return b.String()
}

const palettePrompt = `Analise o logotipo e extraia de 3 a 5 cores predominantes.
Retorne apenas uma lista JSON de cores em hexadecimal no formato #RRGGBB.`
